package memory

import (
	"context"
	"intranet/internal/types"
	"sync"

	log "github.com/sirupsen/logrus"
)

// ClientStore keeps client records in a map for the lifetime of the process.
// Each instance owns its own map, so tests can build independent stores.
type ClientStore struct {
	mu      sync.RWMutex
	records map[string]types.ClientRecord
}

func NewClientStore() *ClientStore {
	return &ClientStore{records: make(map[string]types.ClientRecord)}
}

func (s *ClientStore) Create(ctx context.Context, record types.ClientRecord) (types.ClientRecord, error) {
	if err := record.Validate(); err != nil {
		return types.ClientRecord{}, err
	}

	// existence check and insert share one critical section
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.ClientID]; ok {
		return types.ClientRecord{}, types.Err(types.ErrAlreadyExists, nil, "client %q", record.ClientID)
	}
	s.records[record.ClientID] = record

	log.WithField("clientID", record.ClientID).Debug("Client stored")
	return record, nil
}

func (s *ClientStore) Get(ctx context.Context, clientID string) (types.ClientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[clientID]
	if !ok {
		return types.ClientRecord{}, types.Err(types.ErrNotFound, nil, "client %q", clientID)
	}
	return record, nil
}

// Len returns the number of stored records.
func (s *ClientStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
