package ports

import (
	"context"
	"intranet/internal/types"
)

// ClientStore holds the authoritative collection of client records.
// Implementations MUST make Create an atomic check-and-insert.
type ClientStore interface {
	// Create inserts the record keyed by its ClientID and returns it unchanged.
	// MUST return types.ErrAlreadyExists, leaving the stored record untouched,
	// if the ID is taken.
	Create(ctx context.Context, record types.ClientRecord) (types.ClientRecord, error)

	// Get returns the record for clientID.
	// MUST return types.ErrNotFound if the client does not exist.
	Get(ctx context.Context, clientID string) (types.ClientRecord, error)
}
