package flow

import (
	"context"
	"errors"
	"intranet/internal/ports"
	"intranet/internal/types"

	log "github.com/sirupsen/logrus"
)

// CreateClient validates the raw input and, only if it is well formed, stores
// the resulting record. Validation and duplicate failures are returned as
// typed errors together with their Outcome; they are not logged as faults.
func CreateClient(ctx context.Context, store ports.ClientStore, fields map[string]any) (record types.ClientRecord, outcome Outcome, err error) {
	record, err = types.ParseClientRecord(fields)
	if err != nil {
		outcome = Invalid
		log.WithError(err).Debug("Client input rejected")
		return
	}

	clientID := record.ClientID
	record, err = store.Create(ctx, record)
	outcome = classify(err, Created)
	if outcome == Failed {
		log.WithError(err).WithField("clientID", clientID).Error("Client store create failed")
	}
	return
}

// GetClient looks a record up by its identifier. It never mutates the store.
func GetClient(ctx context.Context, store ports.ClientStore, clientID string) (record types.ClientRecord, outcome Outcome, err error) {
	if clientID == "" {
		outcome = NotFound
		err = types.Err(types.ErrNotFound, nil, "empty client id")
		return
	}
	record, err = store.Get(ctx, clientID)
	outcome = classify(err, Found)
	if outcome == Failed {
		log.WithError(err).WithField("clientID", clientID).Error("Client store get failed")
	}
	return
}

func classify(err error, success Outcome) Outcome {
	switch {
	case err == nil:
		return success
	case errors.Is(err, types.ErrInvalidClientRecord):
		return Invalid
	case errors.Is(err, types.ErrAlreadyExists):
		return Duplicate
	case errors.Is(err, types.ErrNotFound):
		return NotFound
	default:
		return Failed
	}
}
