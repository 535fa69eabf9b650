package ports

import (
	"context"
	"intranet/internal/types"
)

// ClientAPI is the remote view of the client endpoints, used by the form
// server and the CLI.
type ClientAPI interface {
	Create(ctx context.Context, fields map[string]any) (types.ClientRecord, error)
	Get(ctx context.Context, clientID string) (types.ClientRecord, error)
}
