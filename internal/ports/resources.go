package ports

import (
	"context"
	"encoding/json"
)

// ResourceClient is a generic CRUD client for one backend collection. Bodies
// and responses stay as raw JSON; the gateway does not reinterpret them.
type ResourceClient interface {
	List(ctx context.Context, token string) (json.RawMessage, error)
	Get(ctx context.Context, token, id string) (json.RawMessage, error)
	Create(ctx context.Context, token string, body json.RawMessage) (json.RawMessage, error)
	Update(ctx context.Context, token, id string, body json.RawMessage) (json.RawMessage, error)
	DeleteByID(ctx context.Context, token, id string) error
}

// ResourceClientFactory builds a ResourceClient for a backend collection path.
type ResourceClientFactory func(path string) ResourceClient
