package storage

import "context"

// Persisted blob keys. Each key holds one JSON document.
const (
	KeyAccounts      = "voltra:accounts"
	KeyUser          = "voltra:user"
	KeyOrganizations = "voltra:organizations"
)

// Store is a persisted mapping from string keys to JSON blobs. Get returns
// (nil, nil) when the key is absent; Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
