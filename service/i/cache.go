package i

import "context"

// Cache stores encoded solutions by key.
type Cache interface {
	// Get returns the value stored under key. The boolean is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Lock takes an exclusive build lock for key. The returned function releases it.
	Lock(ctx context.Context, key string) (func(), error)
}
