package kv

import "context"

// Store is the durable key-value contract the scheduler core persists through.
// Get returns (nil, nil) when the key is absent. Writes are last-write-wins;
// no transactional guarantees are offered or required.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
