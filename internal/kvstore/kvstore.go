// Package kvstore provides the key-value document store backing per-device
// state: session ids, the card-number pool, fulfillment descriptors, and
// guest order history. Documents are read and written whole, never patched.
package kvstore

import "context"

// Store is a whole-document key-value store. Get returns domain.ErrNotFound
// for missing keys; Delete of a missing key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
