// Package storage defines the keyed byte storage the account store persists
// into, together with several interchangeable backends. The contract mirrors
// the web client's localStorage: synchronous get/set/delete of small
// byte-string values under well-known keys. The account store treats the
// backend as an injected capability and never assumes a particular one.
package storage

import (
	"context"
)

// Storage is a synchronous key/value byte store.
//
// Get returns (nil, nil) when the key is absent; a non-nil error always
// means the backend itself failed and should be propagated to the caller.
//
// SetMany and DeleteMany write several keys as one logical commit. Backends
// with transactional writes apply them atomically; the others apply them
// sequentially and may leave a partial write behind on failure.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
