// Package metadata persists small key-value state for the console client,
// most importantly the stored session token.
package metadata

import (
	"context"
)

// Repository is a byte-oriented key-value store. Get returns (nil, nil)
// when the key is absent; Delete of an absent key is a no-op. This is the
// whole surface the token store needs.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
