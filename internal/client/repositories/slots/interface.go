// Package slots persists named values ("slots") in the local SQLite
// database. Every value is an opaque byte slice addressed by a string key.
package slots

import "context"

// Repository reads and writes named slots. Get returns (nil, nil) when the
// slot is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
