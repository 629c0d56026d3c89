// Package localstate persists small client-side state blobs (the session
// token, bookkeeping timestamps) in a sqlite key/value table that survives
// process restarts.
package localstate

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
