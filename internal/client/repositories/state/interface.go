// Package state persists small client-side state (most importantly the
// access token) in a local sqlite key/value table so sessions survive
// process restarts. Writes are last-write-wins; the token is read once at
// startup.
package state

import "context"

// Well-known keys.
const (
	KeyAccessToken = "access_token"
	KeyLastEmail   = "last_email"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
