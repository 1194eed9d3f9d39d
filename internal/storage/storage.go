// Package storage provides the durable client-local key-value store backing
// the session and cart managers. It is the localStorage analog: string keys,
// raw byte values, surviving process restarts.
package storage

// Fixed keys under which client state lives.
const (
	// KeyToken holds the raw bearer token string.
	KeyToken = "access_token"
	// KeyUser holds the JSON-serialized cached user profile.
	KeyUser = "user"
	// KeyCart holds the JSON-serialized line item sequence.
	KeyCart = "carrinho"
	// KeyFavorites is written by the favorites view; the session manager only
	// purges it on logout.
	KeyFavorites = "favoritos"
	// KeyHealthProbe is a scratch key the health check writes to prove the
	// store accepts writes.
	KeyHealthProbe = "healthcheck"
)

// Store is a durable string-keyed byte store. Get returns an error wrapping
// errors.ErrNotFound when the key is absent. Delete is idempotent.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
