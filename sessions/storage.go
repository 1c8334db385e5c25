package sessions

import (
	"context"
	"net/http"
)

// Storage is one browser's durable key-value space, the server-side
// equivalent of window.localStorage. Get returns errors.ErrStorageKeyNotFound
// for absent keys.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Backend holds the storage of many browsers, each addressed by a namespace.
type Backend interface {
	Scope(namespace string) Storage
}

// Provider resolves the Storage belonging to the browser that sent r.
// Implementations may set cookies on w, so it must be called before the response is written.
type Provider interface {
	Storage(w http.ResponseWriter, r *http.Request) (Storage, error)
}

// Rotator is implemented by providers that address storage by a browser id.
// Rotate moves the browser's Session from current to a freshly issued id.
type Rotator interface {
	Rotate(w http.ResponseWriter, r *http.Request, current Storage) (Storage, error)
}
