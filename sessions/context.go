package sessions

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying the Store of the browser being served.
func NewContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// FromContext returns the Store attached by NewContext.
func FromContext(ctx context.Context) (*Store, bool) {
	store, ok := ctx.Value(contextKey{}).(*Store)
	return store, ok && store != nil
}
