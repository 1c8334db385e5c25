package auth

import "context"

type contextKey struct{}

func NewContext(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the Provider of the browser being served.
func FromContext(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(contextKey{}).(*Provider)
	return p, ok && p != nil
}
