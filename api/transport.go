package api

import (
	"net/http"

	"github.com/jrsteele09/clientconnect/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// bearerTransport stamps each outgoing request with the current session's token,
// or strips any Authorization header when there is no session.
type bearerTransport struct {
	base  http.RoundTripper
	store *sessions.Store
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	store := t.store
	if store == nil {
		store, _ = sessions.FromContext(req.Context())
	}

	// RoundTrippers must not modify the caller's request.
	out := req.Clone(req.Context())
	if session, ok := loadSession(req, store); ok {
		token := &oauth2.Token{AccessToken: session.AccessToken, TokenType: "Bearer"}
		token.SetAuthHeader(out)
	} else {
		out.Header.Del("Authorization")
	}

	log.Debug().
		Str("method", out.Method).
		Str("url", out.URL.Redacted()).
		Bool("authenticated", out.Header.Get("Authorization") != "").
		Msg("crm api request")
	return t.base.RoundTrip(out)
}

func loadSession(req *http.Request, store *sessions.Store) (*sessions.Session, bool) {
	if store == nil {
		return nil, false
	}
	return store.Load(req.Context())
}
