package cookiestore

import (
	"context"
	"crypto/sha256"
	"io"
	"net/http"
	"time"

	gsessions "github.com/gorilla/sessions"
	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
	"github.com/jrsteele09/clientconnect/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/hkdf"
)

// DefaultCookieName is the cookie holding the browser's signed and encrypted storage.
const DefaultCookieName = "cc_storage"

var _ sessions.Provider = (*Provider)(nil)

// Provider keeps each browser's storage inside an authenticated, encrypted cookie,
// so nothing about the session lives on the server.
type Provider struct {
	store *gsessions.CookieStore
	name  string
}

// New derives the cookie keys from secret and returns a Provider whose cookies live for maxAge.
func New(secret []byte, maxAge time.Duration, secure bool) (*Provider, error) {
	hashKey, blockKey, err := DeriveKeys(secret)
	if err != nil {
		return nil, err
	}

	store := gsessions.NewCookieStore(hashKey, blockKey)
	store.Options = &gsessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(store.Options.MaxAge)

	return &Provider{store: store, name: DefaultCookieName}, nil
}

// DeriveKeys expands one secret into a 64 byte HMAC key and a 32 byte AES key with HKDF-SHA256.
func DeriveKeys(secret []byte) (hashKey, blockKey []byte, err error) {
	if len(secret) == 0 {
		return nil, nil, apperrors.Wrapf(apperrors.ErrInternal, "[cookiestore DeriveKeys] empty secret")
	}
	hashKey = make([]byte, 64)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte("clientconnect cookie hash key")), hashKey); err != nil {
		return nil, nil, apperrors.Wrapf(err, "[cookiestore DeriveKeys] hash key")
	}
	blockKey = make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte("clientconnect cookie block key")), blockKey); err != nil {
		return nil, nil, apperrors.Wrapf(err, "[cookiestore DeriveKeys] block key")
	}
	return hashKey, blockKey, nil
}

func (p *Provider) Storage(w http.ResponseWriter, r *http.Request) (sessions.Storage, error) {
	// A tampered, expired or rotated-secret cookie still yields a fresh empty session.
	session, err := p.store.Get(r, p.name)
	if err != nil {
		log.Debug().Err(err).Msg("discarding unreadable storage cookie")
	}
	if session == nil {
		return nil, apperrors.Wrapf(apperrors.ErrStorageUnavailable, "[cookiestore Storage] no session for %s", p.name)
	}
	return &storage{w: w, r: r, session: session, maxAge: p.store.Options.MaxAge}, nil
}

type storage struct {
	w       http.ResponseWriter
	r       *http.Request
	session *gsessions.Session
	maxAge  int
}

func (s *storage) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := s.session.Values[key].(string)
	if !ok {
		return nil, apperrors.ErrStorageKeyNotFound
	}
	return []byte(value), nil
}

func (s *storage) Set(_ context.Context, key string, value []byte) error {
	s.session.Values[key] = string(value)
	return s.save()
}

func (s *storage) Delete(_ context.Context, key string) error {
	if _, ok := s.session.Values[key]; !ok {
		return nil
	}
	delete(s.session.Values, key)
	return s.save()
}

func (s *storage) save() error {
	s.session.Options.MaxAge = s.maxAge
	if len(s.session.Values) == 0 {
		s.session.Options.MaxAge = -1
	}
	if err := s.session.Save(s.r, s.w); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorageUnavailable, "save storage cookie: %v", err)
	}
	return nil
}
