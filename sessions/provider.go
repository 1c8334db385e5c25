package sessions

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
	"github.com/rs/zerolog/log"
)

// DefaultBrowserCookie names the cookie that identifies a browser to a server-side Backend.
const DefaultBrowserCookie = "cc_browser"

// KeyedProvider gives every browser a random id cookie and scopes a shared Backend by it.
type KeyedProvider struct {
	Backend    Backend
	CookieName string
	MaxAge     time.Duration
}

var (
	_ Provider = (*KeyedProvider)(nil)
	_ Rotator  = (*KeyedProvider)(nil)
)

func NewKeyedProvider(backend Backend, maxAge time.Duration) *KeyedProvider {
	return &KeyedProvider{Backend: backend, CookieName: DefaultBrowserCookie, MaxAge: maxAge}
}

func (p *KeyedProvider) Storage(w http.ResponseWriter, r *http.Request) (Storage, error) {
	if cookie, err := r.Cookie(p.CookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return p.Backend.Scope(cookie.Value), nil
		}
	}

	browserID := p.issue(w, r)
	// Later reads in this request see the new id.
	r.AddCookie(&http.Cookie{Name: p.CookieName, Value: browserID})
	return p.Backend.Scope(browserID), nil
}

// Rotate issues the browser a new id and moves its Session there. The old id
// no longer reaches the Session, so an id known before sign in is useless after it.
func (p *KeyedProvider) Rotate(w http.ResponseWriter, r *http.Request, current Storage) (Storage, error) {
	ctx := r.Context()
	data, err := current.Get(ctx, StorageKey)
	if err != nil && !apperrors.Is(err, apperrors.ErrStorageKeyNotFound) {
		return nil, apperrors.Wrapf(err, "[sessions Rotate] read session")
	}

	next := p.Backend.Scope(p.issue(w, r))
	if err == nil {
		if err := next.Set(ctx, StorageKey, data); err != nil {
			return nil, apperrors.Wrapf(err, "[sessions Rotate] write session")
		}
		if err := current.Delete(ctx, StorageKey); err != nil {
			log.Warn().Err(err).Msg("failed to drop session from previous browser id")
		}
	}
	return next, nil
}

func (p *KeyedProvider) issue(w http.ResponseWriter, r *http.Request) string {
	browserID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     p.CookieName,
		Value:    browserID,
		Path:     "/",
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(p.MaxAge.Seconds()),
	})
	return browserID
}

// IsSecureRequest reports whether the browser reached us over https, directly or through a proxy.
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
