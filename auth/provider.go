package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/clientconnect/crm"
	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
	"github.com/jrsteele09/clientconnect/sessions"
	"github.com/rs/zerolog/log"
)

// Provider is the current browser's authentication state: who is signed in,
// and the operations that change it. It is backed by a Session Store and is
// the only thing that writes to it.
type Provider struct {
	store *sessions.Store
	now   func() time.Time

	mu          sync.RWMutex
	user        *crm.User
	subscribers map[int]func(*crm.User)
	nextSubID   int
}

type Option func(*Provider)

func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// New loads the persisted session once. A session whose token has expired is
// cleared and the provider starts signed out.
func New(ctx context.Context, store *sessions.Store, opts ...Option) *Provider {
	p := &Provider{
		store:       store,
		now:         time.Now,
		subscribers: make(map[int]func(*crm.User)),
	}
	for _, opt := range opts {
		opt(p)
	}

	session, ok := store.Load(ctx)
	if !ok {
		return p
	}
	if claims, err := ParseClaims(session.AccessToken); err == nil && claims.Expired(p.now()) {
		log.Info().Str("email", session.User.Email).Msg("stored session has expired, signing out")
		if err := store.Clear(ctx); err != nil {
			log.Err(err).Msg("failed to clear expired session")
		}
		return p
	}

	user := session.User
	p.user = &user
	return p
}

// Login records a successful login response. When the response carries no user
// the identity comes from the token subject, then from fallbackEmail (the
// address the user typed).
func (p *Provider) Login(ctx context.Context, resp crm.TokenResponse, fallbackEmail string) (*crm.User, error) {
	if strings.TrimSpace(resp.AccessToken) == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidPayload, "[auth Login] missing access token")
	}

	claims, claimsErr := ParseClaims(resp.AccessToken)
	if claimsErr == nil && claims.Expired(p.now()) {
		return nil, apperrors.Wrapf(apperrors.ErrSessionExpired, "[auth Login] token expired at %s", claims.ExpiresAt.Format(time.RFC3339))
	}

	var user crm.User
	switch {
	case resp.User != nil && resp.User.Email != "":
		user = *resp.User
	case claimsErr == nil && claims.Subject != "":
		user = crm.User{Email: claims.Subject}
	default:
		user = crm.User{Email: strings.TrimSpace(fallbackEmail)}
	}
	if user.Email == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidPayload, "[auth Login] no user identity")
	}

	if err := p.store.Save(ctx, sessions.Session{User: user, AccessToken: resp.AccessToken}); err != nil {
		return nil, apperrors.Wrapf(err, "[auth Login]")
	}
	p.set(&user)
	log.Info().Str("email", user.Email).Msg("user logged in")
	return p.User(), nil
}

// Logout forgets the session locally. The API holds no server-side session to revoke.
func (p *Provider) Logout(ctx context.Context) error {
	err := p.store.Clear(ctx)
	p.set(nil)
	if err != nil {
		return apperrors.Wrapf(err, "[auth Logout]")
	}
	return nil
}

// User returns a copy of the signed in user, or nil.
func (p *Provider) User() *crm.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

func (p *Provider) Authenticated() bool {
	return p.User() != nil
}

// UpdateUser replaces the stored identity after a profile change, keeping the token.
func (p *Provider) UpdateUser(ctx context.Context, user crm.User) error {
	session, ok := p.store.Load(ctx)
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	session.User = user
	if err := p.store.Save(ctx, *session); err != nil {
		return apperrors.Wrapf(err, "[auth UpdateUser]")
	}
	p.set(&user)
	return nil
}

// Subscribe registers fn to be called with the new user (nil on logout) after
// every change. The returned func removes the subscription.
func (p *Provider) Subscribe(fn func(*crm.User)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSubID
	p.nextSubID++
	p.subscribers[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subscribers, id)
	}
}

func (p *Provider) set(user *crm.User) {
	p.mu.Lock()
	p.user = user
	subs := make([]func(*crm.User), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(p.User())
	}
}
