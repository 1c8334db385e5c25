package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
	"github.com/jrsteele09/clientconnect/sessions"
	"github.com/rs/zerolog/log"
)

var _ sessions.Backend = (*Backend)(nil)

type namespace struct {
	values  map[string][]byte
	touched time.Time
}

// Backend is an in-process sessions.Backend. Contents are lost on restart.
// With an idle timeout, browsers not seen for that long are forgotten.
type Backend struct {
	mu        sync.RWMutex
	items     map[string]*namespace
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type Option func(*Backend)

// WithIdleTimeout forgets a browser's storage once it has not been written or read for d.
func WithIdleTimeout(d time.Duration) Option {
	return func(b *Backend) {
		b.idle = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		b.now = now
	}
}

func New(opts ...Option) *Backend {
	b := &Backend{
		items: make(map[string]*namespace),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Scope returns the storage of one browser.
func (b *Backend) Scope(namespace string) sessions.Storage {
	return &storage{backend: b, namespace: namespace}
}

// expired must be called with mu held.
func (b *Backend) expired(ns *namespace, now time.Time) bool {
	return b.idle > 0 && now.Sub(ns.touched) > b.idle
}

// sweepLocked drops idle namespaces at most once per idle period. mu must be held for writing.
func (b *Backend) sweepLocked(now time.Time) {
	if b.idle <= 0 || now.Sub(b.lastSweep) < b.idle {
		return
	}
	before := len(b.items)
	for name, ns := range b.items {
		if b.expired(ns, now) {
			delete(b.items, name)
		}
	}
	b.lastSweep = now
	if dropped := before - len(b.items); dropped > 0 {
		log.Debug().Int("dropped", dropped).Int("remaining", len(b.items)).Msg("memstore swept idle browsers")
	}
}

type storage struct {
	backend   *Backend
	namespace string
}

func (s *storage) Get(_ context.Context, key string) ([]byte, error) {
	b := s.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	ns, ok := b.items[s.namespace]
	if !ok || b.expired(ns, now) {
		return nil, apperrors.ErrStorageKeyNotFound
	}
	value, ok := ns.values[key]
	if !ok {
		return nil, apperrors.ErrStorageKeyNotFound
	}
	ns.touched = now
	return append([]byte(nil), value...), nil
}

func (s *storage) Set(_ context.Context, key string, value []byte) error {
	if s.namespace == "" {
		return fmt.Errorf("namespace is required")
	}

	b := s.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.sweepLocked(now)
	ns, ok := b.items[s.namespace]
	if !ok || b.expired(ns, now) {
		ns = &namespace{values: make(map[string][]byte)}
		b.items[s.namespace] = ns
	}
	// Copy so callers can't mutate stored state
	ns.values[key] = append([]byte(nil), value...)
	ns.touched = now
	return nil
}

func (s *storage) Delete(_ context.Context, key string) error {
	b := s.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	ns, ok := b.items[s.namespace]
	if !ok {
		return nil // Already doesn't exist, no error
	}
	delete(ns.values, key)

	// Clean up empty namespace map
	if len(ns.values) == 0 {
		delete(b.items, s.namespace)
	}
	return nil
}
