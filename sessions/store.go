package sessions

import (
	"context"
	"encoding/json"

	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
	"github.com/rs/zerolog/log"
)

// Store persists the current Session in a Storage. It holds no network or validation logic.
type Store struct {
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Storage exposes the underlying browser storage for other per-browser state such as flashes.
func (s *Store) Storage() Storage {
	return s.storage
}

// Rebind points the Store at storage after the browser's storage has moved.
func (s *Store) Rebind(storage Storage) {
	s.storage = storage
}

// Save persists session, replacing any previous one.
func (s *Store) Save(ctx context.Context, session Session) error {
	if !session.Valid() {
		return apperrors.Wrapf(apperrors.ErrInvalidPayload, "[sessions Save] missing access token")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return apperrors.Wrapf(err, "[sessions Save] encode session")
	}
	if err := s.storage.Set(ctx, StorageKey, data); err != nil {
		return apperrors.Wrapf(err, "[sessions Save] write session")
	}
	return nil
}

// Load returns the persisted session. Missing, unreadable or malformed data is
// reported as no session rather than as an error.
func (s *Store) Load(ctx context.Context) (*Session, bool) {
	data, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrStorageKeyNotFound) {
			log.Warn().Err(err).Msg("session storage read failed, treating as signed out")
		}
		return nil, false
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Debug().Err(err).Msg("discarding malformed session")
		return nil, false
	}
	if !session.Valid() {
		return nil, false
	}
	return &session, true
}

// Clear removes the persisted session.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		return apperrors.Wrapf(err, "[sessions Clear] delete session")
	}
	return nil
}
