package redisstore

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
	"github.com/jrsteele09/clientconnect/sessions"
)

const DefaultPrefix = "clientconnect:browser:"

var _ sessions.Backend = (*Backend)(nil)

// Backend keeps each browser's storage in one redis hash whose TTL slides on every access.
type Backend struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func New(client redis.UniversalClient, prefix string, ttl time.Duration) *Backend {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Backend{client: client, prefix: prefix, ttl: ttl}
}

func (b *Backend) Scope(namespace string) sessions.Storage {
	return &storage{backend: b, hash: b.prefix + namespace}
}

// Ping verifies the redis connection at startup.
func (b *Backend) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorageUnavailable, "redis ping: %v", err)
	}
	return nil
}

type storage struct {
	backend *Backend
	hash    string
}

func (s *storage) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.backend.client.HGet(ctx, s.hash, key).Bytes()
	if err == redis.Nil {
		return nil, apperrors.ErrStorageKeyNotFound
	}
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrStorageUnavailable, "redis hget %s: %v", key, err)
	}
	s.touch(ctx)
	return value, nil
}

func (s *storage) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.backend.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.hash, key, value)
		if s.backend.ttl > 0 {
			pipe.Expire(ctx, s.hash, s.backend.ttl)
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrStorageUnavailable, "redis hset %s: %v", key, err)
	}
	return nil
}

func (s *storage) Delete(ctx context.Context, key string) error {
	if err := s.backend.client.HDel(ctx, s.hash, key).Err(); err != nil {
		return apperrors.Wrapf(apperrors.ErrStorageUnavailable, "redis hdel %s: %v", key, err)
	}
	return nil
}

func (s *storage) touch(ctx context.Context) {
	if s.backend.ttl > 0 {
		s.backend.client.Expire(ctx, s.hash, s.backend.ttl)
	}
}
