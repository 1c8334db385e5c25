package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
	"github.com/jrsteele09/clientconnect/sessions"
	"github.com/jrsteele09/clientconnect/sessions/redisstore"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, ttl time.Duration) (*redisstore.Backend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return redisstore.New(client, "", ttl), mr
}

func TestBackend_StoresPerBrowserHash(t *testing.T) {
	ctx := context.Background()
	b, mr := newBackend(t, time.Hour)
	require.NoError(t, b.Ping(ctx))

	s := b.Scope("browser-1")
	_, err := s.Get(ctx, sessions.StorageKey)
	require.ErrorIs(t, err, apperrors.ErrStorageKeyNotFound)

	require.NoError(t, s.Set(ctx, sessions.StorageKey, []byte(`{"access_token":"tok1"}`)))
	require.Equal(t, `{"access_token":"tok1"}`, mr.HGet(redisstore.DefaultPrefix+"browser-1", sessions.StorageKey))
	require.Equal(t, time.Hour, mr.TTL(redisstore.DefaultPrefix+"browser-1"))

	value, err := s.Get(ctx, sessions.StorageKey)
	require.NoError(t, err)
	require.Equal(t, `{"access_token":"tok1"}`, string(value))

	_, err = b.Scope("browser-2").Get(ctx, sessions.StorageKey)
	require.ErrorIs(t, err, apperrors.ErrStorageKeyNotFound)

	require.NoError(t, s.Delete(ctx, sessions.StorageKey))
	_, err = s.Get(ctx, sessions.StorageKey)
	require.ErrorIs(t, err, apperrors.ErrStorageKeyNotFound)
}

func TestBackend_ExpiresIdleBrowsers(t *testing.T) {
	ctx := context.Background()
	b, mr := newBackend(t, time.Minute)

	s := b.Scope("browser-1")
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	mr.FastForward(2 * time.Minute)

	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, apperrors.ErrStorageKeyNotFound)
}

func TestBackend_UnavailableRedis(t *testing.T) {
	ctx := context.Background()
	b, mr := newBackend(t, time.Minute)
	mr.Close()

	require.ErrorIs(t, b.Ping(ctx), apperrors.ErrStorageUnavailable)
	_, err := b.Scope("x").Get(ctx, "k")
	require.ErrorIs(t, err, apperrors.ErrStorageUnavailable)

	// The session store hides the outage as "signed out".
	_, ok := sessions.NewStore(b.Scope("x")).Load(ctx)
	require.False(t, ok)
}
