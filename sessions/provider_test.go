package sessions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/clientconnect/crm"
	"github.com/jrsteele09/clientconnect/sessions"
	"github.com/jrsteele09/clientconnect/sessions/memstore"
	"github.com/stretchr/testify/require"
)

func TestKeyedProvider_IssuesAndReusesBrowserID(t *testing.T) {
	ctx := context.Background()
	provider := sessions.NewKeyedProvider(memstore.New(), time.Hour)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	storage, err := provider.Storage(rec, req)
	require.NoError(t, err)
	require.NoError(t, storage.Set(ctx, "k", []byte("v")))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, sessions.DefaultBrowserCookie, cookies[0].Name)
	_, err = uuid.Parse(cookies[0].Value)
	require.NoError(t, err)
	require.True(t, cookies[0].HttpOnly)

	// Same browser on the next request sees the same storage and gets no new cookie.
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req2.AddCookie(cookies[0])
	storage2, err := provider.Storage(rec2, req2)
	require.NoError(t, err)
	value, err := storage2.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", string(value))
	require.Empty(t, rec2.Result().Cookies())
}

func TestKeyedProvider_ReplacesForgedBrowserID(t *testing.T) {
	provider := sessions.NewKeyedProvider(memstore.New(), time.Hour)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessions.DefaultBrowserCookie, Value: "../../etc"})
	_, err := provider.Storage(rec, req)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.NotEqual(t, "../../etc", cookies[0].Value)
}

func TestIsSecureRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.False(t, sessions.IsSecureRequest(req))
	req.Header.Set("X-Forwarded-Proto", "https")
	require.True(t, sessions.IsSecureRequest(req))
}

func TestKeyedProvider_RotateMovesSession(t *testing.T) {
	ctx := context.Background()
	provider := sessions.NewKeyedProvider(memstore.New(), time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(&http.Cookie{Name: sessions.DefaultBrowserCookie, Value: uuid.NewString()})
	old, err := provider.Storage(httptest.NewRecorder(), req)
	require.NoError(t, err)
	require.NoError(t, sessions.NewStore(old).Save(ctx, sessions.Session{User: crm.User{Email: "a@b.com"}, AccessToken: "tok"}))

	rec := httptest.NewRecorder()
	next, err := provider.Rotate(rec, req, old)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	planted, _ := req.Cookie(sessions.DefaultBrowserCookie)
	require.NotEqual(t, planted.Value, cookies[0].Value)

	session, ok := sessions.NewStore(next).Load(ctx)
	require.True(t, ok)
	require.Equal(t, "a@b.com", session.User.Email)

	_, ok = sessions.NewStore(old).Load(ctx)
	require.False(t, ok, "the previous id no longer reaches the session")
}

func TestKeyedProvider_RotateWithoutSession(t *testing.T) {
	provider := sessions.NewKeyedProvider(memstore.New(), time.Hour)
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	old, err := provider.Storage(httptest.NewRecorder(), req)
	require.NoError(t, err)

	next, err := provider.Rotate(httptest.NewRecorder(), req, old)
	require.NoError(t, err)
	_, ok := sessions.NewStore(next).Load(context.Background())
	require.False(t, ok)
}
