package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "gestor_session", "segredo-de-teste", time.Hour, false)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)

	sess.SetUser("0b9fb3d2-64a4-4f58-9c4a-2f87f3f0a001")
	sess.Set("tema", "escuro")

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))
	cookie := sessionCookie(t, rec, "gestor_session")
	require.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	again := httptest.NewRequest(http.MethodGet, "/", nil)
	again.AddCookie(cookie)
	loaded, err := sm.Load(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, "0b9fb3d2-64a4-4f58-9c4a-2f87f3f0a001", loaded.User())
	assert.Equal(t, "escuro", loaded.Get("tema"))
}

func TestSessionDestroyClearsStateAndCookie(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	sess.SetUser("alguem")

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))
	cookie := sessionCookie(t, rec, "gestor_session")

	sm.Destroy(sess)
	rec2 := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec2, sess))
	expired := sessionCookie(t, rec2, "gestor_session")
	assert.Equal(t, -1, expired.MaxAge)

	again := httptest.NewRequest(http.MethodGet, "/", nil)
	again.AddCookie(cookie)
	loaded, err := sm.Load(ctx, again)
	require.NoError(t, err)
	assert.Empty(t, loaded.User(), "destroyed session must not resurrect its user")
}

func TestSessionUnknownCookieStartsFresh(t *testing.T) {
	sm := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "gestor_session", Value: "expirada"})

	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, sess.User())
	assert.Equal(t, "expirada", sess.ID, "the cookie id is reused for the fresh session")
}

func TestIdentityContextRoundTrip(t *testing.T) {
	assert.Nil(t, IdentityFromContext(context.Background()))

	id := Identity{}
	ctx := ContextWithIdentity(context.Background(), id)
	got := IdentityFromContext(ctx)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
}
