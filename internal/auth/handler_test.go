package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestor-erp/gestor/internal/shared"
)

type fakeRepo struct {
	users map[string]*User
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

type fakeProfiles struct {
	byUser map[uuid.UUID]*Profile
}

func (f *fakeProfiles) ProfileByUser(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) SaveProfile(ctx context.Context, userID uuid.UUID, nome, cargo string) (*Profile, error) {
	p := &Profile{UserID: userID, Nome: nome, Cargo: cargo, UpdatedAt: time.Now()}
	f.byUser[userID] = p
	return p, nil
}

type fixture struct {
	router   chi.Router
	sessions *shared.SessionManager
	profiles *fakeProfiles
	sess     *shared.Session
}

func newFixture(t *testing.T, users ...*User) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sessions := shared.NewSessionManager(client, "gestor_session", "segredo-de-teste", time.Hour, false)

	repo := &fakeRepo{users: make(map[string]*User)}
	for _, u := range users {
		repo.users[u.Email] = u
	}
	profiles := &fakeProfiles{byUser: make(map[uuid.UUID]*Profile)}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(repo), sessions, profiles)

	fx := &fixture{sessions: sessions, profiles: profiles}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sess, err := sessions.Load(req.Context(), req)
			require.NoError(t, err)
			fx.sess = sess
			next.ServeHTTP(w, req.WithContext(shared.ContextWithSession(req.Context(), sess)))
		})
	})
	handler.MountRoutes(r)
	fx.router = r
	return fx
}

func activeUser(t *testing.T, email, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &User{ID: uuid.New(), Email: email, PasswordHash: string(hash), IsActive: true}
}

func TestLoginSuccessBindsSessionUser(t *testing.T) {
	user := activeUser(t, "dona@loja.com.br", "senha-forte-123")
	fx := newFixture(t, user)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"dona@loja.com.br","password":"senha-forte-123"}`))
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, user.ID.String(), body.ID)
	assert.Equal(t, user.Email, body.Email)
	assert.Equal(t, user.ID.String(), fx.sess.User())
}

func TestLoginWrongPassword(t *testing.T) {
	fx := newFixture(t, activeUser(t, "dona@loja.com.br", "senha-forte-123"))

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"dona@loja.com.br","password":"senha-errada-1"}`))
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, fx.sess.User())
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	fx := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"ninguem@loja.com.br","password":"senha-forte-123"}`))
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code, "unknown email must be indistinguishable from a bad password")
}

func TestLoginInactiveAccountIsRejected(t *testing.T) {
	user := activeUser(t, "ex@loja.com.br", "senha-forte-123")
	user.IsActive = false
	fx := newFixture(t, user)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"ex@loja.com.br","password":"senha-forte-123"}`))
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginValidatesShape(t *testing.T) {
	fx := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"não-é-email","password":"curta"}`))
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeWithoutIdentity(t *testing.T) {
	fx := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func authedRequest(method, target, body string, id uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(shared.ContextWithIdentity(req.Context(), shared.Identity{ID: id}))
}

func TestPerfilWithoutIdentity(t *testing.T) {
	fx := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/perfil", nil)
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPerfilNeverSavedIsEmptyNotAnError(t *testing.T) {
	fx := newFixture(t)
	userID := uuid.New()

	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, authedRequest(http.MethodGet, "/perfil", "", userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var body Profile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, userID, body.UserID)
	assert.Empty(t, body.Nome)
	assert.Empty(t, body.Cargo)
}

func TestPerfilSaveThenLoad(t *testing.T) {
	fx := newFixture(t)
	userID := uuid.New()

	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, authedRequest(http.MethodPut, "/perfil",
		`{"nome":"Maria da Silva","cargo":"Proprietária"}`, userID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	fx.router.ServeHTTP(rec, authedRequest(http.MethodGet, "/perfil", "", userID))
	require.Equal(t, http.StatusOK, rec.Code)

	var body Profile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Maria da Silva", body.Nome)
	assert.Equal(t, "Proprietária", body.Cargo)
}

func TestPerfilUpdateValidatesLength(t *testing.T) {
	fx := newFixture(t)

	long := strings.Repeat("a", 121)
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, authedRequest(http.MethodPut, "/perfil",
		`{"nome":"`+long+`"}`, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
