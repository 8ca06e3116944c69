package middleware_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chef_bazaar/internal/api/middleware"
	"chef_bazaar/internal/common"
	"chef_bazaar/internal/common/security"
	"chef_bazaar/internal/domain/model"
)

// fakeDirectory is an in-memory identity directory for gate tests.
type fakeDirectory struct {
	users map[string]*model.User
}

func (f *fakeDirectory) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if user, ok := f.users[email]; ok {
		return user, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeDirectory) Create(context.Context, *model.User) error { return nil }
func (f *fakeDirectory) FindByID(context.Context, string) (*model.User, error) {
	return nil, common.ErrNotFound
}
func (f *fakeDirectory) FindAll(context.Context) ([]model.User, error) { return nil, nil }
func (f *fakeDirectory) CountUsers(context.Context) (int, error)       { return 0, nil }
func (f *fakeDirectory) UpdateStatus(context.Context, string, string) error {
	return nil
}
func (f *fakeDirectory) UpdateRole(context.Context, *sql.Tx, string, string, *string) error {
	return nil
}
func (f *fakeDirectory) NextChefSeq(context.Context, *sql.Tx) (int64, error) { return 0, nil }

// newGateRouter wires the full gate the way the API does: jwtauth verifier
// first, then the guard checks each protected route declares.
func newGateRouter(codec *security.TokenCodec, dir *fakeDirectory) http.Handler {
	guard := middleware.NewGuard(dir, zerolog.Nop())

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(codec.JWTAuth()))

	// Identity only.
	r.Group(func(ar chi.Router) {
		ar.Use(guard.Authenticator)
		ar.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			email, _ := middleware.EmailFromContext(r.Context())
			w.Write([]byte(email))
		})
	})

	// Order placement: user role plus fraud check.
	r.Group(func(or chi.Router) {
		or.Use(guard.Authenticator)
		or.Use(guard.RequireRole(model.RoleUser))
		or.Use(guard.RejectFraud)
		or.Post("/orders", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
	})

	// Admin only.
	r.Group(func(admin chi.Router) {
		admin.Use(guard.Authenticator)
		admin.Use(guard.RequireRole(model.RoleAdmin))
		admin.Get("/users", func(w http.ResponseWriter, r *http.Request) {
			user, _ := middleware.UserFromContext(r.Context())
			w.Write([]byte(user.Role))
		})
	})

	return r
}

func newDirectory() *fakeDirectory {
	return &fakeDirectory{users: map[string]*model.User{
		"user@x.com":  {ID: "u1", Email: "user@x.com", Role: model.RoleUser, Status: model.StatusActive},
		"admin@x.com": {ID: "u2", Email: "admin@x.com", Role: model.RoleAdmin, Status: model.StatusActive},
		"fraud@x.com": {ID: "u3", Email: "fraud@x.com", Role: model.RoleUser, Status: model.StatusFraud},
	}}
}

func doRequest(t *testing.T, h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAuthenticator_MissingToken(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	h := newGateRouter(codec, newDirectory())

	w := doRequest(t, h, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticator_MalformedToken(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	h := newGateRouter(codec, newDirectory())

	w := doRequest(t, h, http.MethodGet, "/me", "not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	expired := security.NewTokenCodec([]byte("secret"), -time.Minute)
	h := newGateRouter(codec, newDirectory())

	tok, err := expired.Issue("user@x.com")
	require.NoError(t, err)

	w := doRequest(t, h, http.MethodGet, "/me", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticator_WrongSignature(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	forged := security.NewTokenCodec([]byte("other-secret"), time.Hour)
	h := newGateRouter(codec, newDirectory())

	tok, err := forged.Issue("user@x.com")
	require.NoError(t, err)

	w := doRequest(t, h, http.MethodGet, "/me", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticator_DenialIsUniform(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	expired := security.NewTokenCodec([]byte("secret"), -time.Minute)
	h := newGateRouter(codec, newDirectory())

	expiredTok, err := expired.Issue("user@x.com")
	require.NoError(t, err)

	missing := doRequest(t, h, http.MethodGet, "/me", "")
	malformed := doRequest(t, h, http.MethodGet, "/me", "junk")
	stale := doRequest(t, h, http.MethodGet, "/me", expiredTok)

	// The caller must not learn why a credential failed.
	assert.Equal(t, missing.Body.String(), malformed.Body.String())
	assert.Equal(t, missing.Body.String(), stale.Body.String())
}

func TestAuthenticator_AttachesIdentity(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	h := newGateRouter(codec, newDirectory())

	tok, err := codec.Issue("user@x.com")
	require.NoError(t, err)

	w := doRequest(t, h, http.MethodGet, "/me", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user@x.com", w.Body.String())
}

func TestRequireRole_Denied(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	h := newGateRouter(codec, newDirectory())

	tok, err := codec.Issue("user@x.com")
	require.NoError(t, err)

	w := doRequest(t, h, http.MethodGet, "/users", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_UnknownUser(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	h := newGateRouter(codec, newDirectory())

	// Valid token for an email that is not in the directory.
	tok, err := codec.Issue("ghost@x.com")
	require.NoError(t, err)

	w := doRequest(t, h, http.MethodGet, "/users", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_AdmitsAndAttachesUser(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	h := newGateRouter(codec, newDirectory())

	tok, err := codec.Issue("admin@x.com")
	require.NoError(t, err)

	w := doRequest(t, h, http.MethodGet, "/users", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.RoleAdmin, w.Body.String())
}

func TestRequireRole_LiveLookup(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	dir := newDirectory()
	h := newGateRouter(codec, dir)

	tok, err := codec.Issue("user@x.com")
	require.NoError(t, err)

	w := doRequest(t, h, http.MethodGet, "/users", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Promote without reissuing the token; the next request must pass.
	dir.users["user@x.com"].Role = model.RoleAdmin
	w = doRequest(t, h, http.MethodGet, "/users", tok)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRejectFraud_BlocksOrderPlacement(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	h := newGateRouter(codec, newDirectory())

	tok, err := codec.Issue("fraud@x.com")
	require.NoError(t, err)

	w := doRequest(t, h, http.MethodPost, "/orders", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRejectFraud_FraudUserStillAuthenticated(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	h := newGateRouter(codec, newDirectory())

	tok, err := codec.Issue("fraud@x.com")
	require.NoError(t, err)

	// Fraud blocks new marketplace activity, not authentication.
	w := doRequest(t, h, http.MethodGet, "/me", tok)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFullGate_AdmitsActiveUser(t *testing.T) {
	codec := security.NewTokenCodec([]byte("secret"), time.Hour)
	h := newGateRouter(codec, newDirectory())

	tok, err := codec.Issue("user@x.com")
	require.NoError(t, err)

	w := doRequest(t, h, http.MethodPost, "/orders", tok)
	assert.Equal(t, http.StatusCreated, w.Code)
}
