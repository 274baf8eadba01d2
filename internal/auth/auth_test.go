package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/quran-api/internal/database/dbtest"
	"github.com/taiwoajasa245/quran-api/pkg/util"
)

type fakeRepo struct {
	users map[string]*User
}

func (f *fakeRepo) CreateUser(ctx context.Context, user User) (*User, error) {
	if _, ok := f.users[user.Email]; ok {
		return nil, ErrUserAlreadyExists
	}
	user.ID = len(f.users) + 1
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.Email] = &user
	cp := user
	return &cp, nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id int) (*User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

func send(t *testing.T, h http.Handler, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func newRouter(t *testing.T) (http.Handler, *AuthService) {
	t.Helper()
	util.BcryptCost = 4
	tokens, err := util.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	svc := NewAuthService(&fakeRepo{users: map[string]*User{}}, tokens, nil)
	h := NewHandler(svc)
	r := chi.NewRouter()
	r.Post("/auth/register", h.RegisterHandler)
	r.Post("/auth/login", h.LoginHandler)
	r.Group(func(r chi.Router) {
		r.Use(Middleware(tokens))
		r.Get("/auth/me", h.GetUserDetailsHandler)
		r.With(RequireRole(RoleAdmin)).Get("/admin/ping", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true}`))
		})
		r.With(RequireRole(RoleAdmin)).Post("/admin/users", h.CreateUserHandler)
	})
	return r, &svc
}

func TestRegisterLoginMe(t *testing.T) {
	r, _ := newRouter(t)

	code, env := send(t, r, http.MethodPost, "/auth/register", "", RegisterRequest{
		Name: "Aisha", Email: "Aisha@Example.com", Password: "s3cretpass",
	})
	require.Equal(t, http.StatusCreated, code)
	var user User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "aisha@example.com", user.Email)
	assert.Equal(t, RoleUser, user.Role)
	assert.NotEmpty(t, user.Token)
	assert.NotContains(t, string(env.Data), "s3cretpass")

	code, _ = send(t, r, http.MethodPost, "/auth/register", "", RegisterRequest{
		Name: "Again", Email: "aisha@example.com", Password: "s3cretpass",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, env = send(t, r, http.MethodPost, "/auth/register", "", RegisterRequest{Name: "x", Email: "nope", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Errors), "email")
	assert.Contains(t, string(env.Errors), "password")

	code, _ = send(t, r, http.MethodPost, "/auth/login", "", LoginRequest{Email: "aisha@example.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = send(t, r, http.MethodPost, "/auth/login", "", LoginRequest{Email: "aisha@example.com", Password: "s3cretpass"})
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &user))

	code, env = send(t, r, http.MethodGet, "/auth/me", user.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var me User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "Aisha", me.Name)
	assert.Empty(t, me.Token)
}

func TestMiddlewareRejects(t *testing.T) {
	r, _ := newRouter(t)

	code, _ := send(t, r, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = send(t, r, http.MethodGet, "/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	other, err := util.NewTokenIssuer("other-secret", time.Hour)
	require.NoError(t, err)
	forged, err := other.Generate(1, "x@example.com", RoleAdmin)
	require.NoError(t, err)
	code, _ = send(t, r, http.MethodGet, "/admin/ping", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRequireRole(t *testing.T) {
	r, _ := newRouter(t)

	_, env := send(t, r, http.MethodPost, "/auth/register", "", RegisterRequest{Name: "u", Email: "u@example.com", Password: "password1"})
	var user User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	code, _ := send(t, r, http.MethodGet, "/admin/ping", user.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRegisterIgnoresRequestedRole(t *testing.T) {
	r, _ := newRouter(t)

	code, env := send(t, r, http.MethodPost, "/auth/register", "", map[string]any{
		"name": "m", "email": "m@example.com", "password": "password1", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, code)
	var user User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, RoleUser, user.Role)

	code, _ = send(t, r, http.MethodGet, "/admin/ping", user.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = send(t, r, http.MethodPost, "/admin/users", user.Token, CreateUserRequest{
		Name: "m2", Email: "m2@example.com", Password: "password1", Role: RoleAdmin,
	})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestCreateUserByAdmin(t *testing.T) {
	r, svc := newRouter(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Root", Email: "Root@Example.com", Password: "password1", Role: RoleAdmin})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, CreateUserRequest{Name: "x", Email: "x@example.com", Password: "password1", Role: "owner"})
	assert.Error(t, err)

	admin, err := svc.Login(ctx, "root@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, admin.Role)

	code, _ := send(t, r, http.MethodGet, "/admin/ping", admin.Token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env := send(t, r, http.MethodPost, "/admin/users", admin.Token, CreateUserRequest{
		Name: "Editor", Email: "editor@example.com", Password: "password1", Role: RoleAdmin,
	})
	require.Equal(t, http.StatusCreated, code)
	var created User
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, RoleAdmin, created.Role)
	assert.Empty(t, created.Token)

	code, _ = send(t, r, http.MethodPost, "/admin/users", admin.Token, CreateUserRequest{
		Name: "Editor", Email: "editor@example.com", Password: "password1", Role: RoleUser,
	})
	assert.Equal(t, http.StatusConflict, code)

	code, env = send(t, r, http.MethodPost, "/admin/users", admin.Token, CreateUserRequest{
		Name: "Bad", Email: "bad@example.com", Password: "password1", Role: "owner",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Errors), "role")
}

func TestRepository_Postgres(t *testing.T) {
	repo := NewRepository(dbtest.New(t))
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, User{Email: "a@example.com", Password: "hash", Name: "A", Role: RoleAdmin})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.CreateUser(ctx, User{Email: "a@example.com", Password: "hash", Role: RoleUser})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	byEmail, err := repo.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.Password)

	_, err = repo.GetUserByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
