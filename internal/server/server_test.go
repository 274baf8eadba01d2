package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taiwoajasa245/quran-api/internal/auth"
	"github.com/taiwoajasa245/quran-api/internal/database/dbtest"
	"github.com/taiwoajasa245/quran-api/pkg/config"
	"github.com/taiwoajasa245/quran-api/pkg/util"
)

// stubDB reports a fixed health and is never queried.
type stubDB struct {
	status string
}

func (s stubDB) DB() *sql.DB { return nil }
func (s stubDB) Migrate(ctx context.Context) error { return nil }
func (s stubDB) Close() error { return nil }
func (s stubDB) Health() map[string]string {
	return map[string]string{"status": s.status}
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		JWTSecret:          "test-secret",
		JWTTTL:             time.Hour,
		PlaybackSessionTTL: time.Hour,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
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
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestNewServer_DatabaseDown(t *testing.T) {
	_, err := NewServer(stubDB{status: "down"}, testConfig(), nil)
	assert.ErrorIs(t, err, ErrDatabaseDown)
}

func TestNewServer_RequiresJWTSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""
	_, err := NewServer(stubDB{status: "up"}, cfg, nil)
	assert.Error(t, err)
}

func TestRoutes(t *testing.T) {
	s, err := NewServer(stubDB{status: "up"}, testConfig(), nil)
	require.NoError(t, err)
	h := s.HTTPServer().Handler

	code, env := send(t, h, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Quran api")

	code, _ = send(t, h, http.MethodGet, apiPrefix+"/", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = send(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "up")

	tokens, err := util.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	userToken, err := tokens.Generate(1, "u@example.com", "user")
	require.NoError(t, err)
	adminToken, err := tokens.Generate(2, "a@example.com", "admin")
	require.NoError(t, err)

	for _, path := range []string{"/kitabs", "/surahs", "/ayahs", "/tafsirs", "/reciters", "/admin/users", "/admin/paras/assign", "/admin/playback/reload"} {
		code, _ = send(t, h, http.MethodPost, apiPrefix+path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
		code, _ = send(t, h, http.MethodPost, apiPrefix+path, userToken, nil)
		assert.Equal(t, http.StatusForbidden, code, path)
	}

	// Admins get through to validation, which fails before any query.
	code, _ = send(t, h, http.MethodPost, apiPrefix+"/kitabs", adminToken, map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = send(t, h, http.MethodPost, apiPrefix+"/playback/sessions", "", map[string]int{"chapter": 115})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = send(t, h, http.MethodGet, apiPrefix+"/playback/sessions/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBackgroundJobs(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := testConfig()
	cfg.ParaSyncInterval = time.Hour
	s, err := NewServer(stubDB{status: "up"}, cfg, nil)
	require.NoError(t, err)

	s.StartBackgroundJobs()
	s.StopBackgroundJobs()
}

func TestSweepInterval(t *testing.T) {
	assert.Equal(t, time.Duration(0), sweepInterval(0))
	assert.Equal(t, time.Minute, sweepInterval(2*time.Minute))
	assert.Equal(t, 30*time.Minute, sweepInterval(2*time.Hour))
}

func TestListeningFlow_Postgres(t *testing.T) {
	db := dbtest.New(t)
	s, err := NewServer(db, testConfig(), nil)
	require.NoError(t, err)
	h := s.HTTPServer().Handler

	util.BcryptCost = 4
	authService := auth.NewAuthService(auth.NewRepository(db), s.tokens, nil)
	_, err = authService.CreateUser(context.Background(), auth.CreateUserRequest{
		Name: "Admin", Email: "admin@example.com", Password: "password1", Role: auth.RoleAdmin,
	})
	require.NoError(t, err)

	code, env := send(t, h, http.MethodPost, apiPrefix+"/auth/login", "", map[string]string{
		"email": "admin@example.com", "password": "password1",
	})
	require.Equal(t, http.StatusOK, code)
	var user struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))

	code, env = send(t, h, http.MethodPost, apiPrefix+"/kitabs", user.Token, map[string]string{"name": "Quran"})
	require.Equal(t, http.StatusCreated, code)
	var k struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &k))

	for _, a := range [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}} {
		code, _ = send(t, h, http.MethodPost, apiPrefix+"/ayahs", user.Token, map[string]any{
			"kitab_id": k.ID, "surah_number": a[0], "ayah_number": a[1], "text_arabic": "text",
		})
		require.Equal(t, http.StatusCreated, code)
	}

	code, env = send(t, h, http.MethodPost, apiPrefix+"/playback/sessions", "", map[string]any{"chapter": 2, "autoplay": true})
	require.Equal(t, http.StatusCreated, code)
	var snap struct {
		SessionID string `json:"session_id"`
		Status    struct {
			State string `json:"state"`
		} `json:"status"`
		Commands []struct {
			Op  string `json:"op"`
			URI string `json:"uri"`
		} `json:"commands"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, "playing_preamble", snap.Status.State)
	require.NotEmpty(t, snap.Commands)
	assert.Equal(t, "https://everyayah.com/data/Alafasy_128kbps/001001.mp3", snap.Commands[0].URI)

	code, _ = send(t, h, http.MethodPost, apiPrefix+"/admin/playback/reload", user.Token, nil)
	assert.Equal(t, http.StatusOK, code)
}
