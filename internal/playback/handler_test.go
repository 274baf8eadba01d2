package playback

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
)

type fakeRepo struct {
	chapters []Chapter
	reciters map[int]*ReciterSource
	loads    int
}

func (f *fakeRepo) LoadChapters(ctx context.Context) ([]Chapter, error) {
	f.loads++
	return f.chapters, nil
}

func (f *fakeRepo) GetReciter(ctx context.Context, id int) (*ReciterSource, error) {
	rc, ok := f.reciters[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rc, nil
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newTestRouter(repo *fakeRepo) http.Handler {
	svc := NewPlaybackService(repo, NewSessionManager(time.Hour, nil), NewResolver("", ""), nil)
	h := NewPlaybackHandler(svc)

	r := chi.NewRouter()
	r.Post("/playback/sessions", h.CreateSessionHandler)
	r.Get("/playback/sessions/{id}", h.GetSessionHandler)
	r.Delete("/playback/sessions/{id}", h.DeleteSessionHandler)
	r.Post("/playback/sessions/{id}/finished", h.FinishedHandler)
	r.Post("/playback/sessions/{id}/position", h.PositionHandler)
	r.Post("/playback/sessions/{id}/load-failed", h.LoadFailedHandler)
	r.Post("/playback/sessions/{id}/next", h.NextHandler)
	r.Post("/playback/sessions/{id}/previous", h.PreviousHandler)
	r.Post("/playback/sessions/{id}/pause", h.PauseHandler)
	r.Post("/playback/sessions/{id}/resume", h.ResumeHandler)
	r.Post("/playback/sessions/{id}/stop", h.StopHandler)
	r.Post("/playback/sessions/{id}/seek", h.SeekHandler)
	r.Post("/playback/sessions/{id}/select", h.SelectHandler)
	r.Post("/playback/sessions/{id}/next-chapter", h.NextChapterHandler)
	r.Post("/playback/sessions/{id}/previous-chapter", h.PreviousChapterHandler)
	return r
}

func call(t *testing.T, h http.Handler, method, path string, body interface{}) (int, envelope, Snapshot) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, &buf))

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var snap Snapshot
	if len(env.Data) > 0 && string(env.Data) != "null" {
		require.NoError(t, json.Unmarshal(env.Data, &snap))
	}
	return w.Code, env, snap
}

func TestPlaybackHandlers_Listening(t *testing.T) {
	repo := &fakeRepo{chapters: chapters(1, 2, 3)}
	router := newTestRouter(repo)

	code, _, snap := call(t, router, http.MethodPost, "/playback/sessions", CreateSessionRequest{Chapter: 2, Autoplay: true})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, StatePlayingPreamble, snap.Status.State)
	require.Len(t, snap.Commands, 2)
	assert.Equal(t, clip(1, 1), snap.Commands[0].URI)

	base := "/playback/sessions/" + snap.SessionID

	code, env, _ := call(t, router, http.MethodPost, base+"/previous", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Command ignored in current state", env.Message)

	_, _, snap = call(t, router, http.MethodPost, base+"/finished", nil)
	assert.Equal(t, StatePlayingVerse, snap.Status.State)
	require.NotNil(t, snap.Status.Verse)
	assert.Equal(t, 1, *snap.Status.Verse)

	_, _, snap = call(t, router, http.MethodPost, base+"/position", PositionRequest{Elapsed: 2, Duration: 8})
	assert.Equal(t, 8.0, snap.Status.Duration)

	code, _, _ = call(t, router, http.MethodPost, base+"/seek", SeekRequest{Seconds: 9})
	assert.Equal(t, http.StatusBadRequest, code)

	_, _, snap = call(t, router, http.MethodPost, base+"/pause", nil)
	assert.Equal(t, StatePaused, snap.Status.State)
	assert.Equal(t, []Command{{Op: "pause"}}, snap.Commands)

	_, _, snap = call(t, router, http.MethodPost, base+"/resume", nil)
	assert.Equal(t, StatePlayingVerse, snap.Status.State)

	off := false
	_, _, snap = call(t, router, http.MethodPost, base+"/select", SelectRequest{Chapter: 3, Verse: 200, AutoAdvance: &off})
	assert.False(t, snap.Status.AutoAdvance)
	assert.Equal(t, clip(3, 200), snap.Status.URI)

	_, _, snap = call(t, router, http.MethodPost, base+"/load-failed", LoadFailedRequest{URI: clip(3, 200), Reason: "network"})
	assert.Equal(t, StatePaused, snap.Status.State)
	assert.Contains(t, snap.Status.Notice, "network")

	_, _, snap = call(t, router, http.MethodPost, base+"/previous-chapter", nil)
	assert.Equal(t, StatePlayingPreamble, snap.Status.State)
	assert.Equal(t, 2, snap.Status.Chapter)

	_, _, snap = call(t, router, http.MethodPost, base+"/next-chapter", nil)
	assert.Equal(t, 3, snap.Status.Chapter)

	_, _, snap = call(t, router, http.MethodPost, base+"/next", nil)
	require.NotNil(t, snap.Status.Verse)
	assert.Equal(t, 1, *snap.Status.Verse)

	_, _, snap = call(t, router, http.MethodPost, base+"/stop", nil)
	assert.Equal(t, StateIdle, snap.Status.State)

	code, _, _ = call(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _, _ = call(t, router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, code)

	assert.Equal(t, 1, repo.loads)
}

func TestPlaybackHandlers_CreateErrors(t *testing.T) {
	router := newTestRouter(&fakeRepo{chapters: chapters(1)})

	code, env, _ := call(t, router, http.MethodPost, "/playback/sessions", CreateSessionRequest{Chapter: 0})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Errors), "chapter")

	code, _, _ = call(t, router, http.MethodPost, "/playback/sessions", CreateSessionRequest{Chapter: 2})
	assert.Equal(t, http.StatusNotFound, code)

	missing := 9
	code, _, _ = call(t, router, http.MethodPost, "/playback/sessions", CreateSessionRequest{Chapter: 1, ReciterID: &missing})
	assert.Equal(t, http.StatusNotFound, code)

	code, _, _ = call(t, router, http.MethodPost, "/playback/sessions", map[string]any{"chapter": 1, "volume": 3})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPlaybackHandlers_ReciterSource(t *testing.T) {
	repo := &fakeRepo{
		chapters: chapters(1, 2),
		reciters: map[int]*ReciterSource{
			4: {ID: 4, Name: "Husary", Path: "Husary_64kbps"},
			5: {ID: 5, Name: "Mirror", Path: "Minshawy", BaseURL: "https://mirror.example.com/audio"},
		},
	}
	router := newTestRouter(repo)

	id := 4
	_, _, snap := call(t, router, http.MethodPost, "/playback/sessions", CreateSessionRequest{Chapter: 1, Autoplay: true, ReciterID: &id})
	assert.Equal(t, "https://everyayah.com/data/Husary_64kbps/001001.mp3", snap.Status.URI)

	id = 5
	_, _, snap = call(t, router, http.MethodPost, "/playback/sessions", CreateSessionRequest{Chapter: 2, Autoplay: true, ReciterID: &id})
	assert.Equal(t, "https://mirror.example.com/audio/Minshawy/001001.mp3", snap.Status.URI)
}

func TestPlaybackService_ReloadCatalog(t *testing.T) {
	repo := &fakeRepo{chapters: chapters(1)}
	svc := NewPlaybackService(repo, NewSessionManager(time.Hour, nil), NewResolver("", ""), nil)

	_, err := svc.CreateSession(context.Background(), CreateSessionRequest{Chapter: 2})
	assert.ErrorIs(t, err, ErrUnknownChapter)

	repo.chapters = chapters(1, 2)
	require.NoError(t, svc.ReloadCatalog(context.Background()))

	snap, err := svc.CreateSession(context.Background(), CreateSessionRequest{Chapter: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Status.Chapter)
	assert.Equal(t, 2, repo.loads)
}

func TestPlaybackService_EmptyCatalogReloadsOnNextUse(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewPlaybackService(repo, NewSessionManager(time.Hour, nil), NewResolver("", ""), nil)

	_, err := svc.CreateSession(context.Background(), CreateSessionRequest{Chapter: 1})
	assert.ErrorIs(t, err, ErrUnknownChapter)

	// Seeding after startup needs no explicit reload.
	repo.chapters = chapters(1)
	snap, err := svc.CreateSession(context.Background(), CreateSessionRequest{Chapter: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Status.Chapter)
	assert.Equal(t, 2, repo.loads)

	_, err = svc.CreateSession(context.Background(), CreateSessionRequest{Chapter: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.loads)
}
