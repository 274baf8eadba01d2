package playback

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/quran-api/internal/validation"
	"github.com/taiwoajasa245/quran-api/pkg/response"
)

type PlaybackHandler struct {
	service   *PlaybackService
	validator *validation.Validator
}

func NewPlaybackHandler(service *PlaybackService) PlaybackHandler {
	return PlaybackHandler{service: service, validator: validation.New()}
}

func (h *PlaybackHandler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !h.decode(w, r, &req) {
		return
	}

	snap, err := h.service.CreateSession(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to create playback session")
		return
	}
	response.Created(w, snap, "Playback session created")
}

func (h *PlaybackHandler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, nil)
}

func (h *PlaybackHandler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Sessions().Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "Failed to close playback session")
		return
	}
	response.Success(w, nil, "Playback session closed")
}

// ReloadCatalogHandler rereads the verse catalog so new sessions see
// ayahs edited since the first load.
func (h *PlaybackHandler) ReloadCatalogHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ReloadCatalog(r.Context()); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to reload playback catalog", err.Error())
		return
	}
	response.Success(w, nil, "Playback catalog reloaded")
}

// FinishedHandler reports that the current clip played to its end.
func (h *PlaybackHandler) FinishedHandler(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(c *Controller) error {
		c.OnFinished()
		return nil
	})
}

func (h *PlaybackHandler) PositionHandler(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.run(w, r, func(c *Controller) error {
		c.OnPositionUpdate(req.Elapsed, req.Duration)
		return nil
	})
}

func (h *PlaybackHandler) LoadFailedHandler(w http.ResponseWriter, r *http.Request) {
	var req LoadFailedRequest
	if !h.decode(w, r, &req) {
		return
	}
	reason := req.Reason
	if reason == "" {
		reason = "player could not load clip"
	}
	h.run(w, r, func(c *Controller) error {
		c.OnLoadFailed(req.URI, errors.New(reason))
		return nil
	})
}

func (h *PlaybackHandler) NextHandler(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, (*Controller).Next)
}

func (h *PlaybackHandler) PreviousHandler(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, (*Controller).Previous)
}

func (h *PlaybackHandler) PauseHandler(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, (*Controller).Pause)
}

func (h *PlaybackHandler) ResumeHandler(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, (*Controller).Resume)
}

func (h *PlaybackHandler) StopHandler(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, (*Controller).Stop)
}

func (h *PlaybackHandler) NextChapterHandler(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, (*Controller).NextChapter)
}

func (h *PlaybackHandler) PreviousChapterHandler(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, (*Controller).PreviousChapter)
}

func (h *PlaybackHandler) SeekHandler(w http.ResponseWriter, r *http.Request) {
	var req SeekRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.run(w, r, func(c *Controller) error {
		return c.Seek(req.Seconds)
	})
}

func (h *PlaybackHandler) SelectHandler(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.run(w, r, func(c *Controller) error {
		return c.Select(req.Chapter, req.Verse, req.Preamble, req.autoAdvance())
	})
}

func (h *PlaybackHandler) run(w http.ResponseWriter, r *http.Request, fn func(*Controller) error) {
	snap, err := h.service.Sessions().Do(chi.URLParam(r, "id"), fn)
	switch {
	case err == nil:
		response.Success(w, snap, "successfully")
	case errors.Is(err, ErrInvalidTransition):
		// Not a failure: the session is unchanged and the client gets its state back.
		response.Success(w, snap, "Command ignored in current state")
	default:
		writeError(w, err, "Playback command failed")
	}
}

func (h *PlaybackHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := response.Decode(r, dst); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return false
	}
	if err := h.validator.Validate(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.Error(w, http.StatusNotFound, "Playback session not found", err.Error())
	case errors.Is(err, ErrUnknownChapter), errors.Is(err, ErrUnknownVerse), errors.Is(err, ErrNotFound):
		response.Error(w, http.StatusNotFound, message, err.Error())
	case errors.Is(err, ErrInvalidSeek):
		response.Error(w, http.StatusBadRequest, message, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, message, err.Error())
	}
}
