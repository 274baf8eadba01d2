package surah

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/quran-api/internal/validation"
	"github.com/taiwoajasa245/quran-api/pkg/response"
)

type SurahHandler struct {
	service   SurahService
	validator *validation.Validator
}

func NewSurahHandler(service SurahService) SurahHandler {
	return SurahHandler{service: service, validator: validation.New()}
}

// ListSurahsHandler accepts an optional kitabId query parameter.
func (h *SurahHandler) ListSurahsHandler(w http.ResponseWriter, r *http.Request) {
	var kitabID *int
	if raw := r.URL.Query().Get("kitabId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid kitabId", err.Error())
			return
		}
		kitabID = &id
	}

	surahs, err := h.service.ListSurahs(r.Context(), kitabID)
	if err != nil {
		writeError(w, err, "Failed to list surahs")
		return
	}
	if surahs == nil {
		surahs = []Surah{}
	}
	response.Success(w, surahs, "successfully")
}

func (h *SurahHandler) GetSurahHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	detail, err := h.service.GetSurah(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get surah")
		return
	}
	response.Success(w, detail, "successfully")
}

func (h *SurahHandler) CreateSurahHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateSurahRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", err)
		return
	}
	s, err := h.service.CreateSurah(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to create surah")
		return
	}
	response.Created(w, s, "Surah created")
}

func (h *SurahHandler) UpdateSurahHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req UpdateSurahRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", err)
		return
	}
	s, err := h.service.UpdateSurah(r.Context(), id, req)
	if err != nil {
		writeError(w, err, "Failed to update surah")
		return
	}
	response.Success(w, s, "Surah updated")
}

func (h *SurahHandler) DeleteSurahHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteSurah(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete surah")
		return
	}
	response.Success(w, nil, "Surah deleted")
}

func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		response.Error(w, http.StatusBadRequest, "Invalid id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(w, http.StatusNotFound, "Surah not found", err.Error())
	case errors.Is(err, ErrAlreadyExists):
		response.Error(w, http.StatusConflict, "Surah already exists", err.Error())
	case errors.Is(err, ErrInvalidRelation):
		response.Error(w, http.StatusBadRequest, message, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, message, err.Error())
	}
}
