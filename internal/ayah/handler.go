package ayah

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/quran-api/internal/validation"
	"github.com/taiwoajasa245/quran-api/pkg/response"
)

type AyahHandler struct {
	service   AyahService
	validator *validation.Validator
}

func NewAyahHandler(service AyahService) AyahHandler {
	return AyahHandler{service: service, validator: validation.New()}
}

// ListAyahsHandler accepts an optional surahId query parameter.
func (h *AyahHandler) ListAyahsHandler(w http.ResponseWriter, r *http.Request) {
	var surahID *int
	if raw := r.URL.Query().Get("surahId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid surahId", err.Error())
			return
		}
		surahID = &id
	}

	ayahs, err := h.service.ListAyahs(r.Context(), surahID)
	if err != nil {
		writeError(w, err, "Failed to list ayahs")
		return
	}
	if ayahs == nil {
		ayahs = []Ayah{}
	}
	response.Success(w, ayahs, "successfully")
}

func (h *AyahHandler) GetAyahHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	a, err := h.service.GetAyah(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get ayah")
		return
	}
	response.Success(w, a, "successfully")
}

func (h *AyahHandler) CreateAyahHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateAyahRequest
	if !h.decode(w, r, &req) {
		return
	}
	a, err := h.service.CreateAyah(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to create ayah")
		return
	}
	response.Created(w, a, "Ayah created")
}

func (h *AyahHandler) UpdateAyahHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req UpdateAyahRequest
	if !h.decode(w, r, &req) {
		return
	}
	a, err := h.service.UpdateAyah(r.Context(), id, req)
	if err != nil {
		writeError(w, err, "Failed to update ayah")
		return
	}
	response.Success(w, a, "Ayah updated")
}

func (h *AyahHandler) DeleteAyahHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteAyah(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete ayah")
		return
	}
	response.Success(w, nil, "Ayah deleted")
}

func (h *AyahHandler) CreateTafsirHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateTafsirRequest
	if !h.decode(w, r, &req) {
		return
	}
	f, err := h.service.CreateTafsir(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to save tafsir")
		return
	}
	response.Created(w, f, "Tafsir created")
}

func (h *AyahHandler) UpdateTafsirHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req UpdateTafsirRequest
	if !h.decode(w, r, &req) {
		return
	}
	f, err := h.service.UpdateTafsir(r.Context(), id, req)
	if err != nil {
		writeError(w, err, "Failed to update tafsir")
		return
	}
	response.Success(w, f, "Tafsir updated")
}

func (h *AyahHandler) DeleteTafsirHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteTafsir(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete tafsir")
		return
	}
	response.Success(w, nil, "Tafsir deleted")
}

func (h *AyahHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
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
		response.Error(w, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, ErrAlreadyExists):
		response.Error(w, http.StatusConflict, "Ayah already exists", err.Error())
	case errors.Is(err, ErrInvalidAyah), errors.Is(err, ErrInvalidRelation):
		response.Error(w, http.StatusBadRequest, message, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, message, err.Error())
	}
}
