package reciter

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/quran-api/internal/validation"
	"github.com/taiwoajasa245/quran-api/pkg/response"
)

type ReciterHandler struct {
	service   ReciterService
	validator *validation.Validator
}

func NewReciterHandler(service ReciterService) ReciterHandler {
	return ReciterHandler{service: service, validator: validation.New()}
}

func (h *ReciterHandler) ListRecitersHandler(w http.ResponseWriter, r *http.Request) {
	reciters, err := h.service.ListReciters(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to list reciters", err.Error())
		return
	}
	if reciters == nil {
		reciters = []Reciter{}
	}
	response.Success(w, reciters, "successfully")
}

func (h *ReciterHandler) GetReciterHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	rc, err := h.service.GetReciter(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get reciter")
		return
	}
	response.Success(w, rc, "successfully")
}

func (h *ReciterHandler) CreateReciterHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateReciterRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", err)
		return
	}
	rc, err := h.service.CreateReciter(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to create reciter")
		return
	}
	response.Created(w, rc, "Reciter created")
}

func (h *ReciterHandler) UpdateReciterHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req UpdateReciterRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", err)
		return
	}
	rc, err := h.service.UpdateReciter(r.Context(), id, req)
	if err != nil {
		writeError(w, err, "Failed to update reciter")
		return
	}
	response.Success(w, rc, "Reciter updated")
}

func (h *ReciterHandler) DeleteReciterHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteReciter(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete reciter")
		return
	}
	response.Success(w, nil, "Reciter deleted")
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
		response.Error(w, http.StatusNotFound, "Reciter not found", err.Error())
	case errors.Is(err, ErrAlreadyExists):
		response.Error(w, http.StatusConflict, "Reciter path already registered", err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, message, err.Error())
	}
}
