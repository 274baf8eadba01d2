package kitab

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/quran-api/internal/validation"
	"github.com/taiwoajasa245/quran-api/pkg/response"
)

type KitabHandler struct {
	service   KitabService
	validator *validation.Validator
}

func NewKitabHandler(service KitabService) KitabHandler {
	return KitabHandler{service: service, validator: validation.New()}
}

func (h *KitabHandler) ListKitabsHandler(w http.ResponseWriter, r *http.Request) {
	kitabs, err := h.service.ListKitabs(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to list kitabs", err.Error())
		return
	}
	if kitabs == nil {
		kitabs = []Kitab{}
	}
	response.Success(w, kitabs, "successfully")
}

func (h *KitabHandler) GetKitabHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	k, err := h.service.GetKitab(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get kitab")
		return
	}
	response.Success(w, k, "successfully")
}

func (h *KitabHandler) CreateKitabHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateKitabRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	k, err := h.service.CreateKitab(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to create kitab")
		return
	}
	response.Created(w, k, "Kitab created")
}

func (h *KitabHandler) UpdateKitabHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req UpdateKitabRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	k, err := h.service.UpdateKitab(r.Context(), id, req)
	if err != nil {
		writeError(w, err, "Failed to update kitab")
		return
	}
	response.Success(w, k, "Kitab updated")
}

func (h *KitabHandler) DeleteKitabHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteKitab(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete kitab")
		return
	}
	response.Success(w, nil, "Kitab deleted")
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
		response.Error(w, http.StatusNotFound, "Kitab not found", err.Error())
	case errors.Is(err, ErrAlreadyExists):
		response.Error(w, http.StatusConflict, "Kitab already exists", err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, message, err.Error())
	}
}
