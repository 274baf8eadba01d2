package para

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/quran-api/pkg/response"
)

type ParaHandler struct {
	service *ParaService
}

func NewParaHandler(service *ParaService) ParaHandler {
	return ParaHandler{service: service}
}

func (h *ParaHandler) ListParasHandler(w http.ResponseWriter, r *http.Request) {
	paras, err := h.service.ListParas(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to list paras", err.Error())
		return
	}
	if paras == nil {
		paras = []Para{}
	}
	response.Success(w, paras, "successfully")
}

func (h *ParaHandler) GetParaHandler(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid para number", err.Error())
		return
	}

	p, err := h.service.GetPara(r.Context(), number)
	if err != nil {
		writeError(w, err, "Failed to get para")
		return
	}
	response.Success(w, p, "successfully")
}

func (h *ParaHandler) ListParaAyahsHandler(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid para number", err.Error())
		return
	}

	ayahs, err := h.service.ListParaAyahs(r.Context(), number)
	if err != nil {
		writeError(w, err, "Failed to get para ayahs")
		return
	}
	if ayahs == nil {
		ayahs = []ParaAyah{}
	}
	response.Success(w, ayahs, "successfully")
}

// AssignParasHandler seeds the para rows and runs an assignment pass.
func (h *ParaHandler) AssignParasHandler(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.SeedAndAssign(r.Context())
	if err != nil {
		if errors.Is(err, ErrAssignmentRunning) {
			response.Error(w, http.StatusConflict, "Para assignment already running", err.Error())
			return
		}
		writeError(w, err, "Para assignment failed")
		return
	}
	response.Success(w, report, "Para assignment completed")
}

func writeError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, ErrNotFound) {
		response.Error(w, http.StatusNotFound, "Para not found", err.Error())
		return
	}
	response.Error(w, http.StatusInternalServerError, message, err.Error())
}
