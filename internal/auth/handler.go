package auth

import (
	"errors"
	"net/http"

	"github.com/taiwoajasa245/quran-api/internal/validation"
	"github.com/taiwoajasa245/quran-api/pkg/response"
)

type AuthHandler struct {
	service   AuthService
	validator *validation.Validator
}

func NewHandler(service AuthService) AuthHandler {
	return AuthHandler{service: service, validator: validation.New()}
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	usr, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.Error(w, http.StatusConflict, "User already exists", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}

	response.Created(w, usr, "User registered successfully")
}

// CreateUserHandler lets an admin provision an account with any role.
func (h *AuthHandler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	usr, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.Error(w, http.StatusConflict, "User already exists", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}

	response.Created(w, usr, "User created successfully")
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "Invalid email or password", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Login failed", err.Error())
		return
	}

	response.Success(w, user, "Ok")
}

func (h *AuthHandler) GetUserDetailsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "user not found")
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, "User not found", err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to load user", err.Error())
		return
	}

	response.Success(w, user, "Ok")
}
