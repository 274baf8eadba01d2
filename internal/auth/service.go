package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taiwoajasa245/quran-api/internal/logger"
	"github.com/taiwoajasa245/quran-api/pkg/util"
)

type AuthService struct {
	repo   Repository
	tokens *util.TokenIssuer
	log    *logger.Logger
}

func NewAuthService(repo Repository, tokens *util.TokenIssuer, log *logger.Logger) AuthService {
	if log == nil {
		log = logger.NewNop()
	}
	return AuthService{
		repo:   repo,
		tokens: tokens,
		log:    log,
	}
}

// Register creates a plain user and logs them in. Any requested role is
// ignored.
func (h *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	user, err := h.createUser(ctx, req.Name, req.Email, req.Password, RoleUser)
	if err != nil {
		return nil, err
	}
	return h.Login(ctx, user.Email, req.Password)
}

// CreateUser provisions an account with the requested role. It backs the
// admin users endpoint and the create-admin command.
func (h *AuthService) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	if req.Role != RoleUser && req.Role != RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", req.Role)
	}
	user, err := h.createUser(ctx, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return nil, err
	}
	h.log.Info("user provisioned", "email", user.Email, "role", user.Role)
	return user, nil
}

func (h *AuthService) createUser(ctx context.Context, name, email, password, role string) (*User, error) {
	hashed, err := util.HashPasswordBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := User{
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hashed,
		Role:     role,
	}
	created, err := h.repo.CreateUser(ctx, user)
	if err != nil {
		if !errors.Is(err, ErrUserAlreadyExists) {
			h.log.Error("create user failed", "email", user.Email, "error", err)
		}
		return nil, err
	}
	return created, nil
}

func (h *AuthService) Login(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := h.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			h.log.Error("login lookup failed", "error", err)
		}
		return nil, ErrInvalidCredentials
	}

	if err := util.ComparePasswordBcrypt(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := h.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	user.Token = token

	return user, nil
}

func (h *AuthService) Me(ctx context.Context, userID int) (*User, error) {
	return h.repo.GetUserByID(ctx, userID)
}
