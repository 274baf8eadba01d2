package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/taiwoajasa245/quran-api/pkg/response"
	"github.com/taiwoajasa245/quran-api/pkg/util"
)

type contextKey string

const (
	userContextKey   contextKey = "user"
	userIDContextKey contextKey = "user_id"
)

// Middleware returns the bearer-token check bound to the given issuer.
func Middleware(tokens *util.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, http.StatusUnauthorized, "Missing Authorization header", "user not logged in")
				return
			}

			// Must start with "Bearer "
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.Error(w, http.StatusUnauthorized, "Invalid token format", "")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := tokens.Validate(tokenStr)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Invalid or expired token", err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			ctx = context.WithValue(ctx, userIDContextKey, claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after Middleware.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetUserFromContext(r)
			if !ok {
				response.Error(w, http.StatusUnauthorized, "Unauthorized", "user not logged in")
				return
			}
			if claims.Role != role {
				response.Error(w, http.StatusForbidden, "Forbidden", ErrForbidden.Error()+": requires "+role)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetUserFromContext(r *http.Request) (*util.Claims, bool) {
	claims, ok := r.Context().Value(userContextKey).(*util.Claims)
	return claims, ok
}

func GetUserIDFromContext(r *http.Request) (int, bool) {
	id, ok := r.Context().Value(userIDContextKey).(int)
	return id, ok
}
