package middleware

import (
	"context"
	"net/http"
	"strings"

	apiContext "associates/internal/api/context"
	"associates/internal/pkg/errors"
	"associates/internal/platform/auth"
	"associates/internal/platform/session"
)

type AuthMiddleware struct {
	tokenSvc *auth.TokenService
	sessions *session.Store
}

func NewAuthMiddleware(tokenSvc *auth.TokenService, sessions *session.Store) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, sessions: sessions}
}

// Handle resolves the bearer token to a live session. Both the claims and
// the session are placed on the request context.
func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Missing authorization header", nil)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid authorization header format", nil)
			return
		}

		claims, err := m.tokenSvc.ValidateToken(parts[1])
		if err != nil {
			errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid or expired token", nil)
			return
		}

		sess, err := m.sessions.Get(claims.SessionID)
		if err != nil {
			errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Session ended or expired", nil)
			return
		}

		ctx := context.WithValue(r.Context(), apiContext.Claims, claims)
		ctx = context.WithValue(ctx, apiContext.Session, sess)
		next(w, r.WithContext(ctx))
	}
}
