package middleware

import (
	"context"
	"net/http"
	"strings"

	"wellbeing/internal/model"
	"wellbeing/internal/service"
)

type contextKey string

const claimsKey contextKey = "respondent"

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireRespondent validates the session JWT from the Authorization header
// or, for WebSocket upgrades, the token query parameter.
func (m *AuthMiddleware) RequireRespondent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			writeUnauthorized(w, "missing authorization")
			return
		}

		claims, err := m.authSvc.ValidateRespondentToken(token)
		if err != nil {
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// WithClaims stores respondent claims in ctx
func WithClaims(ctx context.Context, claims *model.RespondentClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims extracts respondent claims from context
func GetClaims(ctx context.Context) *model.RespondentClaims {
	if v, ok := ctx.Value(claimsKey).(*model.RespondentClaims); ok {
		return v
	}
	return nil
}

// ExtractToken returns the bearer token, falling back to the token query param
func ExtractToken(r *http.Request) string {
	if token := extractBearerToken(r); token != "" {
		return token
	}
	return r.URL.Query().Get("token")
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"ok":false,"error":"` + msg + `","kind":"unauthorized"}`))
}
