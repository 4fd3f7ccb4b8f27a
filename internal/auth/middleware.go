package auth

import (
	"context"
	"net/http"

	"majlis-rsvp/internal/utils"
)

type contextKey string

const (
	adminIDKey  contextKey = "admin_id"
	usernameKey contextKey = "admin_username"
	tokenKey    contextKey = "session_token"
)

// Middleware gates admin-only routes: the request must carry a bearer token
// that is validly signed and still registered in the session cache.
func Middleware(secret string, sessions SessionCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractTokenFromRequest(r)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			adminID, claims, err := ParseToken(secret, token)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			active, err := sessions.Active(r.Context(), token)
			if err != nil || !active {
				utils.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), adminIDKey, adminID)
			ctx = context.WithValue(ctx, usernameKey, claims.Username)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminID extracts the authenticated admin's id in handlers.
func AdminID(ctx context.Context) int64 {
	if id, ok := ctx.Value(adminIDKey).(int64); ok {
		return id
	}
	return 0
}

func Username(ctx context.Context) string {
	if name, ok := ctx.Value(usernameKey).(string); ok {
		return name
	}
	return ""
}

// SessionToken returns the raw token for revocation on logout.
func SessionToken(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}
	return ""
}
