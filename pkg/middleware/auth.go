package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// TokenValidator resolves a bearer token to a user id.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// DevUserHeader carries the caller's id when tokens are not required.
const DevUserHeader = "X-User-ID"

// AuthMiddleware resolves the caller's identity from a bearer header or a
// token query parameter. With required set, requests without a valid token
// are rejected; otherwise the identity is optional and may come from
// DevUserHeader.
func AuthMiddleware(tokens TokenValidator, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearer(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			if raw == "" {
				if required {
					http.Error(w, "Authorization header required", http.StatusUnauthorized)
					return
				}
				if dev := strings.TrimSpace(r.Header.Get(DevUserHeader)); dev != "" {
					r = r.WithContext(WithUserID(r.Context(), dev))
				}
				next.ServeHTTP(w, r)
				return
			}
			userID, err := tokens.ValidateToken(raw)
			if err != nil {
				http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

type authError string

func (e authError) Error() string { return string(e) }

const errAuthFormat = authError("Invalid authorization format")

// bearer returns the token from the Authorization header or, for websocket
// clients that cannot set headers, the token query parameter.
func bearer(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.Split(h, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", errAuthFormat
		}
		return parts[1], nil
	}
	return r.URL.Query().Get("token"), nil
}
