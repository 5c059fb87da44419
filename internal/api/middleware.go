// Package api implements the MyNotes REST API using chi.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/waxca059-max/MyNotes/internal/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// AuthMiddleware returns middleware that validates a Bearer JWT and stores
// the authenticated user id in the request context.
func AuthMiddleware(tokens *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}

// UserID extracts the authenticated user id from the request context.
// Returns "" when the request did not pass through AuthMiddleware.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
