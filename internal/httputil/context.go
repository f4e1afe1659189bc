package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey    contextKey = "userID"
	userEmailKey contextKey = "userEmail"
	userNameKey  contextKey = "userName"
)

// WithUser adds the authenticated user's id, email and display name to
// the request context.
func WithUser(r *http.Request, userID, email, displayName string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, userEmailKey, email)
	ctx = context.WithValue(ctx, userNameKey, displayName)
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// GetUserEmail retrieves the user's email from context
func GetUserEmail(r *http.Request) string {
	email, _ := r.Context().Value(userEmailKey).(string)
	return email
}

// GetUserDisplayName retrieves the user's display name from context
func GetUserDisplayName(r *http.Request) string {
	name, _ := r.Context().Value(userNameKey).(string)
	return name
}
