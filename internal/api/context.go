package api

import "context"

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFromContext extracts the authenticated user ID from the context.
// Returns zero if not present.
func UserIDFromContext(ctx context.Context) int64 {
	if v := ctx.Value(userIDKey); v != nil {
		if userID, ok := v.(int64); ok {
			return userID
		}
	}

	return 0
}

// withUserID returns a new context with the user ID set.
func withUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
