package shared

import "context"

type contextKey string

const usernameKey contextKey = "username"

// WithUsername attaches the authenticated principal's name to the context
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// UsernameFromContext returns the authenticated principal's name, or an
// empty string when the request is anonymous
func UsernameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(usernameKey).(string); ok {
		return v
	}
	return ""
}
