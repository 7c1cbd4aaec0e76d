// Package authctx carries the authenticated user id through a request's
// context.Context. It is set once by the session middleware.
package authctx

import "context"

type userIDKey struct{}

// WithUserID returns a copy of ctx that carries userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated user id, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}
