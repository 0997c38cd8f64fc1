package auth

import "context"

type contextKey string

// UserKey is the context key under which the authenticated user is
// stored by the middleware.
const UserKey contextKey = "auth_user"

// User is the caller identity the catalogue core consumes. Session and
// login mechanics live outside this service; only the identity crosses
// the boundary.
type User struct {
	ID    string
	Email string
}

// WithUser returns a context carrying the given user. Used by the
// middleware and by tests.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// UserFromContext extracts the authenticated user from the context.
func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(UserKey).(User)
	return user, ok
}

// Identity returns the caller identity string for record stamping, or
// the empty string when the context carries no user.
func Identity(ctx context.Context) string {
	user, ok := UserFromContext(ctx)
	if !ok {
		return ""
	}
	if user.Email != "" {
		return user.Email
	}
	return user.ID
}
