// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-event-organizer/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// Keys under which the authentication middleware stores the identity of the
// caller.
var (
	UserIDCtxKey   = contextKey("userID")
	UsernameCtxKey = contextKey("username")
	UserRoleCtxKey = contextKey("userRole")
)

// ContextWithUser returns a copy of ctx carrying the identity from token.
func ContextWithUser(ctx context.Context, token models.Token) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, token.UserID)
	ctx = context.WithValue(ctx, UsernameCtxKey, token.Username())
	return context.WithValue(ctx, UserRoleCtxKey, token.Role)
}

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetRoleFromContext retrieves the caller's role from the context.
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(UserRoleCtxKey).(models.Role)
	return role, ok
}

// GetUsernameFromContext retrieves the caller's username from the context.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}
