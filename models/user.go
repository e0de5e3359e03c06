package models

import (
	"strings"
	"time"
)

// Role is the access level of an account. It is stored in the user_type
// column and carried in the "user_type" claim of issued tokens.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleOrganizer     Role = "organizer"
	RoleClient        Role = "client"
)

// Sign-up codes accepted by the registration endpoint.
const (
	signUpCodeAdministrator = "admin"
	signUpCodeOrganizer     = "org"
)

// RoleFromSignUpCode maps the code supplied on registration to a role.
// Unknown or empty codes register a client.
func RoleFromSignUpCode(code string) Role {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case signUpCodeAdministrator:
		return RoleAdministrator
	case signUpCodeOrganizer:
		return RoleOrganizer
	default:
		return RoleClient
	}
}

// ParseRole converts s to a known Role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdministrator, RoleOrganizer, RoleClient:
		return r, true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User represents an account entity used for authentication and authorization.
type User struct {
	// ID is the unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique login of the user.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// Name is the display name of the user. It is also used as the greeting
	// in sale notifications.
	Name string `json:"name"`

	// Email is the address sale notifications are delivered to.
	Email string `json:"email"`

	// Role defines which endpoints the user may call.
	Role Role `json:"user_type"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// SignUpRequest is the body of the public registration endpoint.
type SignUpRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	UserTypeCode string `json:"user_type_code"`
	Email        string `json:"email"`
}

// SignInRequest is the body of the login endpoint.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateCredentialsRequest is the body used by users to change their own
// credentials. OldPassword must match the stored hash.
type UpdateCredentialsRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}

// UserRequest is the body administrators use to create or replace accounts.
type UserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	UserType string `json:"user_type"`
	Email    string `json:"email"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Caller is the authenticated user on whose behalf an operation runs.
type Caller struct {
	UserID int64
	Role   Role
}

// Is reports whether the caller has one of roles.
func (c Caller) Is(roles ...Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
