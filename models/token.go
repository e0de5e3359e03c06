package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claim set issued on login.
//
// The subject ("sub") carries the username, while the numeric identifier and
// the role travel in the private "id" and "user_type" claims.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the identifier of the authenticated user.
	UserID int64 `json:"id"`

	// Role is the access level of the authenticated user.
	Role Role `json:"user_type"`
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [Claims] for access to the identity carried by the token.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	Claims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// Username returns the "sub" claim of the token.
func (t *Token) Username() string {
	return t.Subject
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
