package domain

import (
	"errors"
	"fmt"
)

// Role is a closed set of authorities a user can hold. Unknown values are
// rejected at parse time rather than carried along as free-form strings.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// ParseRole converts a raw string into a Role, failing on anything outside
// the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrDuplicateIdentity = errors.New("username or email is already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")

// Token verification failures. They stay distinguishable for diagnostic
// logging; the HTTP boundary collapses all of them into one 401 outcome.
var ErrTokenAbsent = errors.New("no bearer token presented")
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenSignatureInvalid = errors.New("token signature invalid")

// User models an account in the credential store.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Roles        []Role `json:"roles"`
	Enabled      bool   `json:"enabled"`
}

// Principal is the identity established for a single request from a verified
// token. It is never persisted and never shared across requests.
type Principal struct {
	Username string
	Roles    []Role
}

// HasRole reports whether the principal holds the given role.
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
