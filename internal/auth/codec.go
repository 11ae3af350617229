// Package auth implements the stateless token codec: HMAC-signed, time-bounded
// bearer tokens carrying the subject and its role claims. Validity is fully
// determined by signature and expiry; the server keeps no session state.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sirpyerre/posts-gateway/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Codec signs and verifies JWTs with a single process-wide symmetric secret.
// Rotating the secret invalidates every previously issued token.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec signing with the given secret. A non-positive ttl
// falls back to 24 hours.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token stating the subject, issuance time, and an
// expiry of issuance + the configured validity window.
func (c *Codec) Issue(username string, roles []domain.Role) (string, error) {
	now := time.Now().UTC()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}

	claims := tokenClaims{
		Roles: names,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(c.secret)
}

// Verify validates the signature and expiry of a presented token and rebuilds
// the principal from its claims. The returned errors stay distinguishable
// (malformed, expired, bad signature) for logging; callers collapse them into
// a single unauthenticated outcome.
func (c *Codec) Verify(token string) (domain.Principal, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Principal{}, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Principal{}, domain.ErrTokenSignatureInvalid
		default:
			return domain.Principal{}, domain.ErrTokenMalformed
		}
	}
	if !parsed.Valid || claims.Subject == "" {
		return domain.Principal{}, domain.ErrTokenMalformed
	}

	// Unknown roles fail verification instead of being silently accepted.
	roles := make([]domain.Role, 0, len(claims.Roles))
	for _, name := range claims.Roles {
		role, err := domain.ParseRole(name)
		if err != nil {
			return domain.Principal{}, domain.ErrTokenMalformed
		}
		roles = append(roles, role)
	}

	return domain.Principal{Username: claims.Subject, Roles: roles}, nil
}
