// Package auth reads claims out of backend-issued tokens.
//
// Tokens are decoded without signature verification: the client holds no
// verification key, so everything read here (identity, role, expiry) is a
// UI hint. The backend re-validates the token on every privileged call.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vivigo/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrDecode is returned for malformed tokens and tokens missing a required claim.
var ErrDecode = errors.New("failed to decode token")

// Claims are the token claims the client consumes.
type Claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

var parser = jwt.NewParser()

// Decode parses the payload segment of a compact token. sub, email, name,
// role and exp are all required.
func Decode(token string) (*Claims, error) {
	claims := &Claims{}

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	switch {
	case claims.Subject == "":
		return nil, fmt.Errorf("%w: missing sub", ErrDecode)
	case claims.ExpiresAt == nil:
		return nil, fmt.Errorf("%w: missing exp", ErrDecode)
	case claims.Email == "":
		return nil, fmt.Errorf("%w: missing email", ErrDecode)
	case claims.Name == "":
		return nil, fmt.Errorf("%w: missing name", ErrDecode)
	case claims.Role == "":
		return nil, fmt.Errorf("%w: missing role", ErrDecode)
	}

	return claims, nil
}

// User maps the claims onto the persisted profile.
func (c *Claims) User() *models.User {
	return &models.User{
		ID:    c.Subject,
		Email: c.Email,
		Name:  c.Name,
		Role:  c.Role,
	}
}

// ExpiredAt reports whether the token is expired at now. Expiry must be
// strictly after now for the token to count as valid. No skew allowance.
func (c *Claims) ExpiredAt(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// Remaining is the lifetime left at now; negative once expired.
func (c *Claims) Remaining(now time.Time) time.Duration {
	return c.ExpiresAt.Sub(now)
}

// IsExpired decodes token and reports whether it is expired at now.
// Empty or undecodable tokens count as expired.
func IsExpired(token string, now time.Time) bool {
	if token == "" {
		return true
	}
	claims, err := Decode(token)
	if err != nil {
		return true
	}
	return claims.ExpiredAt(now)
}
