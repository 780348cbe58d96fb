// Package authtest issues signed tokens for tests. The signature is real
// (HS256) even though the client never checks it.
package authtest

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/vivigo/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("vivigo-test-secret")

// Sign signs arbitrary claims, which lets tests drop required claims.
func Sign(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// Issue returns a token for u expiring at exp.
func Issue(t testing.TB, u models.User, exp time.Time) string {
	t.Helper()
	return Sign(t, jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"name":  u.Name,
		"role":  string(u.Role),
		"exp":   exp.Unix(),
	})
}

// Host and Guest are ready-made profiles.
var (
	Host  = models.User{ID: "h-1", Email: "host@vivigo.test", Name: "Helena Host", Role: models.RoleHost}
	Guest = models.User{ID: "g-1", Email: "guest@vivigo.test", Name: "Gabriel Guest", Role: models.RoleGuest}
)
