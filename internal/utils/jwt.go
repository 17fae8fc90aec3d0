// Package utils provides display token minting and PIN hashing.
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DisplayRole is the only role accepted by the gate display API.
const DisplayRole = "DISPLAY"

// DisplayToken represents a signed JWT handed to a gate display along with
// its expiry.  The Token field contains the JWT string and Subject the
// random identity it was issued to.
type DisplayToken struct {
	Token   string
	Subject string
	Exp     time.Time
}

// NewDisplayToken builds and signs an HS256 JWT for a gate display.  Each
// call issues a fresh subject so tokens can be told apart in the logs.
// The JWT includes subject (sub), role, expiration (exp) and issued at (iat).
func NewDisplayToken(secret string, ttlMin int) (DisplayToken, error) {
	suffix, err := randomHex(4)
	if err != nil {
		return DisplayToken{}, err
	}
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	subject := "gate-display-" + suffix
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": DisplayRole,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	// Sign with HS256 using the shared display secret.
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return DisplayToken{}, err
	}
	return DisplayToken{Token: signed, Subject: subject, Exp: exp}, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
