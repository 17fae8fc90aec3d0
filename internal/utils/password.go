package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPIN returns the bcrypt hash of an attendant PIN using the given cost.
// Surrounding whitespace is not part of the PIN.
func HashPIN(pin string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(pin)), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPIN safely compares a bcrypt hash and an entered PIN.
func VerifyPIN(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(pin))) == nil
}
