package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPIN = errors.New("invalid PIN")
	ErrWeakPIN    = errors.New("PIN must be at least 4 characters")
)

// ValidatePIN checks that a PIN meets the minimum requirements before it is
// hashed and stored.
func ValidatePIN(pin string) error {
	if len(pin) < 4 {
		return ErrWeakPIN
	}
	return nil
}

// HashPIN returns the bcrypt hash of an owner edit PIN.
func HashPIN(pin string) (string, error) {
	if err := ValidatePIN(pin); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPIN compares a PIN against its stored bcrypt hash.
func VerifyPIN(hash, pin string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		return ErrInvalidPIN
	}
	return nil
}
