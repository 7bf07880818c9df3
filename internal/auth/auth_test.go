package auth

import (
	"errors"
	"testing"
	"time"
)

func TestShareTokenRoundTrip(t *testing.T) {
	m := NewShareTokenManager("test-secret-key-for-unit-tests", time.Hour)

	token, err := m.Mint("bill-123", true)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.BillID != "bill-123" {
		t.Errorf("billID = %q, want bill-123", claims.BillID)
	}
	if !claims.ReadOnly {
		t.Error("readOnly = false, want true")
	}
}

func TestShareTokenRejectsWrongSecret(t *testing.T) {
	m := NewShareTokenManager("secret-one", time.Hour)
	other := NewShareTokenManager("secret-two", time.Hour)

	token, err := m.Mint("bill-123", false)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Validate() error = %v, want ErrInvalidToken", err)
	}
}

func TestShareTokenExpiry(t *testing.T) {
	m := NewShareTokenManager("test-secret", -time.Minute)

	token, err := m.Mint("bill-123", false)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Validate() of expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestPIN(t *testing.T) {
	hash, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN() error = %v", err)
	}
	if err := VerifyPIN(hash, "1234"); err != nil {
		t.Errorf("VerifyPIN() with correct PIN error = %v", err)
	}
	if err := VerifyPIN(hash, "4321"); !errors.Is(err, ErrInvalidPIN) {
		t.Errorf("VerifyPIN() with wrong PIN error = %v, want ErrInvalidPIN", err)
	}
	if _, err := HashPIN("12"); !errors.Is(err, ErrWeakPIN) {
		t.Errorf("HashPIN() with short PIN error = %v, want ErrWeakPIN", err)
	}
}
