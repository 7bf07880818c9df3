// Package auth handles bill-scoped access control: signed share-link tokens
// and owner edit PINs. There are no user accounts; every credential is tied
// to a single bill.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired share token")
	ErrMissingToken = errors.New("share token required")
)

// ShareTokenManager mints and validates share-link tokens. A token grants
// access to exactly one bill; read-only tokens allow viewing the bill and its
// summary but no actions.
type ShareTokenManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// ShareClaims are the custom JWT claims carried by a share token.
type ShareClaims struct {
	BillID   string `json:"bill_id"`
	ReadOnly bool   `json:"read_only"`
	jwt.RegisteredClaims
}

// NewShareTokenManager creates a manager with the given secret and token
// lifetime. secretKey should be a strong random string (e.g., 32 bytes).
func NewShareTokenManager(secretKey string, tokenDuration time.Duration) *ShareTokenManager {
	return &ShareTokenManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// Mint creates a new share token for the given bill.
func (m *ShareTokenManager) Mint(billID string, readOnly bool) (string, error) {
	claims := &ShareClaims{
		BillID:   billID,
		ReadOnly: readOnly,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return tokenString, nil
}

// Validate parses and validates a share token, returning its claims if valid.
func (m *ShareTokenManager) Validate(tokenString string) (*ShareClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&ShareClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*ShareClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
