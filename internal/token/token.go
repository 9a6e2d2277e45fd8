// Package token issues and verifies signed session tokens.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid is returned for every verification failure. Expired, tampered
// and malformed tokens are deliberately indistinguishable to the caller.
var ErrInvalid = errors.New("invalid token")

// Claims is the identity asserted by a verified token.
type Claims struct {
	UserID uuid.UUID
	Email  string
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 session tokens with a fixed validity window.
type Manager struct {
	signKey []byte
	ttl     time.Duration
}

// NewManager constructs a Manager with the process-wide signing key.
func NewManager(signKey []byte, ttl time.Duration) *Manager {
	return &Manager{signKey: signKey, ttl: ttl}
}

// Issue creates a signed token embedding the account's id and email.
func (m *Manager) Issue(userID uuid.UUID, email string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.ttl)
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.signKey)
	return signed, exp, err
}

// Verify checks signature and expiry and returns the embedded claims.
// Any failure yields ErrInvalid.
func (m *Manager) Verify(raw string) (Claims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalid
	}

	v := jwt.NewValidator(jwt.WithLeeway(30 * time.Second))
	if err := v.Validate(&claims); err != nil {
		return Claims{}, ErrInvalid
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return Claims{}, ErrInvalid
	}
	return Claims{UserID: id, Email: claims.Email}, nil
}
