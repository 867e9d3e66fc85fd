// Package jwtauth issues and verifies the HS256 session tokens the HTTP
// layer exchanges for a user.Principal.
package jwtauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kemetion/fantasy-cricket/internal/domain/user"
	"github.com/kemetion/fantasy-cricket/internal/usecase"
)

type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issue implements usecase.TokenIssuer.
func (m *Manager) Issue(principal user.Principal) (string, error) {
	now := m.now().UTC()
	claims := sessionClaims{
		Email: principal.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   principal.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a bearer token and returns the principal it carries.
// Expired, malformed, or foreign-issuer tokens map to ErrUnauthorized.
func (m *Manager) Verify(tokenString string) (user.Principal, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: invalid session token", usecase.ErrUnauthorized)
	}
	if !token.Valid || claims.Subject == "" {
		return user.Principal{}, fmt.Errorf("%w: invalid session token", usecase.ErrUnauthorized)
	}

	return user.Principal{UserID: claims.Subject, Email: claims.Email}, nil
}
