// Package session issues and verifies the opaque session credential handed to
// clients. The credential is a signed HS256 JWT with an expiry; the subject
// and principal kind can only be recovered through signature verification,
// never by parsing the token text.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal kinds carried in the credential.
const (
	KindUser  = "user"
	KindGuest = "guest"
)

// ErrInvalidToken covers expired, malformed and wrongly-signed credentials.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the verified content of a session credential.
type Claims struct {
	Subject string
	Kind    string
}

type tokenClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session credentials.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a session manager from the configured secret and TTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed credential for the given principal.
func (m *Manager) Issue(subject, kind string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
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

// Verify parses the credential, checks the signature and expiry, and returns
// the embedded claims.
func (m *Manager) Verify(tokenStr string) (Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	kind := claims.Kind
	if kind == "" {
		kind = KindUser
	}
	return Claims{Subject: claims.Subject, Kind: kind}, nil
}
