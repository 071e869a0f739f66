// Package jwt provides admin session token management.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the custom session claims.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Config holds token settings.
type Config struct {
	Secret     string
	ExpireTime time.Duration
	Issuer     string
}

// Manager issues and parses session tokens.
type Manager struct {
	config *Config
}

// Predefined errors.
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// RoleAdmin is the only role the site knows.
const RoleAdmin = "admin"

// NewManager creates a token manager.
func NewManager(config *Config) *Manager {
	return &Manager{
		config: config,
	}
}

// GenerateToken issues a signed, time-limited admin session token.
func (m *Manager) GenerateToken(role string) (string, int64, error) {
	now := time.Now()
	expireAt := now.Add(m.config.ExpireTime)

	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   role,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expireAt),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.Secret))
	if err != nil {
		return "", 0, err
	}
	return signed, expireAt.Unix(), nil
}

// ParseToken validates a token and returns its claims.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(m.config.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrTokenMalformed
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

// ValidateToken reports whether a token is valid.
func (m *Manager) ValidateToken(tokenString string) (bool, error) {
	_, err := m.ParseToken(tokenString)
	if err != nil {
		return false, err
	}
	return true, nil
}
