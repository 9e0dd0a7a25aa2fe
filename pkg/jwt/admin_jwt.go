// Package jwt issues and validates the bearer tokens carried by admin requests.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token validation errors.
var (
	// ErrInvalidToken indicates a token is malformed, wrongly signed or otherwise fails validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
	// ErrSecretUnconfigured indicates no signing secret was supplied.
	ErrSecretUnconfigured = errors.New("token secret is not configured")
)

// AdminClaims identifies the admin a token was issued to.
type AdminClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AdminTokenService signs and parses admin tokens with an HMAC secret.
type AdminTokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewAdminTokenService creates a token service. A non-positive expiry defaults to one day.
func NewAdminTokenService(secret string, expiry time.Duration) *AdminTokenService {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &AdminTokenService{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// Configured reports whether a signing secret is present.
func (s *AdminTokenService) Configured() bool {
	return len(s.secret) > 0
}

// Generate signs a token for the given admin.
func (s *AdminTokenService) Generate(adminID, username string) (string, error) {
	if !s.Configured() {
		return "", ErrSecretUnconfigured
	}
	now := s.now().UTC()
	claims := AdminClaims{
		ID:       adminID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a token and returns its claims.
func (s *AdminTokenService) Parse(tokenString string) (*AdminClaims, error) {
	if !s.Configured() {
		return nil, ErrSecretUnconfigured
	}
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
