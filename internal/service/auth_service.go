package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid client key")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService exchanges the configured client key for short-lived
// bearer tokens. There are no user accounts; the app is single-user
// and the key identifies the mobile client as a whole.
type AuthService interface {
	IssueToken(clientKey string) (string, error)
}

type authService struct {
	clientKey     string
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(clientKey, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		clientKey:     clientKey,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// IssueToken validates the presented client key and returns a signed
// token for the API.
func (s *authService) IssueToken(clientKey string) (string, error) {
	if s.clientKey == "" || subtle.ConstantTimeCompare([]byte(clientKey), []byte(s.clientKey)) != 1 {
		return "", ErrAuthenticationFailed
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "workout-client",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", ErrTokenGeneration
	}
	return signed, nil
}
