package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dcastano/portfolio-auth/internal/store"
)

// TokenTTL is the validity window of issued tokens.
const TokenTTL = 7 * 24 * time.Hour

// bcryptCost is a fixed tunable, not derived from input.
const bcryptCost = 10

// ErrInvalidToken covers every verification failure: bad signature, malformed
// input, disallowed algorithm, expired token.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed token payload. Subject carries the user id.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SecretResolver returns the signing secret, or an error when none is
// configured. Called on every issue/parse so configuration changes take
// effect without a restart.
type SecretResolver func() (string, error)

type AuthService struct {
	ResolveSecret SecretResolver
	TTL           time.Duration
}

func NewAuthService(resolve SecretResolver) *AuthService {
	return &AuthService{
		ResolveSecret: resolve,
		TTL:           TokenTTL,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashed), err
}

// CheckPasswordHash reports whether password reproduces hash. A mismatch is
// false, never an error.
func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a token for the given user, expiring TTL from now.
func (s *AuthService) IssueToken(user store.PublicUser) (string, error) {
	secret, err := s.ResolveSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies a token and returns its claims. It performs no user
// lookup; it is a pure transform over the claims it is given.
func (s *AuthService) ParseToken(tokenStr string) (*Claims, error) {
	secret, err := s.ResolveSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("alg not allowed")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c, ok := token.Claims.(*Claims); ok && token.Valid {
		return c, nil
	}
	return nil, ErrInvalidToken
}
