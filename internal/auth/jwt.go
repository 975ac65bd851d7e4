package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is applied when the service is constructed without an
// explicit lifetime.
const DefaultTokenTTL = 12 * time.Hour

// Token verification errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the payload embedded in a session token.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject identity of the token.
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenService issues and verifies signed session tokens. Validity is purely
// a function of signature and expiry; there is no revocation list.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a service from the configured signing secret.
// An empty secret is refused so that a misconfigured deployment fails at
// startup instead of on the first login.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token carrying the user's identity and role.
func (ts *TokenService) Issue(userID string, role Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
			Issuer:    "pokedex-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secret)
}

// Verify checks signature integrity and expiry and returns the embedded
// claims. Expired tokens yield ErrExpiredToken; any other failure, including
// a malformed payload or wrong signing method, yields ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return ts.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
