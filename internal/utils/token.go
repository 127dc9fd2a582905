package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/expensaver/expensaver-api/internal/account"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrInvalidAccessToken  = errors.New("invalid access token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// Contact carries optional, informational fields embedded in access tokens.
// The subject is the only field used for authorization.
type Contact struct {
	Name  string
	Email string
	Phone string
}

type AccessClaims struct {
	Role  account.Role `json:"role"`
	Name  string       `json:"name,omitempty"`
	Email string       `json:"email,omitempty"`
	Phone string       `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	jwt.RegisteredClaims
}

// IssueAccessToken signs a short-lived HS256 token. Each token gets its own jti so that
// two tokens minted for the same subject within one second never collide.
func IssueAccessToken(subject string, role account.Role, contact Contact, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Role:  role,
		Name:  contact.Name,
		Email: contact.Email,
		Phone: contact.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func IssueRefreshToken(subject, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken verifies signature and expiry. Errors returned by the jwt parser are
// passed through unchanged so callers can match jwt.ErrTokenExpired and friends.
func ParseAccessToken(tokenString, secret string) (*AccessClaims, error) {
	token, err := parser().ParseWithClaims(tokenString, &AccessClaims{}, hmacKey(secret))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*AccessClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidAccessToken
}

func ParseRefreshToken(tokenString, secret string) (*RefreshClaims, error) {
	token, err := parser().ParseWithClaims(tokenString, &RefreshClaims{}, hmacKey(secret))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*RefreshClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidRefreshToken
}

// HashToken returns the hex SHA-256 digest stored in place of a raw token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func parser() *jwt.Parser {
	return jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
}

func hmacKey(secret string) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}
}
