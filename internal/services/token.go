package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenIsInvalid = errors.New("token is invalid")
	ErrTokenIsExpired = errors.New("token is expired")
)

// TokenService issues and validates the widget access token. The subject is
// the order id the storefront rendered the widget for, which keeps a browser
// session from acting on someone else's order.
type TokenService struct {
	secretKey string
}

func NewTokenService(secretKey string) *TokenService {
	return &TokenService{secretKey: secretKey}
}

// Generate signs a token for the given order id, valid for 24 hours.
func (t *TokenService) Generate(orderID string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": orderID,
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(t.secretKey))
	if err != nil {
		return "", fmt.Errorf("error while generating token: %w", err)
	}

	return tokenString, nil
}

// Validate checks the signature and expiry and returns the order id the
// token was issued for.
func (t *TokenService) Validate(tokenString string) (string, error) {
	parsedToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(t.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenIsExpired
		}

		return "", fmt.Errorf("error while validating token: %w", err)
	}

	if !parsedToken.Valid {
		return "", ErrTokenIsInvalid
	}

	subject, err := parsedToken.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error while reading token subject: %w", err)
	}

	return subject, nil
}
