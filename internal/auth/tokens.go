package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID    int
	TokenID   string
	ExpiresAt time.Time
}

// TokenService signs and verifies HS256 access tokens.
type TokenService struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (t TokenService) CreateAccessToken(userID int, tokenID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    t.Issuer,
		Subject:   strconv.Itoa(userID),
		ID:        tokenID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t TokenService) ParseToken(tokenStr string) (*Claims, error) {
	registered := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, registered, func(token *jwt.Token) (interface{}, error) {
		return t.Secret, nil
	},
		jwt.WithIssuer(t.Issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := strconv.Atoi(registered.Subject)
	if err != nil || registered.ID == "" {
		return nil, fmt.Errorf("%w: bad subject or id", ErrInvalidToken)
	}

	return &Claims{
		UserID:    userID,
		TokenID:   registered.ID,
		ExpiresAt: registered.ExpiresAt.Time,
	}, nil
}
