package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "liftlog-session||"
)

var ErrSessionNotFound = errors.New("session not found or revoked")

// Service issues access tokens and tracks the live ones in redis, keyed by
// token id, so a logout revokes the token before it expires.
type Service struct {
	tokens      TokenService
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject the token id generator (for unit testing)
	NewTokenID func() string
}

func NewAuthService(
	tokens TokenService,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	tokens.TTL = ttl
	return &Service{
		tokens:      tokens,
		ttl:         ttl,
		redisClient: redisClient,
		NewTokenID:  uuid.NewString,
	}
}

func (as *Service) Login(ctx context.Context, userID int, createdAt time.Time) (string, error) {
	tokenID := as.NewTokenID()
	token, err := as.tokens.CreateAccessToken(userID, tokenID, createdAt)
	if err != nil {
		return "", err
	}

	if err := as.redisClient.Set(ctx, sessionKeyPrefix+tokenID, userID, as.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Logout revokes the token. It reports whether a live session was removed.
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	claims, err := as.tokens.ParseToken(token)
	if err != nil {
		return false, err
	}

	deleted, err := as.redisClient.Del(ctx, sessionKeyPrefix+claims.TokenID).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}

	return deleted > 0, nil
}

// Authenticate verifies the token signature and that its session is still live.
func (as *Service) Authenticate(ctx context.Context, token string) (int, error) {
	claims, err := as.tokens.ParseToken(token)
	if err != nil {
		return 0, err
	}

	val, err := as.redisClient.Get(ctx, sessionKeyPrefix+claims.TokenID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get session: %w", err)
	}

	sessionUserID, err := strconv.Atoi(val)
	if err != nil || sessionUserID != claims.UserID {
		return 0, ErrSessionNotFound
	}

	return claims.UserID, nil
}
