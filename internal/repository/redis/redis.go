package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"krishiCMS/domain"

	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("token not found or expired")

// TokenRepository keeps admin sessions so a logout revokes the token before
// it expires.
type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

func tokenKey(token string) string {
	return fmt.Sprintf("cms:session:%s", token)
}

func (r *TokenRepository) StoreToken(ctx context.Context, token string, session domain.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, tokenKey(token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}

	return nil
}

// ValidateToken returns the user id of a live session.
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	val, err := r.client.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return "", fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return session.UserID, nil
}

func (r *TokenRepository) RevokeToken(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
