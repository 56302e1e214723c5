package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "admin:session:"

// RedisManager stores sessions in Redis with native TTL expiry, so tokens
// survive a process restart.
type RedisManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisManager creates a Redis-backed session manager.
func NewRedisManager(client *redis.Client, ttl time.Duration) *RedisManager {
	if client == nil {
		panic("session: redis client required")
	}
	return &RedisManager{client: client, ttl: ttl}
}

func redisKey(token string) string {
	return redisKeyPrefix + token
}

// Issue creates a token with the configured TTL.
func (m *RedisManager) Issue(ctx context.Context) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	if err := m.client.Set(ctx, redisKey(token), "1", m.ttl).Err(); err != nil {
		return "", fmt.Errorf("session: store token: %w", err)
	}
	return token, nil
}

// Validate reports whether the token key still exists.
func (m *RedisManager) Validate(ctx context.Context, token string) (bool, error) {
	n, err := m.client.Exists(ctx, redisKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("session: validate token: %w", err)
	}
	return n > 0, nil
}

// Revoke deletes the token key.
func (m *RedisManager) Revoke(ctx context.Context, token string) error {
	if err := m.client.Del(ctx, redisKey(token)).Err(); err != nil {
		return fmt.Errorf("session: revoke token: %w", err)
	}
	return nil
}
