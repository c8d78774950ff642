package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"schoolhub/api/internal/models"
)

// RedisBackend stores each record as JSON with a TTL equal to its remaining lifetime,
// so Redis drops expired sessions on its own.
type RedisBackend struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{
		client: client,
		prefix: "session:",
		now:    time.Now,
	}
}

func (b *RedisBackend) key(token string) string {
	return b.prefix + token
}

func (b *RedisBackend) Get(ctx context.Context, token string) (models.Session, error) {
	raw, err := b.client.Get(ctx, b.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Session{}, ErrNotFound
		}
		return models.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var s models.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func (b *RedisBackend) Set(ctx context.Context, token string, s models.Session) error {
	ttl := s.ExpiresAt.Sub(b.now())
	if ttl <= 0 {
		return b.Delete(ctx, token)
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := b.client.Set(ctx, b.key(token), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, token string) error {
	if err := b.client.Del(ctx, b.key(token)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
