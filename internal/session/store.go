// Package session keeps the server-side record of revoked session tokens.
// Tokens stay self-contained; the store only remembers token ids that were
// logged out before their natural expiry.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eventbooking/internal/config"

	"github.com/redis/go-redis/v9"
)

type Store interface {
	// Revoke marks the token id as unusable until the given time.
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "revoked_session:"}
}

func (s *RedisStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.prefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, s.prefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n > 0, nil
}

// MemoryStore is the single-process fallback used when Redis is not configured.
type MemoryStore struct {
	revoked sync.Map // jti -> time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Revoke(_ context.Context, jti string, until time.Time) error {
	if jti == "" || !until.After(s.now()) {
		return nil
	}
	s.revoked.Store(jti, until)
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	v, ok := s.revoked.Load(jti)
	if !ok {
		return false, nil
	}
	until, _ := v.(time.Time)
	if !until.After(s.now()) {
		s.revoked.Delete(jti)
		return false, nil
	}
	return true, nil
}
