package sessions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"moviesphere/internal/config"
)

// Redis stores sessions in a Redis set per user so the web tier and this
// service see the same session population.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to the configured Redis instance.
func NewRedis(cfg config.Sessions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "moviesphere:"
	}
	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) userKey(userID int64) string {
	return fmt.Sprintf("%ssessions:%d", r.prefix, userID)
}

// Create opens a session for the user.
func (r *Redis) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := r.client.SAdd(ctx, r.userKey(userID), token).Err(); err != nil {
		return "", fmt.Errorf("add session: %w", err)
	}
	return token, nil
}

// InvalidateAll revokes every session for the user.
func (r *Redis) InvalidateAll(ctx context.Context, userID int64) (int, error) {
	key := r.userKey(userID)
	count, err := r.client.SCard(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return int(count), nil
}

// CountActive returns the number of live sessions for the user.
func (r *Redis) CountActive(ctx context.Context, userID int64) (int, error) {
	count, err := r.client.SCard(ctx, r.userKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return int(count), nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
