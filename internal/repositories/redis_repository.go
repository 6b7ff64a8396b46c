package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps the revoked-session list. Entries expire with the
// session they revoke.
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func (r *RedisRepository) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	exists, err := r.rdb.Exists(ctx, blacklistKey(sessionID)).Result()
	return exists == 1, err
}

func (r *RedisRepository) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, blacklistKey(sessionID), "true", ttl).Err()
}

func blacklistKey(sessionID string) string {
	return "blacklist:" + sessionID
}
