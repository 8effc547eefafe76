package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/brasaviva/restaurant-api/internal/auth"
)

const keyPrefix = "refresh:"

// RedisStore keeps refresh-token hashes in Redis with a TTL matching the
// token lifetime, so expiry needs no sweeper.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Store(
	ctx context.Context,
	tokenHash string,
	userID uuid.UUID,
	ttl time.Duration,
) error {
	return s.rdb.Set(ctx, keyPrefix+tokenHash, userID.String(), ttl).Err()
}

func (s *RedisStore) Lookup(
	ctx context.Context,
	tokenHash string,
) (uuid.UUID, error) {

	val, err := s.rdb.Get(ctx, keyPrefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, auth.ErrTokenNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(val)
}

func (s *RedisStore) Revoke(ctx context.Context, tokenHash string) error {
	return s.rdb.Del(ctx, keyPrefix+tokenHash).Err()
}

// Compile-time check
var _ auth.TokenStore = (*RedisStore)(nil)
