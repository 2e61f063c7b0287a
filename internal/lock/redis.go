package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"seconddraft/internal/domain"
)

const redisPrefix = "seconddraft:lock:"

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another run is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker is a lease-based lock shared by syncers on different hosts.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

// NewRedisClient parses url and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// Lock fails with domain.ErrCollectionBusy when the key is already held.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func() error, error) {
	token := uuid.NewString()
	name := redisPrefix + key

	ok, err := l.client.SetNX(ctx, name, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrCollectionBusy)
	}

	return func() error {
		// The sync context may already be cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{name}, token).Err(); err != nil {
			return fmt.Errorf("release lock: %w", err)
		}
		return nil
	}, nil
}
