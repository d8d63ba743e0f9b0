package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "redis")

// Options locate the redis server backing the best-move cache.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect dials redis and pings it. A server that does not answer is not
// fatal: Connect logs a warning and returns a nil client so the caller runs
// without a cache.
func Connect(ctx context.Context, opts Options) *redis.Client {
	if opts.Addr == "" {
		log.Info("no REDIS_URL configured, best-move cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warnf("could not connect to %s: %v. Running without the best-move cache.", opts.Addr, err)
		_ = client.Close()
		return nil
	}

	log.WithField("addr", opts.Addr).Info("connected")
	return client
}

// RedisCache wraps redis.Client to implement game.MoveCache
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Set stores a key-value pair with expiration
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key. A missing key yields redis.Nil.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
