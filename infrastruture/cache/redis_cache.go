package cache

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/mazesolver/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "mazesolver"
	defaultTTL    = 10 * time.Minute
	lockExpiry    = 30 * time.Second
	solutionInfix = ":solution:"
	lockKeySuffix = ":build_lock"
	lockTries     = 64
)

var ErrNilClient = errors.New("redis client is nil")

// RedisCache stores encoded solutions in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
}

// NewRedisCache initializes a RedisCache with the provided Redis client and TTL.
// A non-positive TTL falls back to ten minutes.
func NewRedisCache(client *redis.Client, ttlSeconds int) (i.Cache, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	c := &RedisCache{
		client: client,
		prefix: defaultPrefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	if c.ttl <= 0 {
		c.ttl = defaultTTL
	}

	pool := goredis.NewPool(client)
	c.locker = redsync.New(pool)
	return c, nil
}

// Get returns the cached value for key. A missing key is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores value under key with the cache TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, c.key(key), value, c.ttl).Err()
}

// Lock takes a distributed lock so only one process builds a given solution.
func (c *RedisCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(
		c.key(key)+lockKeySuffix,
		redsync.WithExpiry(lockExpiry),
		redsync.WithTries(lockTries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.UnlockContext(context.WithoutCancel(ctx))
	}, nil
}

func (c *RedisCache) key(key string) string {
	return c.prefix + solutionInfix + key
}
