package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RDB is nil when Redis is not configured or unreachable; every helper then
// behaves like an empty cache.
var RDB *redis.Client

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = redis.Nil

func InitRedis(ctx context.Context, addr string) {
	if addr == "" {
		log.Println("[CACHE] ⚠ REDIS_URL not set, running without cache")
		return
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[CACHE] ⚠ Redis unavailable: %v", err)
		client.Close()
		return
	}

	RDB = client
	log.Println("[CACHE] ✓ connected to Redis")
}

func Enabled() bool { return RDB != nil }

func Get(ctx context.Context, key string) ([]byte, error) {
	if RDB == nil {
		return nil, ErrMiss
	}
	return RDB.Get(ctx, key).Bytes()
}

func Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if RDB == nil {
		return nil
	}
	return RDB.Set(ctx, key, value, expiration).Err()
}

func Close() {
	if RDB != nil {
		RDB.Close()
		RDB = nil
	}
}
