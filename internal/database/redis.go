package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IlluminoStudio/scribemate-sub000/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	if _, err := Redis.Ping(Ctx).Result(); err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Rate limiting and caching will be disabled.", err)
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// CheckRateLimit allows up to limit calls per duration for the given key
// owner. With Redis unavailable it fails open.
func CheckRateLimit(ownerID string, limit int, duration time.Duration) (bool, error) {
	if Redis == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:%s", ownerID)
	count, err := Redis.Incr(Ctx, key).Result()
	if err != nil {
		return true, nil
	}

	if count == 1 {
		Redis.Expire(Ctx, key, duration)
	}

	return count <= int64(limit), nil
}

func CacheSet(key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return redis.Nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, data, expiration).Err()
}

func CacheGet(key string, dest interface{}) error {
	if Redis == nil {
		return redis.Nil
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func CacheInvalidate(pattern string) error {
	if Redis == nil {
		return nil
	}
	keys, err := Redis.Keys(Ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return Redis.Del(Ctx, keys...).Err()
	}
	return nil
}
