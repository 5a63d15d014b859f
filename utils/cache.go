// File: utils/cache.go
package utils

import (
	"context"
	"log"

	"servicefinder/config"

	"github.com/go-redis/redis/v8"
)

// HoldClient is the dedicated client for slot holds.
var HoldClient *redis.Client

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitRedis connects every Redis database the server uses directly.
// The task queue database is owned by asynq.
func InitRedis() {
	GetHoldClient()
}

// GetHoldClient returns the Redis client for slot holds.
func GetHoldClient() *redis.Client {
	if HoldClient == nil {
		HoldClient = newRedisClient(config.AppConfig.RedisHoldDB, "Holds")
	}
	return HoldClient
}
