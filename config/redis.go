package config

import (
	"fmt"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects the history cache and verifies the connection with a
// ping.
func InitRedis(cfg *Config) (*redis.Client, error) {
	redisConf := cfg.Redis
	client := redis.NewClient(&redis.Options{
		Addr:     redisConf.Addr,
		Password: redisConf.Password,
		DB:       redisConf.DB,
	})

	if _, err := client.Ping(client.Context()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
