package db

import (
	"backend-routeglobe/internal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when redis is disabled or has no address. Callers
// then keep sessions in process and stream to local viewers only.
func ConnectRedis(cfg config.Config) *redis.Client {
	if !cfg.RedisEnabled || cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
