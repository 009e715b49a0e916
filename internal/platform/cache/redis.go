package cache

import (
	"context"
	"fmt"

	"github.com/SamriddhiRoy/user-dashboard/internal/platform/config"
	"github.com/SamriddhiRoy/user-dashboard/internal/platform/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var RDB *redis.Client

// ConnectRedis dials the configured Redis. An empty REDIS_ADDR leaves RDB nil
// and every cache built on it disabled.
func ConnectRedis(ctx context.Context) error {
	if config.AppConfig.RedisAddr == "" {
		logger.Info("redis not configured, stats cache disabled")
		return nil
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	if _, err := RDB.Ping(ctx).Result(); err != nil {
		RDB.Close()
		RDB = nil
		return fmt.Errorf("connecting to redis: %w", err)
	}
	logger.Info("connected to Redis", zap.String("addr", config.AppConfig.RedisAddr))
	return nil
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		logger.Info("redis connection closed")
	}
}
