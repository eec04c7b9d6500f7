package services

import (
	"context"

	"github.com/lk16/reversi/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services.
type Services struct {
	Redis *redis.Client
}

func InitServices(ctx context.Context, cfg *config.ServerConfig) (*Services, error) {
	redis, err := InitRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	return &Services{
		Redis: redis,
	}, nil
}

// Close closes all connections.
func (s *Services) Close() error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Close()
}
