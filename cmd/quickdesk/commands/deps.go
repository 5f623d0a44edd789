package commands

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/ShardulMane20/Quick-Desk/internal/infrastructure/db/mongo"
	"github.com/ShardulMane20/Quick-Desk/internal/infrastructure/db/redis"
	"github.com/ShardulMane20/Quick-Desk/internal/pkg/config"
	"github.com/ShardulMane20/Quick-Desk/pkg/logger"
)

// bootstrap loads configuration and initialises the logger.
func bootstrap() (*config.Config, zerolog.Logger) {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "quickdesk",
	})
	return cfg, log
}

func connectMongo(ctx context.Context, cfg *config.Config) (*gomongo.Client, *gomongo.Database, error) {
	return mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
}

func connectRedis(ctx context.Context, cfg *config.Config) (*goredis.Client, error) {
	return redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
}
