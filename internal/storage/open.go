package storage

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/poetry/internal/config"
	"github.com/MrSnakeDoc/poetry/internal/logger"
	"github.com/MrSnakeDoc/poetry/internal/redis"
)

// Open builds the backend selected by cfg.Storage.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (KV, error) {
	switch cfg.Storage {
	case config.StorageFile, "":
		log.Info("using file storage", logger.String("dir", cfg.DataDir))
		return NewFileKV(cfg.DataDir)

	case config.StorageSQLite:
		log.Info("using sqlite storage", logger.String("path", cfg.SQLitePath))
		return NewSQLiteKV(ctx, cfg.SQLitePath)

	case config.StorageMemory:
		log.Warn("using memory storage, nothing will survive a restart")
		return NewMemoryKV(), nil

	case config.StorageRedis:
		client, err := redis.New(ctx, redis.Options{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, err
		}
		return NewRedisKV(client), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
