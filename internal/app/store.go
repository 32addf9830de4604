package app

import (
	"context"
	"fmt"
	"io"

	"github.com/MrSnakeDoc/starfav/internal/config"
	"github.com/MrSnakeDoc/starfav/internal/connect"
	"github.com/MrSnakeDoc/starfav/internal/favorites"
	"github.com/MrSnakeDoc/starfav/internal/index"
	"github.com/MrSnakeDoc/starfav/internal/logger"
	mongostore "github.com/MrSnakeDoc/starfav/internal/store/mongo"
	redisstore "github.com/MrSnakeDoc/starfav/internal/store/redis"
	"github.com/MrSnakeDoc/starfav/internal/utils"
)

func retryOptions(cfg *config.Config) connect.RetryOptions {
	return connect.RetryOptions{
		ConnectTimeout: cfg.StoreConnectTimeout,
		RetryInterval:  cfg.StoreRetryInterval,
		MaxWait:        cfg.StoreMaxWait,
		PingTimeout:    cfg.StorePingTimeout,
		WarnThreshold:  cfg.StoreWarnThreshold,
	}
}

// openStore opens the one store handle the process uses.
// The returned closer releases it on shutdown.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (favorites.Store, io.Closer, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := connect.Redis(ctx, connect.RedisOptions{
			Addr:         cfg.RedisAddr,
			User:         cfg.RedisUser,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  cfg.RedisDT,
			ReadTimeout:  cfg.RedisRT,
			WriteTimeout: cfg.RedisWT,
			PoolSize:     cfg.RedisPoolSize,
		}, retryOptions(cfg), log)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewStore(client), client, nil

	case config.BackendMongo:
		client, err := connect.Mongo(ctx, cfg.MongoURI, retryOptions(cfg), log)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
		closer := utils.CloseFunc(func() error { return client.Disconnect(context.Background()) })
		return mongostore.NewStore(coll), closer, nil

	case config.BackendMemory:
		log.Warn("using in-memory favorites store, data is lost on restart")
		return index.NewMemoryIndex(), utils.CloseFunc(func() error { return nil }), nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
