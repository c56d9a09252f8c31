package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/config"
)

// Databases 数据库连接管理器
// Redis 承载持久缓存层，MongoDB 承载原始响应归档，两者都可以单独关闭
type Databases struct {
	Redis   *redis.Client
	MongoDB *mongo.Database
	logger  *zap.Logger
}

// New 创建数据库连接管理器
func New(cfg *config.Config, logger *zap.Logger) (*Databases, error) {
	db := &Databases{logger: logger}

	if cfg.Redis.Enabled {
		if err := db.connectRedis(cfg.Redis); err != nil {
			return nil, fmt.Errorf("failed to connect Redis: %w", err)
		}
		logger.Info("Redis connected successfully")
	}

	if cfg.MongoDB.Enabled {
		if err := db.connectMongoDB(cfg.MongoDB); err != nil {
			return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
		}
		logger.Info("MongoDB connected successfully")
	}

	return db, nil
}

// connectRedis 连接 Redis
// 优先使用 redis:// URL，其次 addr + password 组合
func (d *Databases) connectRedis(cfg config.RedisConfig) error {
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}

	d.Redis = client
	return nil
}

// connectMongoDB 连接 MongoDB
func (d *Databases) connectMongoDB(cfg config.MongoDBConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI)

	if cfg.Username != "" && cfg.Password != "" {
		opts.SetAuth(options.Credential{
			AuthSource: cfg.AuthSource,
			Username:   cfg.Username,
			Password:   cfg.Password,
		})
	}
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to connect MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	d.MongoDB = client.Database(cfg.Database)
	return nil
}

// Close 关闭所有数据库连接
func (d *Databases) Close() error {
	var errs []error

	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		} else if d.logger != nil {
			d.logger.Info("Redis connection closed")
		}
	}

	if d.MongoDB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := d.MongoDB.Client().Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close MongoDB: %w", err))
		} else if d.logger != nil {
			d.logger.Info("MongoDB connection closed")
		}
	}

	return errors.Join(errs...)
}
