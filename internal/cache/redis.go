package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisCmdable 收窄到这里用到的命令，便于测试替换
type redisCmdable interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis 持久缓存层
// 所有错误都被吞掉并记录日志，缓存故障不能影响请求本身
type Redis struct {
	store  redisCmdable
	logger *zap.Logger
}

// NewRedis 用现成的 redis 客户端创建持久层
// client 为 nil 时所有操作都是空操作（未配置 Redis 的部署形态）
func NewRedis(client *redis.Client, logger *zap.Logger) *Redis {
	r := &Redis{logger: logger}
	if client != nil {
		r.store = client
	}
	return r
}

// Set 写入 JSON 编码后的值，带 TTL
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if r.store == nil {
		return
	}
	if err := r.store.Set(ctx, key, value, ttl).Err(); err != nil && r.logger != nil {
		r.logger.Warn("redis set failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// Get 读取值，未命中或出错都返回 nil
func (r *Redis) Get(ctx context.Context, key string) []byte {
	if r.store == nil {
		return nil
	}
	val, err := r.store.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil && r.logger != nil {
			r.logger.Warn("redis get failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return nil
	}
	return val
}

// Delete 删除键
func (r *Redis) Delete(ctx context.Context, key string) {
	if r.store == nil {
		return
	}
	if err := r.store.Del(ctx, key).Err(); err != nil && r.logger != nil {
		r.logger.Warn("redis del failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
