package tasks

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/cache"
)

// CacheSweep 每小时清理一遍内存缓存里的过期商品记录
// Redis 的过期由服务端 TTL 处理，这里只管进程内那份
type CacheSweep struct {
	memory *cache.Memory
	logger *zap.Logger
}

// NewCacheSweep 创建内存缓存清理任务
func NewCacheSweep(memory *cache.Memory, logger *zap.Logger) *CacheSweep {
	return &CacheSweep{
		memory: memory,
		logger: logger,
	}
}

func (t *CacheSweep) Name() string {
	return "cache_sweep"
}

func (t *CacheSweep) Schedule() string {
	// 每小时整点
	return "0 0 * * * *"
}

func (t *CacheSweep) Run(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	removed := t.memory.Sweep()
	stats := t.memory.Stats()

	t.logger.Info("memory cache swept",
		zap.Int("removed", removed),
		zap.Int("remaining", stats.Size),
	)
	return nil
}

func (t *CacheSweep) Timeout() time.Duration {
	return time.Minute
}

func (t *CacheSweep) Enabled() bool {
	return t.memory != nil
}
