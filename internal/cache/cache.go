package cache

import (
	"context"
	"fmt"
	"time"
)

// warmMirrorTTL 持久层命中后回填进程内层时使用的延长 TTL
const warmMirrorTTL = 24 * time.Hour

// Cache 两级缓存门面
// 写入时两层都写（write-through），读取时持久层优先，
// 命中则把值回填进程内层作为热镜像，未命中再退回进程内层
type Cache struct {
	durable *Redis
	memory  *Memory
}

// New 组装两级缓存
func New(durable *Redis, memory *Memory) *Cache {
	return &Cache{durable: durable, memory: memory}
}

// Key 生成缓存键：{lang}:product:{platform}:{id}
// 带语言前缀，译文和原文永远不会互相覆盖
func Key(lang, platform, id string) string {
	return fmt.Sprintf("%s:product:%s:%s", lang, platform, id)
}

// Set 写穿两层，持久层错误被吞掉，进程内层始终写入
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.durable.Set(ctx, key, value, ttl)
	c.memory.Set(key, value, ttl)
}

// Get 持久层优先，命中回填进程内层；两层都未命中返回 nil
func (c *Cache) Get(ctx context.Context, key string) []byte {
	if val := c.durable.Get(ctx, key); val != nil {
		c.memory.Set(key, val, warmMirrorTTL)
		return val
	}
	return c.memory.Get(key)
}

// Delete 两层都删
func (c *Cache) Delete(ctx context.Context, key string) {
	c.durable.Delete(ctx, key)
	c.memory.Delete(key)
}

// Memory 暴露进程内层给后台清理任务
func (c *Cache) Memory() *Memory {
	return c.memory
}
