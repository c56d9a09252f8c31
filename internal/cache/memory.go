package cache

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// evictBatchSize 容量满时一次淘汰的条目数
const evictBatchSize = 10

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory 进程内缓存层
// 容量有界，溢出时优先淘汰最早过期的条目（按到期时间，不是 LRU）
// 过期条目由定时任务调用 Sweep 统一清理
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	maxSize int
	logger  *zap.Logger
	now     func() time.Time
}

// MemoryStats 进程内缓存层的统计信息
type MemoryStats struct {
	Size              int      `json:"size"`
	MaxSize           int      `json:"max_size"`
	Keys              []string `json:"keys"`
	EstimatedMemoryMB float64  `json:"estimated_memory_mb"`
}

// NewMemory 创建进程内缓存层
func NewMemory(maxSize int, logger *zap.Logger) *Memory {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &Memory{
		entries: make(map[string]entry),
		maxSize: maxSize,
		logger:  logger,
		now:     time.Now,
	}
}

// Set 写入一个条目，必要时先按到期时间淘汰一批
func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) >= m.maxSize {
		m.evictSoonest(evictBatchSize)
	}

	m.entries[key] = entry{
		value:     value,
		expiresAt: m.now().Add(ttl),
	}
}

// Get 读取一个条目，过期或不存在返回 nil
// 过期条目顺带删除
func (m *Memory) Get(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return nil
	}
	return e.value
}

// Delete 删除一个条目
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Sweep 清理所有已过期条目，返回清理数量
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cleaned := 0
	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
			cleaned++
		}
	}

	if cleaned > 0 && m.logger != nil {
		m.logger.Info("swept expired cache entries", zap.Int("cleaned", cleaned))
	}
	return cleaned
}

// Stats 返回当前统计，内存占用按 JSON 序列化长度粗略估算
func (m *Memory) Stats() MemoryStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.entries))
	estimatedBytes := 0
	for key, e := range m.entries {
		keys = append(keys, key)
		estimatedBytes += len(key) + len(e.value) + 100
	}
	sort.Strings(keys)

	mb := float64(estimatedBytes) / 1024 / 1024
	return MemoryStats{
		Size:              len(m.entries),
		MaxSize:           m.maxSize,
		Keys:              keys,
		EstimatedMemoryMB: float64(int(mb*100)) / 100,
	}
}

// evictSoonest 淘汰 count 个最早过期的条目，调用方持锁
func (m *Memory) evictSoonest(count int) {
	type candidate struct {
		key       string
		expiresAt time.Time
	}
	candidates := make([]candidate, 0, len(m.entries))
	for key, e := range m.entries {
		candidates = append(candidates, candidate{key: key, expiresAt: e.expiresAt})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].expiresAt.Before(candidates[j].expiresAt)
	})

	if count > len(candidates) {
		count = len(candidates)
	}
	for i := 0; i < count; i++ {
		delete(m.entries, candidates[i].key)
	}
}

// MarshalStats 方便日志里直接输出统计 JSON
func (m *Memory) MarshalStats() string {
	b, err := json.Marshal(m.Stats())
	if err != nil {
		return "{}"
	}
	return string(b)
}
