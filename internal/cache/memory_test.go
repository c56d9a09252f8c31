package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// fakeClock 可控时钟，测试 TTL 行为不依赖真实时间
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestMemory(maxSize int) (*Memory, *fakeClock) {
	clock := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := NewMemory(maxSize, nil)
	m.now = clock.now
	return m, clock
}

func TestMemory_SetGetTTL(t *testing.T) {
	m, clock := newTestMemory(10)

	m.Set("zh:product:taobao:1", []byte(`{"code":0}`), 60*time.Second)

	if got := m.Get("zh:product:taobao:1"); string(got) != `{"code":0}` {
		t.Fatalf("expected immediate hit, got %q", got)
	}

	// TTL 过后返回 nil，并且条目从统计里消失
	clock.advance(61 * time.Second)
	if got := m.Get("zh:product:taobao:1"); got != nil {
		t.Fatalf("expected nil after expiry, got %q", got)
	}
	if stats := m.Stats(); stats.Size != 0 {
		t.Errorf("expected empty stats after expiry, got size %d", stats.Size)
	}
}

func TestMemory_EvictSoonestExpiry(t *testing.T) {
	m, _ := newTestMemory(20)

	// 先写 20 条，TTL 递增：key-0 最先过期
	for i := 0; i < 20; i++ {
		ttl := time.Duration(i+1) * time.Minute
		m.Set(fmt.Sprintf("key-%d", i), []byte("v"), ttl)
	}

	// 第 21 条触发按到期时间淘汰一批
	m.Set("overflow", []byte("v"), time.Hour)

	stats := m.Stats()
	if stats.Size != 11 {
		t.Fatalf("expected 11 entries after batch eviction, got %d", stats.Size)
	}
	// 最早过期的 10 条被淘汰
	for i := 0; i < 10; i++ {
		if got := m.Get(fmt.Sprintf("key-%d", i)); got != nil {
			t.Errorf("key-%d should have been evicted", i)
		}
	}
	// 到期更晚的保留
	if got := m.Get("key-19"); got == nil {
		t.Error("key-19 should have survived eviction")
	}
	if got := m.Get("overflow"); got == nil {
		t.Error("newly written entry should be present")
	}
}

func TestMemory_Sweep(t *testing.T) {
	m, clock := newTestMemory(10)

	m.Set("short", []byte("a"), time.Second)
	m.Set("long", []byte("b"), time.Hour)

	clock.advance(2 * time.Second)

	if cleaned := m.Sweep(); cleaned != 1 {
		t.Fatalf("expected 1 swept entry, got %d", cleaned)
	}
	if got := m.Get("long"); got == nil {
		t.Error("unexpired entry removed by sweep")
	}
}

func TestCache_MemoryFallback(t *testing.T) {
	m, _ := newTestMemory(10)
	c := New(NewRedis(nil, nil), m)
	ctx := context.Background()

	c.Set(ctx, "en:product:micro:42", []byte("payload"), time.Minute)

	// 持久层未配置时走进程内层
	if got := c.Get(ctx, "en:product:micro:42"); string(got) != "payload" {
		t.Fatalf("expected fallback hit, got %q", got)
	}

	c.Delete(ctx, "en:product:micro:42")
	if got := c.Get(ctx, "en:product:micro:42"); got != nil {
		t.Fatalf("expected nil after delete, got %q", got)
	}
}

func TestKey(t *testing.T) {
	if got := Key("en", "taobao", "123"); got != "en:product:taobao:123" {
		t.Errorf("unexpected key %q", got)
	}
	// 语言前缀隔离译文和原文
	if Key("en", "taobao", "123") == Key("zh", "taobao", "123") {
		t.Error("keys for different languages must not collide")
	}
}
