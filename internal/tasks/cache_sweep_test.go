package tasks

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/cache"
)

func TestCacheSweepRun(t *testing.T) {
	memory := cache.NewMemory(10, nil)
	memory.Set("en:product:taobao:1", []byte(`{}`), -time.Second)
	memory.Set("en:product:taobao:2", []byte(`{}`), time.Hour)

	sweep := NewCacheSweep(memory, zap.NewNop())
	if !sweep.Enabled() {
		t.Fatalf("sweep with memory layer must be enabled")
	}
	if err := sweep.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if memory.Stats().Size != 1 {
		t.Errorf("expected only the live entry to survive, got %d", memory.Stats().Size)
	}
}

func TestCacheSweepDisabledWithoutMemory(t *testing.T) {
	sweep := NewCacheSweep(nil, zap.NewNop())
	if sweep.Enabled() {
		t.Errorf("sweep without memory layer must stay disabled")
	}
}

func TestArchiveCleanupDisabledWithoutStore(t *testing.T) {
	cleanup := NewArchiveCleanup(nil, 0, zap.NewNop())
	if cleanup.Enabled() {
		t.Errorf("cleanup without archive store must stay disabled")
	}
	if cleanup.retention != DefaultArchiveRetention {
		t.Errorf("zero retention must fall back to default, got %v", cleanup.retention)
	}
}
