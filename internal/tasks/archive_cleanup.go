package tasks

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/archive"
)

// DefaultArchiveRetention 原始响应归档的默认保留时长
const DefaultArchiveRetention = 7 * 24 * time.Hour

// ArchiveCleanup 每天凌晨删除超过保留期的原始响应归档
type ArchiveCleanup struct {
	store     *archive.Store
	retention time.Duration
	logger    *zap.Logger
}

// NewArchiveCleanup 创建归档清理任务，retention 为 0 时取默认值
func NewArchiveCleanup(store *archive.Store, retention time.Duration, logger *zap.Logger) *ArchiveCleanup {
	if retention <= 0 {
		retention = DefaultArchiveRetention
	}
	return &ArchiveCleanup{
		store:     store,
		retention: retention,
		logger:    logger,
	}
}

func (t *ArchiveCleanup) Name() string {
	return "archive_cleanup"
}

func (t *ArchiveCleanup) Schedule() string {
	// 每天凌晨 2 点
	return "0 0 2 * * *"
}

func (t *ArchiveCleanup) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-t.retention)

	deleted, err := t.store.CleanupBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up raw response archive: %w", err)
	}

	t.logger.Info("raw response archive cleaned",
		zap.Time("cutoff", cutoff),
		zap.Int64("deleted", deleted),
	)
	return nil
}

func (t *ArchiveCleanup) Timeout() time.Duration {
	return 10 * time.Minute
}

func (t *ArchiveCleanup) Enabled() bool {
	return t.store.Enabled()
}
