package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/task"
)

// Scheduler 按 cron 表达式驱动注册表里的任务
type Scheduler struct {
	cron           *cron.Cron
	registry       *task.Registry
	logger         *zap.Logger
	onResult       func(ctx context.Context, result task.Result)
	running        bool
	mu             sync.RWMutex
	ctx            context.Context
	cancel         context.CancelFunc
	entries        map[string]cron.EntryID
	defaultTimeout time.Duration
}

// Config 调度器配置
type Config struct {
	Logger         *zap.Logger
	Registry       *task.Registry
	DefaultTimeout time.Duration
	Location       *time.Location

	// OnResult 每次任务执行完成后回调，可为 nil
	// 在任务自身的超时上下文之外执行，用于失败告警等旁路动作
	OnResult func(ctx context.Context, result task.Result)
}

// New 创建调度器
func New(cfg Config) *Scheduler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Registry == nil {
		cfg.Registry = task.NewRegistry()
	}
	if cfg.DefaultTimeout == 0 {
		cfg.DefaultTimeout = 30 * time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	c := cron.New(
		cron.WithLocation(cfg.Location),
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:           c,
		registry:       cfg.Registry,
		logger:         cfg.Logger,
		onResult:       cfg.OnResult,
		ctx:            ctx,
		cancel:         cancel,
		entries:        make(map[string]cron.EntryID),
		defaultTimeout: cfg.DefaultTimeout,
	}
}

// Start 注册启用的任务并启动调度
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	tasks := s.registry.Enabled()
	for name, t := range tasks {
		if err := s.add(name, t); err != nil {
			s.logger.Error("failed to add task",
				zap.String("task", name),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("task registered",
			zap.String("task", name),
			zap.String("schedule", t.Schedule()),
		)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("scheduler started", zap.Int("total_tasks", len(tasks)))
	return nil
}

// Stop 停掉调度器，等待在途任务结束或 ctx 超时
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.logger.Info("stopping scheduler...")

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.logger.Info("scheduler stopped gracefully")
	case <-ctx.Done():
		s.logger.Warn("context cancelled while stopping scheduler")
		return ctx.Err()
	}

	s.cancel()
	s.running = false
	return nil
}

// IsRunning 调度器是否在运行
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scheduler) add(name string, t task.Task) error {
	schedule := t.Schedule()
	if schedule == "" {
		return fmt.Errorf("task schedule cannot be empty")
	}

	entryID, err := s.cron.AddFunc(schedule, s.wrap(name, t))
	if err != nil {
		return fmt.Errorf("failed to parse schedule: %w", err)
	}

	s.entries[name] = entryID
	return nil
}

// wrap 包一层超时控制与结果记录
func (s *Scheduler) wrap(name string, t task.Task) func() {
	return func() {
		startedAt := time.Now()
		s.logger.Info("task started", zap.String("task", name))

		timeout := t.Timeout()
		if timeout == 0 {
			timeout = s.defaultTimeout
		}

		ctx, cancel := context.WithTimeout(s.ctx, timeout)
		err := t.Run(ctx)
		cancel()

		result := task.Result{
			Name:       name,
			StartedAt:  startedAt,
			FinishedAt: time.Now(),
			Duration:   time.Since(startedAt),
			Err:        err,
		}

		s.report(result)
	}
}

func (s *Scheduler) report(result task.Result) {
	fields := []zap.Field{
		zap.String("task", result.Name),
		zap.Duration("duration", result.Duration),
	}
	if result.Err != nil {
		s.logger.Error("task completed with error", append(fields, zap.Error(result.Err))...)
	} else {
		s.logger.Info("task completed successfully", fields...)
	}

	if s.onResult != nil {
		// 告警走调度器自身的生命周期上下文，不受任务超时影响
		s.onResult(s.ctx, result)
	}
}
