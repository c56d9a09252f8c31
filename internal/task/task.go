package task

import (
	"context"
	"time"
)

// Task 后台定时任务
type Task interface {
	// Name 任务名，注册表内唯一
	Name() string

	// Schedule 六段 cron 表达式（含秒），如 "0 0 * * * *" 为整点执行
	Schedule() string

	// Run 执行一次任务
	Run(ctx context.Context) error

	// Timeout 单次执行上限，返回 0 使用调度器默认值
	Timeout() time.Duration

	// Enabled 未启用的任务不会被调度
	Enabled() bool
}

// Result 一次任务执行的结果
type Result struct {
	Name       string
	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration
	Err        error
}

// Registry 任务注册表
type Registry struct {
	tasks map[string]Task
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]Task)}
}

// Register 注册一个任务，名字重复或为空时报错
func (r *Registry) Register(t Task) error {
	name := t.Name()
	if name == "" {
		return ErrEmptyTaskName
	}
	if _, exists := r.tasks[name]; exists {
		return ErrTaskAlreadyRegistered
	}
	r.tasks[name] = t
	return nil
}

// Enabled 返回所有启用的任务
func (r *Registry) Enabled() map[string]Task {
	result := make(map[string]Task)
	for name, t := range r.tasks {
		if t.Enabled() {
			result[name] = t
		}
	}
	return result
}

// Len 已注册任务数
func (r *Registry) Len() int {
	return len(r.tasks)
}
