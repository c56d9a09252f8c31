package task

import "errors"

var (
	// ErrEmptyTaskName 任务名为空
	ErrEmptyTaskName = errors.New("task name cannot be empty")

	// ErrTaskAlreadyRegistered 任务名重复注册
	ErrTaskAlreadyRegistered = errors.New("task already registered")
)
