package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/answerlens/aeoscan/domain"
)

// Default values for the parallel executor
const (
	DefaultMaxConcurrency = 4
	DefaultTimeout        = 2 * time.Minute
)

// CategoryTask is one category analysis to run. Analyzers are pure functions
// over shared immutable evidence, so tasks never contend on data.
type CategoryTask struct {
	Name string
	Run  func(ctx context.Context) (domain.CategoryScore, error)
}

// TaskError represents a single task failure
type TaskError struct {
	TaskName string
	Err      error
}

// Error implements the error interface
func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.TaskName, e.Err)
}

// Unwrap returns the underlying error
func (e TaskError) Unwrap() error {
	return e.Err
}

// AggregatedError collects all task failures
type AggregatedError struct {
	Errors []TaskError
}

// Error implements the error interface
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d tasks failed:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap returns the first error for errors.Is/As compatibility
func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// ParallelExecutor runs category analyses concurrently. Each task writes
// into its own result slot, so output is identical regardless of scheduling.
type ParallelExecutor struct {
	maxConcurrency int
	timeout        time.Duration
	progress       domain.ProgressManager
}

// NewParallelExecutor creates an executor sized to the machine.
func NewParallelExecutor() *ParallelExecutor {
	return &ParallelExecutor{
		maxConcurrency: runtime.NumCPU(),
		timeout:        DefaultTimeout,
	}
}

// NewParallelExecutorWithProgress creates an executor with progress tracking.
func NewParallelExecutorWithProgress(pm domain.ProgressManager) *ParallelExecutor {
	executor := NewParallelExecutor()
	executor.progress = pm
	return executor
}

// SetMaxConcurrency overrides the concurrency limit.
func (e *ParallelExecutor) SetMaxConcurrency(max int) {
	if max > 0 {
		e.maxConcurrency = max
	}
}

// Execute runs all tasks and returns their scores keyed by task name.
// Individual failures do not stop the other tasks; they are collected and
// returned together with whatever scores completed.
func (e *ParallelExecutor) Execute(ctx context.Context, tasks []CategoryTask) (map[string]domain.CategoryScore, error) {
	if len(tasks) == 0 {
		return map[string]domain.CategoryScore{}, nil
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if e.progress != nil {
		task = e.progress.StartTask("Analyzing categories", len(tasks))
	}
	defer task.Complete()

	g, gCtx := errgroup.WithContext(timeoutCtx)
	g.SetLimit(e.maxConcurrency)

	// One slot per task; no locking needed for results.
	results := make([]domain.CategoryScore, len(tasks))
	errs := make([]error, len(tasks))

	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				errs[i] = gCtx.Err()
				return nil
			default:
			}

			score, err := t.Run(gCtx)
			task.Increment(1)
			if err != nil {
				errs[i] = err
				// Collected separately so the other tasks finish
				return nil
			}
			results[i] = score
			return nil
		})
	}
	_ = g.Wait()

	scores := make(map[string]domain.CategoryScore, len(tasks))
	var taskErrors []TaskError
	for i, t := range tasks {
		if errs[i] != nil {
			taskErrors = append(taskErrors, TaskError{TaskName: t.Name, Err: errs[i]})
			continue
		}
		scores[t.Name] = results[i]
	}

	if len(taskErrors) > 0 {
		return scores, &AggregatedError{Errors: taskErrors}
	}
	return scores, nil
}
