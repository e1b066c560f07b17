package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/answerlens/aeoscan/domain"
)

func TestExecuteCollectsAllScores(t *testing.T) {
	tasks := []CategoryTask{
		{Name: "a", Run: func(context.Context) (domain.CategoryScore, error) {
			return domain.CategoryScore{Score: 10}, nil
		}},
		{Name: "b", Run: func(context.Context) (domain.CategoryScore, error) {
			return domain.CategoryScore{Score: 20}, nil
		}},
		{Name: "c", Run: func(context.Context) (domain.CategoryScore, error) {
			return domain.CategoryScore{Score: 30}, nil
		}},
	}

	scores, err := NewParallelExecutor().Execute(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("got %d scores", len(scores))
	}
	if scores["a"].Score != 10 || scores["b"].Score != 20 || scores["c"].Score != 30 {
		t.Errorf("scores = %v", scores)
	}
}

func TestExecuteFailureDoesNotStopOtherTasks(t *testing.T) {
	var completed int64
	tasks := []CategoryTask{
		{Name: "failing", Run: func(context.Context) (domain.CategoryScore, error) {
			return domain.CategoryScore{}, errors.New("broken analyzer")
		}},
		{Name: "fine", Run: func(context.Context) (domain.CategoryScore, error) {
			atomic.AddInt64(&completed, 1)
			return domain.CategoryScore{Score: 50}, nil
		}},
	}

	scores, err := NewParallelExecutor().Execute(context.Background(), tasks)
	if err == nil {
		t.Fatal("expected an aggregated error")
	}
	if atomic.LoadInt64(&completed) != 1 {
		t.Error("healthy task should have run despite the failure")
	}
	if scores["fine"].Score != 50 {
		t.Errorf("partial scores should be returned: %v", scores)
	}

	var agg *AggregatedError
	if !errors.As(err, &agg) {
		t.Fatalf("err = %T, want *AggregatedError", err)
	}
	if len(agg.Errors) != 1 || agg.Errors[0].TaskName != "failing" {
		t.Errorf("agg = %+v", agg)
	}
}

func TestExecuteConcurrencyLimit(t *testing.T) {
	var current, peak int64
	exec := NewParallelExecutor()
	exec.SetMaxConcurrency(2)

	tasks := make([]CategoryTask, 8)
	for i := range tasks {
		tasks[i] = CategoryTask{
			Name: string(rune('a' + i)),
			Run: func(context.Context) (domain.CategoryScore, error) {
				n := atomic.AddInt64(&current, 1)
				for {
					p := atomic.LoadInt64(&peak)
					if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
						break
					}
				}
				atomic.AddInt64(&current, -1)
				return domain.CategoryScore{}, nil
			},
		}
	}

	if _, err := exec.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if p := atomic.LoadInt64(&peak); p > 2 {
		t.Errorf("peak concurrency %d exceeds limit 2", p)
	}
}

func TestExecuteEmptyTaskList(t *testing.T) {
	scores, err := NewParallelExecutor().Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("scores = %v", scores)
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []CategoryTask{
		{Name: "a", Run: func(context.Context) (domain.CategoryScore, error) {
			return domain.CategoryScore{Score: 1}, nil
		}},
	}
	_, err := NewParallelExecutor().Execute(ctx, tasks)
	if err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestTaskErrorFormatting(t *testing.T) {
	te := TaskError{TaskName: "aiReadability", Err: errors.New("boom")}
	if te.Error() != "[aiReadability] boom" {
		t.Errorf("Error() = %q", te.Error())
	}

	agg := &AggregatedError{Errors: []TaskError{te, {TaskName: "other", Err: errors.New("bang")}}}
	msg := agg.Error()
	if msg == "" || agg.Unwrap() == nil {
		t.Errorf("aggregated error = %q, unwrap = %v", msg, agg.Unwrap())
	}
}
