package spectral

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestPoolRunExecutesAllTasks(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var counter int64
	tasks := make([]Task, 100)
	for i := range tasks {
		tasks[i] = Task{ID: i, Execute: func() error {
			atomic.AddInt64(&counter, 1)
			return nil
		}}
	}
	if err := pool.Run(tasks); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if counter != 100 {
		t.Errorf("counter = %d, want 100", counter)
	}
	if got := pool.TasksProcessed(); got < 100 {
		t.Errorf("TasksProcessed() = %d, want >= 100", got)
	}
}

func TestPoolRunReturnsFirstError(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	boom := errors.New("boom")
	tasks := []Task{
		{ID: 0, Execute: func() error { return nil }},
		{ID: 1, Execute: func() error { return boom }},
		{ID: 2, Execute: func() error { return nil }},
	}
	if err := pool.Run(tasks); err != boom {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}
}

func TestPoolCloseIsIdempotent(t *testing.T) {
	pool := NewPool(2)
	pool.Close()
	pool.Close()
}

func TestNewPoolClampsWorkerCount(t *testing.T) {
	pool := NewPool(0)
	defer pool.Close()
	if err := pool.Run([]Task{{Execute: func() error { return nil }}}); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
