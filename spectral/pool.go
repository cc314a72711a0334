// Package spectral implements the parallel tiled iterator that every
// per-cell stage of the engine (initial-state synthesis, the spectral
// stages of the Propagator, and normal computation) is built on: a
// bounded worker pool dispatches fixed-size tiles of a half-spectrum or
// spatial grid to goroutines, each of which gets a freshly constructed
// per-tile processor so RNG state never crosses a goroutine boundary.
package spectral

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Task is one unit of tiled work submitted to the Pool.
type Task struct {
	Execute func() error
	ID      int
}

type taskExecution struct {
	task   Task
	result chan<- error
}

// Pool is a bounded worker pool: every worker goroutine pulls from one
// shared task channel, so a busy worker simply leaves its next tile for
// whichever sibling empties first. The engine's tiles are uniform-cost
// (every cell of a half-spectrum or spatial grid costs the same), so
// this fan-out keeps workers saturated without tracking per-worker load.
type Pool struct {
	workers int
	tasks   chan taskExecution
	quit    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once

	tasksProcessed int64
}

// NewPool starts a pool of the given worker count (clamped to >= 1).
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		workers: workers,
		tasks:   make(chan taskExecution, workers*16),
		quit:    make(chan struct{}),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case execution := <-p.tasks:
			err := execution.task.Execute()
			atomic.AddInt64(&p.tasksProcessed, 1)
			select {
			case execution.result <- err:
			case <-p.quit:
				return
			}
		case <-p.quit:
			return
		}
	}
}

// Submit enqueues a task and writes its error (nil on success) to result.
func (p *Pool) Submit(task Task, result chan<- error) {
	select {
	case p.tasks <- taskExecution{task: task, result: result}:
	case <-p.quit:
		result <- fmt.Errorf("spectral pool closed")
	}
}

// Run submits every task and blocks until all complete, returning the
// first error encountered (if any).
func (p *Pool) Run(tasks []Task) error {
	results := make(chan error, len(tasks))
	for _, t := range tasks {
		p.Submit(t, results)
	}
	var firstErr error
	for i := 0; i < len(tasks); i++ {
		if err := <-results; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// TasksProcessed returns the lifetime count of completed tasks.
func (p *Pool) TasksProcessed() int64 { return atomic.LoadInt64(&p.tasksProcessed) }

// Close stops all workers, waiting for them to exit. Safe to call
// multiple times.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.quit)
		p.wg.Wait()
	})
}
