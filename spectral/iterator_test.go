package spectral

import (
	"sync"
	"testing"
)

type recordingProcessor struct {
	mu      *sync.Mutex
	dc      *int
	general *int
}

func (p recordingProcessor) DC(index int) error {
	p.mu.Lock()
	*p.dc++
	p.mu.Unlock()
	return nil
}

func (p recordingProcessor) General(ki, kj, kMag, dk float64, i, j, index int) error {
	p.mu.Lock()
	*p.general++
	p.mu.Unlock()
	return nil
}

func TestIterateVisitsEveryCellExactlyOnce(t *testing.T) {
	const n = 16
	pool := NewPool(4)
	defer pool.Close()

	var mu sync.Mutex
	dc, general := 0, 0

	err := Iterate(pool, n, 100, func() Processor {
		return recordingProcessor{mu: &mu, dc: &dc, general: &general}
	})
	if err != nil {
		t.Fatalf("Iterate returned error: %v", err)
	}

	w := n/2 + 1
	want := w * n
	if dc+general != want {
		t.Fatalf("visited %d cells, want %d", dc+general, want)
	}
	if dc != 1 {
		t.Fatalf("DC callback invoked %d times, want exactly 1", dc)
	}
}

func TestPoolRunPropagatesError(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	sentinel := errFromTest("boom")
	err := pool.Run([]Task{
		{ID: 0, Execute: func() error { return nil }},
		{ID: 1, Execute: func() error { return sentinel }},
	})
	if err != sentinel {
		t.Fatalf("Run() = %v, want sentinel error", err)
	}
}

type errFromTest string

func (e errFromTest) Error() string { return string(e) }
