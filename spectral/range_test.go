package spectral

import (
	"errors"
	"testing"
)

func TestRunRangeCoversEveryIndexExactlyOnce(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	size := RangeGrainSize*3 + 17
	seen := make([]int32, size)
	err := RunRange(pool, size, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			seen[i]++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunRange: %v", err)
	}
	for i, v := range seen {
		if v != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, v)
		}
	}
}

func TestRunRangeZeroSizeIsNoOp(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()
	called := false
	if err := RunRange(pool, 0, func(lo, hi int) error { called = true; return nil }); err != nil {
		t.Fatalf("RunRange: %v", err)
	}
	if called {
		t.Fatalf("f should not be called for size=0")
	}
}

func TestRunRangePropagatesError(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()
	boom := errors.New("boom")
	err := RunRange(pool, RangeGrainSize*2, func(lo, hi int) error {
		if lo == RangeGrainSize {
			return boom
		}
		return nil
	})
	if err != boom {
		t.Errorf("RunRange error = %v, want %v", err, boom)
	}
}
