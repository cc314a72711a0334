package fft

import (
	"math"
	"testing"

	"github.com/blackencino/EncinoWaves/field"
)

func TestInverseOfZeroSpectrumIsZeroField(t *testing.T) {
	const n = 16
	planner, err := PlannerFor(n)
	if err != nil {
		t.Fatalf("PlannerFor: %v", err)
	}
	spec, err := field.NewSpectral(n)
	if err != nil {
		t.Fatalf("NewSpectral: %v", err)
	}
	dst, err := field.NewSpatial(n, false)
	if err != nil {
		t.Fatalf("NewSpatial: %v", err)
	}
	if err := planner.InverseToSpatial(spec, dst); err != nil {
		t.Fatalf("InverseToSpatial: %v", err)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if v := dst.At(x, y); v != 0 {
				t.Fatalf("(%d,%d) = %v, want 0", x, y, v)
			}
		}
	}
}

func TestInverseOfDCOnlyIsConstantField(t *testing.T) {
	const n = 16
	planner, err := PlannerFor(n)
	if err != nil {
		t.Fatalf("PlannerFor: %v", err)
	}
	spec, _ := field.NewSpectral(n)
	spec.Set(0, 0, complex(float64(n*n), 0))
	dst, _ := field.NewSpatial(n, false)
	if err := planner.InverseToSpatial(spec, dst); err != nil {
		t.Fatalf("InverseToSpatial: %v", err)
	}
	want := dst.At(0, 0)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if v := dst.At(x, y); math.Abs(v-want) > 1e-9 {
				t.Fatalf("(%d,%d) = %v, want constant %v", x, y, v, want)
			}
		}
	}
}

func TestPlannerForRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := PlannerFor(17); err == nil {
		t.Fatal("expected error for non-power-of-two n")
	}
}

func TestInverseToPaddedRefreshesWrapBorder(t *testing.T) {
	const n = 8
	planner, err := PlannerFor(n)
	if err != nil {
		t.Fatalf("PlannerFor: %v", err)
	}
	spec, _ := field.NewSpectral(n)
	spec.Set(1, 1, complex(3, -1))
	spec.Set(2, 0, complex(1.5, 0.5))
	dst, _ := field.NewSpatial(n, true)
	if err := planner.InverseToPadded(spec, dst); err != nil {
		t.Fatalf("InverseToPadded: %v", err)
	}
	for y := 0; y < n; y++ {
		if got, want := dst.AtPadded(n, y), dst.AtPadded(0, y); got != want {
			t.Errorf("wrap column at y=%d: %v != %v", y, got, want)
		}
	}
	for x := 0; x <= n; x++ {
		if got, want := dst.AtPadded(x, n), dst.AtPadded(x, 0); got != want {
			t.Errorf("wrap row at x=%d: %v != %v", x, got, want)
		}
	}
}
