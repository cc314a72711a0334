package kernels

import (
	"math"
	"testing"
)

func TestDeepDispersionZeroK(t *testing.T) {
	d := DeepDispersion{Gravity: 9.81}
	omega, dOmegaDk := d.Evaluate(0)
	if omega != 0 || dOmegaDk != 0 {
		t.Fatalf("expected (0,0) at k=0, got (%v,%v)", omega, dOmegaDk)
	}
}

func TestDeepDispersionGroupVelocity(t *testing.T) {
	// At any k, deep-water group velocity dOmega/dk must equal
	// omega/(2k), the textbook identity.
	d := DeepDispersion{Gravity: 9.81}
	for _, k := range []float64{0.01, 0.1, 1, 10} {
		omega, dOmegaDk := d.Evaluate(k)
		want := omega / (2 * k)
		if math.Abs(dOmegaDk-want) > 1e-9 {
			t.Errorf("k=%v: dOmegaDk=%v want %v", k, dOmegaDk, want)
		}
	}
}

func TestFiniteDepthDispersionMatchesDeepAtLargeDepth(t *testing.T) {
	deep := DeepDispersion{Gravity: 9.81}
	finite := FiniteDepthDispersion{Gravity: 9.81, Depth: 1e6}
	for _, k := range []float64{0.1, 1, 5} {
		wantOmega, wantD := deep.Evaluate(k)
		gotOmega, gotD := finite.Evaluate(k)
		if math.Abs(gotOmega-wantOmega) > 1e-6 {
			t.Errorf("k=%v: omega=%v want %v", k, gotOmega, wantOmega)
		}
		if math.Abs(gotD-wantD) > 1e-6 {
			t.Errorf("k=%v: dOmegaDk=%v want %v", k, gotD, wantD)
		}
	}
}

func TestCapillaryDispersionZeroK(t *testing.T) {
	c := CapillaryDispersion{Gravity: 9.81, Depth: 100, SurfaceTension: 0.074, Density: 1000}
	omega, dOmegaDk := c.Evaluate(0)
	if omega != 0 || dOmegaDk != 0 {
		t.Fatalf("expected (0,0) at k=0, got (%v,%v)", omega, dOmegaDk)
	}
}

func TestCapillaryDispersionFinite(t *testing.T) {
	c := CapillaryDispersion{Gravity: 9.81, Depth: 100, SurfaceTension: 0.074, Density: 1000}
	for _, k := range []float64{0.001, 0.1, 1, 100, 1000} {
		omega, dOmegaDk := c.Evaluate(k)
		if math.IsNaN(omega) || math.IsInf(omega, 0) {
			t.Errorf("k=%v: omega is non-finite: %v", k, omega)
		}
		if math.IsNaN(dOmegaDk) || math.IsInf(dOmegaDk, 0) {
			t.Errorf("k=%v: dOmegaDk is non-finite: %v", k, dOmegaDk)
		}
		if omega < 0 {
			t.Errorf("k=%v: omega negative: %v", k, omega)
		}
	}
}
