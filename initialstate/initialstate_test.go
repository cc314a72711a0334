package initialstate

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/blackencino/EncinoWaves/params"
	"github.com/blackencino/EncinoWaves/spectral"
)

func TestBuildFlatOceanIsNearZero(t *testing.T) {
	p := params.Default()
	p.ResolutionPowerOfTwo = 6 // N=64
	p.Domain = 100
	p.WindSpeed = 0.001
	p.Dispersion = params.Deep
	p.Spectrum = params.PiersonMoskowitz
	p.DirectionalSpreading = params.DirectionalSpreadingConfig{Type: params.PosCosSquared, Swell: 0}
	p.Filter.Type = params.NullFilter

	pool := spectral.NewPool(4)
	defer pool.Close()

	state, err := Build(p, pool)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	maxAbs := 0.0
	for _, c := range state.HSpectralPos.Raw() {
		if a := cmplx.Abs(c); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs > 1e-2 {
		t.Fatalf("max|HSpectralPos| = %v, want near zero for near-still water", maxAbs)
	}
}

func TestBuildDCCellIsZero(t *testing.T) {
	p := params.Default()
	p.ResolutionPowerOfTwo = 5 // N=32

	pool := spectral.NewPool(2)
	defer pool.Close()

	state, err := Build(p, pool)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if v := state.HSpectralPos.At(0, 0); v != 0 {
		t.Errorf("HSpectralPos DC = %v, want 0", v)
	}
	if v := state.HSpectralNeg.At(0, 0); v != 0 {
		t.Errorf("HSpectralNeg DC = %v, want 0", v)
	}
	if v := state.Omega.At(0, 0); v != 0 {
		t.Errorf("Omega DC = %v, want 0", v)
	}
}

func TestBuildIsDeterministicForFixedSeed(t *testing.T) {
	p := params.Default()
	p.ResolutionPowerOfTwo = 5
	p.Random.Seed = 777

	pool := spectral.NewPool(4)
	defer pool.Close()

	a, err := Build(p, pool)
	if err != nil {
		t.Fatalf("Build a: %v", err)
	}
	b, err := Build(p, pool)
	if err != nil {
		t.Fatalf("Build b: %v", err)
	}

	rawA, rawB := a.HSpectralPos.Raw(), b.HSpectralPos.Raw()
	for idx := range rawA {
		if rawA[idx] != rawB[idx] {
			t.Fatalf("cell %d differs across identical builds: %v != %v", idx, rawA[idx], rawB[idx])
		}
	}
}

func TestBuildDifferentSeedsDiffer(t *testing.T) {
	p := params.Default()
	p.ResolutionPowerOfTwo = 5
	p.Random.Seed = 1

	pool := spectral.NewPool(4)
	defer pool.Close()

	a, err := Build(p, pool)
	if err != nil {
		t.Fatalf("Build a: %v", err)
	}
	p.Random.Seed = 2
	b, err := Build(p, pool)
	if err != nil {
		t.Fatalf("Build b: %v", err)
	}

	rawA, rawB := a.HSpectralPos.Raw(), b.HSpectralPos.Raw()
	differs := false
	for idx := range rawA {
		if rawA[idx] != rawB[idx] {
			differs = true
			break
		}
	}
	if !differs {
		t.Fatal("expected different seeds to produce different spectra")
	}
}

func TestBuildOmegaIsFiniteAndNonNegative(t *testing.T) {
	p := params.Default()
	p.ResolutionPowerOfTwo = 5

	pool := spectral.NewPool(4)
	defer pool.Close()

	state, err := Build(p, pool)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, w := range state.Omega.Raw() {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			t.Fatalf("non-finite omega: %v", w)
		}
		if w < 0 {
			t.Fatalf("negative omega: %v", w)
		}
	}
}

func TestBuildRejectsInvalidParameters(t *testing.T) {
	p := params.Default()
	p.Gravity = -1

	pool := spectral.NewPool(2)
	defer pool.Close()

	if _, err := Build(p, pool); err == nil {
		t.Fatal("expected error for negative gravity")
	}
}
