// Package fft plans and executes the Hermitian complex-to-real 2D
// inverse transforms the engine needs: a half-spectrum field (N/2+1 by
// N complex) to a real spatial field (N by N, or (N+1) by (N+1) in
// padded mode). Built on gonum's dsp/fourier, composing a real row
// transform with a complex column transform, since gonum exposes no
// native 2D real FFT.
package fft

import (
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/blackencino/EncinoWaves/field"
	"github.com/blackencino/EncinoWaves/waverr"
)

// Planner holds the per-N FFT plans (a real row transform and a complex
// column transform), built once and reused for every inverse transform
// at that resolution — the module's stand-in for the reference's
// process-wide FFTW plan cache.
type Planner struct {
	n      int
	rowFFT *fourier.FFT
	colFFT *fourier.CmplxFFT
}

var (
	plannerMu    sync.Mutex
	plannerCache = map[int]*Planner{}
)

// PlannerFor returns the process-wide Planner for resolution n,
// constructing it on first use. Mirrors the reference's lazily
// initialized, never-torn-down FFT thread state.
func PlannerFor(n int) (*Planner, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, &waverr.FftFailure{Width: n/2 + 1, Height: n, Reason: "n must be a power of two >= 2"}
	}
	plannerMu.Lock()
	defer plannerMu.Unlock()
	if p, ok := plannerCache[n]; ok {
		return p, nil
	}
	p := &Planner{
		n:      n,
		rowFFT: fourier.NewFFT(n),
		colFFT: fourier.NewCmplxFFT(n),
	}
	plannerCache[n] = p
	return p, nil
}

// InverseToSpatial executes the Hermitian complex-to-real inverse
// transform of src into a plain (unpadded) real spatial field.
func (p *Planner) InverseToSpatial(src *field.Spectral, dst *field.Spatial) error {
	if src.N() != p.n || dst.N() != p.n {
		return &waverr.FftFailure{Width: src.Width(), Height: src.N(), Reason: "planner/field resolution mismatch"}
	}
	return p.inverse(src, func(x, y int, v float64) { dst.Set(x, y, v) })
}

// InverseToPadded executes the same inverse transform but writes into a
// padded (N+1)x(N+1) field and immediately refreshes the wrap border, so
// the output is ready for mesh triangulation without a further copy.
func (p *Planner) InverseToPadded(src *field.Spectral, dst *field.Spatial) error {
	if src.N() != p.n || dst.N() != p.n || !dst.Padded() {
		return &waverr.FftFailure{Width: src.Width(), Height: src.N(), Reason: "planner/field resolution mismatch or field not padded"}
	}
	if err := p.inverse(src, func(x, y int, v float64) { dst.SetPadded(x, y, v) }); err != nil {
		return err
	}
	dst.RefreshWrapBorder()
	return nil
}

// inverse performs the 2D Hermitian complex-to-real inverse transform in
// the only order that is correct for a half-spectrum layout: a complex
// inverse FFT along the full-length j axis (undoing the column pass a
// forward real-2D-FFT would have applied second), producing a complex
// (N/2+1) x N array indexed by spatial y; then, for each spatial row y,
// a real inverse FFT along the half-spectrum i axis reconstructs the N
// real x values.
func (p *Planner) inverse(src *field.Spectral, emit func(x, y int, v float64)) error {
	n := p.n
	w := src.Width()

	colOut := make([][]complex128, w)
	colIn := make([]complex128, n)
	for i := 0; i < w; i++ {
		for j := 0; j < n; j++ {
			colIn[j] = src.At(i, j)
		}
		out := make([]complex128, n)
		p.colFFT.Sequence(out, colIn)
		colOut[i] = out
	}

	rowCoeff := make([]complex128, w)
	row := make([]float64, n)
	for y := 0; y < n; y++ {
		for i := 0; i < w; i++ {
			rowCoeff[i] = colOut[i][y]
		}
		p.rowFFT.Sequence(row, rowCoeff)
		for x := 0; x < n; x++ {
			emit(x, y, row[x])
		}
	}
	return nil
}
