// Package propagate advances an InitialState to a point in time,
// producing a real spatial Height field plus the horizontal-displacement
// and crest-indicator fields the renderer blends with, by way of a
// sequence of spectral derivative evaluations and inverse FFTs.
package propagate

import (
	"math"

	"github.com/blackencino/EncinoWaves/field"
	"github.com/blackencino/EncinoWaves/fft"
	"github.com/blackencino/EncinoWaves/initialstate"
	"github.com/blackencino/EncinoWaves/kernels"
	"github.com/blackencino/EncinoWaves/params"
	"github.com/blackencino/EncinoWaves/spectral"
	"github.com/blackencino/EncinoWaves/stats"
	"github.com/blackencino/EncinoWaves/waverr"
)

// crestPinch is the hard-coded Jacobian pinch used by the crest
// indicator, distinct from Parameters.Pinch (which only affects the
// normal computer's visual displacement).
const crestPinch = 1.25

// PropagatedState is one frame's output: the displaced height field, its
// horizontal components, and the crest indicator, all padded (N+1)x(N+1)
// so they can be triangulated directly.
type PropagatedState struct {
	Height *field.Spatial
	Dx     *field.Spatial
	Dy     *field.Spatial
	MinE   *field.Spatial
}

// NewPropagatedState allocates a PropagatedState for resolution n.
func NewPropagatedState(n int) (*PropagatedState, error) {
	fields := make([]*field.Spatial, 4)
	for i := range fields {
		f, err := field.NewSpatial(n, true)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	return &PropagatedState{Height: fields[0], Dx: fields[1], Dy: fields[2], MinE: fields[3]}, nil
}

// Propagator holds the scratch spectral/spatial buffers and FFT planner
// for one fixed resolution N, allocated once and reused across frames.
type Propagator struct {
	n      int
	domain float64

	planner *fft.Planner
	pool    *spectral.Pool

	hSpec     *field.Spectral
	tempSpec  *field.Spectral
	hFiltSpec *field.Spectral

	filtHeight *field.Spatial
	filtDx     *field.Spatial
	filtDy     *field.Spatial
	filtMinE   *field.Spatial
}

// NewPropagator builds a Propagator for the resolution and domain named
// by p, with a dedicated worker pool of the given size.
func NewPropagator(p params.Parameters, workers int) (*Propagator, error) {
	n := p.Resolution()
	planner, err := fft.PlannerFor(n)
	if err != nil {
		return nil, err
	}
	hSpec, err := field.NewSpectral(n)
	if err != nil {
		return nil, err
	}
	tempSpec, err := field.NewSpectral(n)
	if err != nil {
		return nil, err
	}
	hFiltSpec, err := field.NewSpectral(n)
	if err != nil {
		return nil, err
	}
	filtHeight, err := field.NewSpatial(n, true)
	if err != nil {
		return nil, err
	}
	filtDx, err := field.NewSpatial(n, true)
	if err != nil {
		return nil, err
	}
	filtDy, err := field.NewSpatial(n, true)
	if err != nil {
		return nil, err
	}
	filtMinE, err := field.NewSpatial(n, true)
	if err != nil {
		return nil, err
	}
	return &Propagator{
		n:          n,
		domain:     p.Domain,
		planner:    planner,
		pool:       spectral.NewPool(workers),
		hSpec:      hSpec,
		tempSpec:   tempSpec,
		hFiltSpec:  hFiltSpec,
		filtHeight: filtHeight,
		filtDx:     filtDx,
		filtDy:     filtDy,
		filtMinE:   filtMinE,
	}, nil
}

// Close releases the Propagator's worker pool.
func (pr *Propagator) Close() { pr.pool.Close() }

// Propagate fills out with the state of initial at time t.
func (pr *Propagator) Propagate(p params.Parameters, initial *initialstate.InitialState, out *PropagatedState, t float64) error {
	n := pr.n
	if initial.Resolution() != n || out.Height.N() != n {
		return &waverr.InvalidShape{Width: initial.Resolution(), Height: n, Reason: "propagator/initial-state/output resolution mismatch"}
	}

	// Step 1: time evolution.
	if err := spectral.Iterate(pr.pool, n, pr.domain, func() spectral.Processor {
		return &hspecProcessor{
			pos: initial.HSpectralPos.Raw(), neg: initial.HSpectralNeg.Raw(),
			omega: initial.Omega.Raw(), time: t, dst: pr.hSpec.Raw(),
		}
	}); err != nil {
		return err
	}

	// Step 2: second derivatives, reusing one scratch spectral buffer and
	// temporarily parking the results in Dx/Dy/MinE.
	if err := pr.mapSpectral(derivDxx, pr.hSpec.Raw(), pr.tempSpec.Raw(), nil); err != nil {
		return err
	}
	if err := pr.planner.InverseToPadded(pr.tempSpec, out.Dx); err != nil {
		return err
	}
	if err := pr.mapSpectral(derivDyy, pr.hSpec.Raw(), pr.tempSpec.Raw(), nil); err != nil {
		return err
	}
	if err := pr.planner.InverseToPadded(pr.tempSpec, out.Dy); err != nil {
		return err
	}
	if err := pr.mapSpectral(derivDxy, pr.hSpec.Raw(), pr.tempSpec.Raw(), nil); err != nil {
		return err
	}
	if err := pr.planner.InverseToPadded(pr.tempSpec, out.MinE); err != nil {
		return err
	}

	// Step 3: crest indicator from the three second derivatives.
	if err := computeMinE(pr.pool, out.Dx.Raw(), out.Dy.Raw(), out.MinE.Raw(), crestPinch); err != nil {
		return err
	}

	// Step 4: first derivatives.
	if err := pr.mapSpectral(derivDx, pr.hSpec.Raw(), pr.tempSpec.Raw(), nil); err != nil {
		return err
	}
	if err := pr.planner.InverseToPadded(pr.tempSpec, out.Dx); err != nil {
		return err
	}
	if err := pr.mapSpectral(derivDy, pr.hSpec.Raw(), pr.tempSpec.Raw(), nil); err != nil {
		return err
	}
	if err := pr.planner.InverseToPadded(pr.tempSpec, out.Dy); err != nil {
		return err
	}

	if p.TroughDamping == 0 {
		return pr.planner.InverseToPadded(pr.hSpec, out.Height)
	}

	filter := kernels.SmoothInvertibleBandPassFilter{
		Edge0:  0,
		Edge1:  p.TroughDampingSmallWavelength,
		Edge2:  p.TroughDampingBigWavelength,
		Edge3:  p.TroughDampingBigWavelength + p.TroughDampingSoftWidth,
		Min:    0,
		Invert: true,
	}

	// Filtered spectrum, spectrally.
	if err := pr.mapSpectral(derivHFilt, pr.hSpec.Raw(), pr.hFiltSpec.Raw(), filter); err != nil {
		return err
	}

	// Unfiltered height, needed before the filtered recompute blends.
	if err := pr.planner.InverseToPadded(pr.hSpec, out.Height); err != nil {
		return err
	}

	// Steps 2-4 again, over the filtered spectrum, into the Filt* scratch.
	if err := pr.mapSpectral(derivDxx, pr.hFiltSpec.Raw(), pr.tempSpec.Raw(), nil); err != nil {
		return err
	}
	if err := pr.planner.InverseToPadded(pr.tempSpec, pr.filtDx); err != nil {
		return err
	}
	if err := pr.mapSpectral(derivDyy, pr.hFiltSpec.Raw(), pr.tempSpec.Raw(), nil); err != nil {
		return err
	}
	if err := pr.planner.InverseToPadded(pr.tempSpec, pr.filtDy); err != nil {
		return err
	}
	if err := pr.mapSpectral(derivDxy, pr.hFiltSpec.Raw(), pr.tempSpec.Raw(), nil); err != nil {
		return err
	}
	if err := pr.planner.InverseToPadded(pr.tempSpec, pr.filtMinE); err != nil {
		return err
	}
	if err := computeMinE(pr.pool, pr.filtDx.Raw(), pr.filtDy.Raw(), pr.filtMinE.Raw(), crestPinch); err != nil {
		return err
	}

	if err := pr.mapSpectral(derivDx, pr.hFiltSpec.Raw(), pr.tempSpec.Raw(), nil); err != nil {
		return err
	}
	if err := pr.planner.InverseToPadded(pr.tempSpec, pr.filtDx); err != nil {
		return err
	}
	if err := pr.mapSpectral(derivDy, pr.hFiltSpec.Raw(), pr.tempSpec.Raw(), nil); err != nil {
		return err
	}
	if err := pr.planner.InverseToPadded(pr.tempSpec, pr.filtDy); err != nil {
		return err
	}

	if err := pr.planner.InverseToPadded(pr.hFiltSpec, pr.filtHeight); err != nil {
		return err
	}

	st := stats.Compute(pr.filtHeight.Raw(), pr.filtMinE.Raw())

	gainMinE := 1.0 / (2 * st.StdDevMinE)
	biasMinE := -st.MeanMinE / (2 * st.StdDevMinE)
	minInterpolant := 1 - p.TroughDamping

	if err := spectral.RunRange(pr.pool, len(pr.filtMinE.Raw()), func(lo, hi int) error {
		raw := pr.filtMinE.Raw()
		for i := lo; i < hi; i++ {
			x := raw[i]*gainMinE + biasMinE
			x = smoothstep(p.MinClipE, p.MaxClipE, x)
			raw[i] = mix(minInterpolant, 1, x)
		}
		return nil
	}); err != nil {
		return err
	}

	interpolant := pr.filtMinE.Raw()
	if err := interpolateInto(pr.pool, pr.filtHeight.Raw(), out.Height.Raw(), interpolant); err != nil {
		return err
	}
	if err := interpolateInto(pr.pool, pr.filtDx.Raw(), out.Dx.Raw(), interpolant); err != nil {
		return err
	}
	if err := interpolateInto(pr.pool, pr.filtDy.Raw(), out.Dy.Raw(), interpolant); err != nil {
		return err
	}
	return nil
}

func interpolateInto(pool *spectral.Pool, a, b, interpolant []float64) error {
	return spectral.RunRange(pool, len(b), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			b[i] = mix(a[i], b[i], interpolant[i])
		}
		return nil
	})
}

// mapSpectral runs one spectral derivative pass over the half-spectrum
// grid, writing through dst, reusing a single pool+iterate call.
func (pr *Propagator) mapSpectral(kind derivKind, src, dst []complex128, filter kernels.Filter) error {
	return spectral.Iterate(pr.pool, pr.n, pr.domain, func() spectral.Processor {
		return &derivProcessor{kind: kind, src: src, dst: dst, filter: filter}
	})
}

type derivKind int

const (
	derivDxx derivKind = iota
	derivDyy
	derivDxy
	derivDx
	derivDy
	derivHFilt
)

// derivProcessor implements every stateless per-cell spectral mapping the
// Propagator needs: the second and first spatial derivatives (scaled by
// powers of the wavenumber magnitude) and the band-limited-spectrum
// filter pass.
type derivProcessor struct {
	kind   derivKind
	src    []complex128
	dst    []complex128
	filter kernels.Filter
}

func (p *derivProcessor) DC(index int) error {
	if p.kind == derivHFilt {
		p.dst[index] = p.src[index]
	} else {
		p.dst[index] = 0
	}
	return nil
}

func (p *derivProcessor) General(ki, kj, kMag, dk float64, i, j, index int) error {
	src := p.src[index]
	switch p.kind {
	case derivDxx:
		p.dst[index] = complex(ki*ki/kMag, 0) * src
	case derivDyy:
		p.dst[index] = complex(kj*kj/kMag, 0) * src
	case derivDxy:
		p.dst[index] = complex((ki*kj)/kMag, 0) * src
	case derivDx:
		p.dst[index] = complex(0, -ki/kMag) * src
	case derivDy:
		p.dst[index] = complex(0, -kj/kMag) * src
	case derivHFilt:
		p.dst[index] = complex(p.filter.Evaluate(kMag), 0) * src
	}
	return nil
}

// hspecProcessor evolves the initial spectrum forward to time Time:
// HSpec = HSpecPos*e^{-i*omega*t} + HSpecNeg*e^{+i*omega*t}.
type hspecProcessor struct {
	pos, neg []complex128
	omega    []float64
	time     float64
	dst      []complex128
}

func (p *hspecProcessor) DC(index int) error {
	p.dst[index] = 0
	return nil
}

func (p *hspecProcessor) General(ki, kj, kMag, dk float64, i, j, index int) error {
	omega := p.omega[index]
	cosOT := math.Cos(omega * p.time)
	sinOT := math.Sin(omega * p.time)
	fwd := complex(cosOT, -sinOT)
	bkwd := complex(cosOT, sinOT)
	hs := p.pos[index]*fwd + p.neg[index]*bkwd
	if math.IsNaN(real(hs)) || math.IsInf(real(hs), 0) || math.IsNaN(imag(hs)) || math.IsInf(imag(hs), 0) {
		return &waverr.NumericalInstability{I: i, J: j, Quantity: "hspec", Value: real(hs)}
	}
	p.dst[index] = hs
	return nil
}

// computeMinE overwrites dxy in place with the crest indicator, the
// negated smaller eigenvalue of the 2x2 Jacobian built from dxx, dyy, and
// the (soon-to-be-overwritten) dxy.
func computeMinE(pool *spectral.Pool, dxx, dyy, dxy []float64, pinch float64) error {
	return spectral.RunRange(pool, len(dxy), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			jxx := 1 - pinch*dxx[i]
			jyy := 1 - pinch*dyy[i]
			jxy := -pinch * dxy[i]

			a := (jxx + jyy) / 2
			b := math.Sqrt((jxx-jyy)*(jxx-jyy)+4*jxy*jxy) / 2

			dxy[i] = -(a - b)
		}
		return nil
	})
}

func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func mix(a, b, t float64) float64 { return a + (b-a)*t }
