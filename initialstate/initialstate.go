// Package initialstate builds the one-shot spectral synthesis that seeds
// a simulation: two complex half-spectrum amplitude fields (positive and
// negative travelling waves) and a real angular-frequency half-spectrum
// field, composed from the dispersion, spectrum, directional-spreading,
// filter, and random kernels selected by Parameters.
package initialstate

import (
	"math"

	"github.com/blackencino/EncinoWaves/field"
	"github.com/blackencino/EncinoWaves/kernels"
	"github.com/blackencino/EncinoWaves/params"
	"github.com/blackencino/EncinoWaves/spectral"
	"github.com/blackencino/EncinoWaves/waverr"
)

// InitialState holds the spectral seed of a simulation at t=0.
type InitialState struct {
	HSpectralPos *field.Spectral
	HSpectralNeg *field.Spectral
	Omega        *field.RealSpectral
}

// Resolution returns the logical side N the state was built at.
func (s *InitialState) Resolution() int { return s.HSpectralPos.N() }

// Build resolves the five enum-tagged kernels named by p (mirroring the
// reference's compile-time cascading template selection with a runtime
// switch, done once here rather than inside the per-cell callback) and
// runs the spectral iterator over pool to fill a fresh InitialState.
func Build(p params.Parameters, pool *spectral.Pool) (*InitialState, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.Resolution()
	pos, err := field.NewSpectral(n)
	if err != nil {
		return nil, err
	}
	neg, err := field.NewSpectral(n)
	if err != nil {
		return nil, err
	}
	omega, err := field.NewRealSpectral(n)
	if err != nil {
		return nil, err
	}

	dispersion := buildDispersion(p)
	spectrum := buildSpectrum(p)
	spreading := buildSpreading(p)
	filter := buildFilter(p)

	factory := func() spectral.Processor {
		return &cellProcessor{
			dispersion: dispersion,
			spectrum:   spectrum,
			spreading:  spreading,
			filter:     filter,
			random:     buildRandom(p),
			seed:       p.Random.Seed,
			posRaw:     pos.Raw(),
			negRaw:     neg.Raw(),
			omegaRaw:   omega.Raw(),
		}
	}

	if err := spectral.Iterate(pool, n, p.Domain, factory); err != nil {
		return nil, err
	}

	return &InitialState{HSpectralPos: pos, HSpectralNeg: neg, Omega: omega}, nil
}

func buildDispersion(p params.Parameters) kernels.Dispersion {
	switch p.Dispersion {
	case params.Deep:
		return kernels.DeepDispersion{Gravity: p.Gravity}
	case params.FiniteDepth:
		return kernels.FiniteDepthDispersion{Gravity: p.Gravity, Depth: p.Depth}
	default:
		return kernels.CapillaryDispersion{
			Gravity:        p.Gravity,
			Depth:          p.Depth,
			SurfaceTension: p.SurfaceTension,
			Density:        p.Density,
		}
	}
}

func buildSpectrum(p params.Parameters) kernels.Spectrum {
	switch p.Spectrum {
	case params.PiersonMoskowitz:
		return kernels.PiersonMoskowitzSpectrum{Gravity: p.Gravity, WindSpeed: p.WindSpeed}
	case params.JONSWAP:
		return kernels.NewJONSWAPSpectrum(p.Gravity, p.WindSpeed, p.Fetch, p.Random.Seed)
	default:
		return kernels.NewTMASpectrum(p.Gravity, p.WindSpeed, p.Fetch, p.Depth, p.Random.Seed)
	}
}

func buildSpreading(p params.Parameters) kernels.DirectionalSpreading {
	swell := p.DirectionalSpreading.Swell
	switch p.DirectionalSpreading.Type {
	case params.PosCosSquared:
		return kernels.PosCosSquaredDirectionalSpreading{Gravity: p.Gravity, WindSpeed: p.WindSpeed, FetchKM: p.Fetch, Swell: swell}
	case params.Mitsuyasu:
		return kernels.MitsuyasuDirectionalSpreading{Gravity: p.Gravity, WindSpeed: p.WindSpeed, FetchKM: p.Fetch, Swell: swell}
	case params.DonelanBanner:
		return kernels.DonelanBannerDirectionalSpreading{Gravity: p.Gravity, WindSpeed: p.WindSpeed, FetchKM: p.Fetch, Swell: swell}
	default:
		return kernels.HasselmannDirectionalSpreading{Gravity: p.Gravity, WindSpeed: p.WindSpeed, FetchKM: p.Fetch, Swell: swell}
	}
}

func buildFilter(p params.Parameters) kernels.Filter {
	switch p.Filter.Type {
	case params.SmoothInvertibleBandPass:
		return kernels.NewSmoothInvertibleBandPassFilter(
			p.Filter.SoftWidth, p.Filter.SmallWavelength, p.Filter.BigWavelength, p.Filter.Min, p.Filter.Invert)
	default:
		return kernels.NullFilter{}
	}
}

func buildRandom(p params.Parameters) kernels.Random {
	switch p.Random.Type {
	case params.LogNormal:
		return &kernels.LogNormalRandom{}
	default:
		return &kernels.NormalRandom{}
	}
}

// cellProcessor implements spectral.Processor, writing directly into the
// raw backing slices of the three output fields at the flat index the
// iterator hands it.
type cellProcessor struct {
	dispersion kernels.Dispersion
	spectrum   kernels.Spectrum
	spreading  kernels.DirectionalSpreading
	filter     kernels.Filter
	random     kernels.Random
	seed       int

	posRaw   []complex128
	negRaw   []complex128
	omegaRaw []float64
}

func (c *cellProcessor) DC(index int) error {
	c.posRaw[index] = 0
	c.negRaw[index] = 0
	c.omegaRaw[index] = 0
	return nil
}

func (c *cellProcessor) General(ki, kj, kMag, dk float64, i, j, index int) error {
	c.random.Seed(ki, kj, c.seed)

	thetaPos := math.Atan2(-kj, ki)
	thetaNeg := math.Atan2(kj, -ki)
	if !finite(thetaPos) || !finite(thetaNeg) {
		return &waverr.NumericalInstability{I: i, J: j, Quantity: "theta", Value: thetaPos}
	}

	omega, dOmegaDk := c.dispersion.Evaluate(kMag)
	if !finite(omega) || !finite(dOmegaDk) {
		return &waverr.NumericalInstability{I: i, J: j, Quantity: "omega", Value: omega}
	}

	dTheta := math.Abs(math.Atan2(dk, kMag))

	s := c.spectrum.Evaluate(omega)
	sPos := s * c.spreading.Evaluate(omega, thetaPos, kMag, dTheta)
	sNeg := s * c.spreading.Evaluate(omega, thetaNeg, kMag, dTheta)
	if !finite(sPos) || !finite(sNeg) {
		return &waverr.NumericalInstability{I: i, J: j, Quantity: "spectrum", Value: sPos}
	}

	changeOfVars := (dk * dk * dOmegaDk) / kMag
	sPos *= changeOfVars
	sNeg *= changeOfVars

	ampPos := c.random.Amp() * math.Sqrt(math.Abs(sPos*2))
	ampNeg := c.random.Amp() * math.Sqrt(math.Abs(sNeg*2))
	if !finite(ampPos) || !finite(ampNeg) {
		return &waverr.NumericalInstability{I: i, J: j, Quantity: "amplitude", Value: ampPos}
	}

	filt := c.filter.Evaluate(kMag)
	ampPos *= filt
	ampNeg *= filt
	if !finite(ampPos) || !finite(ampNeg) {
		return &waverr.NumericalInstability{I: i, J: j, Quantity: "filtered amplitude", Value: ampPos}
	}

	phasePos := c.random.Phase()
	phaseNeg := c.random.Phase()

	c.posRaw[index] = complex(ampPos*math.Cos(phasePos), -ampPos*math.Sin(phasePos))
	c.negRaw[index] = complex(ampNeg*math.Cos(phaseNeg), -ampNeg*math.Sin(phaseNeg))
	c.omegaRaw[index] = omega
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
