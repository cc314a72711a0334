// Package params defines the immutable Parameters record that configures
// one simulation: resolution, physical constants, wind/fetch, and the
// enum-tagged choice of dispersion relation, spectrum, directional
// spreading, wavelength filter, and random draw kind.
package params

import (
	"math"
	"strconv"

	"github.com/blackencino/EncinoWaves/waverr"
)

// DispersionType selects the dispersion relation kernel.
type DispersionType int

const (
	Deep DispersionType = iota
	FiniteDepth
	Capillary
)

func (t DispersionType) String() string {
	switch t {
	case Deep:
		return "Deep"
	case FiniteDepth:
		return "FiniteDepth"
	case Capillary:
		return "Capillary"
	default:
		return "Unknown"
	}
}

// SpectrumType selects the omni-directional energy spectrum kernel.
type SpectrumType int

const (
	PiersonMoskowitz SpectrumType = iota
	JONSWAP
	TMA
)

func (t SpectrumType) String() string {
	switch t {
	case PiersonMoskowitz:
		return "PiersonMoskowitz"
	case JONSWAP:
		return "JONSWAP"
	case TMA:
		return "TMA"
	default:
		return "Unknown"
	}
}

// DirectionalSpreadingType selects the directional spreading kernel.
type DirectionalSpreadingType int

const (
	PosCosSquared DirectionalSpreadingType = iota
	Mitsuyasu
	Hasselmann
	DonelanBanner
)

func (t DirectionalSpreadingType) String() string {
	switch t {
	case PosCosSquared:
		return "PosCosSquared"
	case Mitsuyasu:
		return "Mitsuyasu"
	case Hasselmann:
		return "Hasselmann"
	case DonelanBanner:
		return "DonelanBanner"
	default:
		return "Unknown"
	}
}

// FilterType selects the wavelength band-pass kernel.
type FilterType int

const (
	NullFilter FilterType = iota
	SmoothInvertibleBandPass
)

func (t FilterType) String() string {
	switch t {
	case NullFilter:
		return "NullFilter"
	case SmoothInvertibleBandPass:
		return "SmoothInvertibleBandPass"
	default:
		return "Unknown"
	}
}

// RandomType selects the per-cell amplitude draw distribution.
type RandomType int

const (
	Normal RandomType = iota
	LogNormal
)

func (t RandomType) String() string {
	switch t {
	case Normal:
		return "Normal"
	case LogNormal:
		return "LogNormal"
	default:
		return "Unknown"
	}
}

// FilterConfig selects the wavelength filter and configures the
// SmoothInvertibleBandPass kernel; the tuning fields are ignored when
// Type is NullFilter.
type FilterConfig struct {
	Type            FilterType
	SoftWidth       float64
	SmallWavelength float64
	BigWavelength   float64
	Min             float64 // in [0,1]
	Invert          bool
}

// DirectionalSpreadingConfig configures swell blending, shared by all
// four spreading kernels.
type DirectionalSpreadingConfig struct {
	Type  DirectionalSpreadingType
	Swell float64 // in [-1,2]
}

// RandomConfig configures the per-cell random draw.
type RandomConfig struct {
	Type RandomType
	Seed int
}

// Parameters is the immutable configuration record for one simulation.
// Zero value is invalid; use Default() or a named constructor.
type Parameters struct {
	ResolutionPowerOfTwo int
	Domain               float64 // meters
	Gravity              float64 // m/s^2
	SurfaceTension       float64 // N/m
	Density              float64 // kg/m^3
	Depth                float64 // meters
	WindSpeed            float64 // m/s
	Fetch                float64 // km

	Pinch         float64
	AmplitudeGain float64

	TroughDamping                float64 // in [0,1]
	TroughDampingSmallWavelength float64
	TroughDampingBigWavelength   float64
	TroughDampingSoftWidth       float64

	// MinClipE/MaxClipE resolve spec's minClipE open question: the core
	// preserves 0.0 as the default rather than the shader path's 0.5,
	// exposed here as a tunable instead of hard-coded.
	MinClipE float64
	MaxClipE float64

	Dispersion           DispersionType
	Spectrum             SpectrumType
	DirectionalSpreading DirectionalSpreadingConfig
	Filter               FilterConfig
	Random               RandomConfig
}

// Default returns the reference defaults from EncinoWaves/Parameters.h.
func Default() Parameters {
	return Parameters{
		ResolutionPowerOfTwo: 9, // N=512
		Domain:               100.0,
		Gravity:              9.81,
		SurfaceTension:       0.074,
		Density:              1000.0,
		Depth:                100.0,
		WindSpeed:            17.0,
		Fetch:                300.0,
		Pinch:                0.75,
		AmplitudeGain:        1.0,

		TroughDamping:                0.0,
		TroughDampingSmallWavelength: 1.0,
		TroughDampingBigWavelength:   4.0,
		TroughDampingSoftWidth:       2.0,

		MinClipE: 0.0,
		MaxClipE: 1.1,

		Dispersion: Capillary,
		Spectrum:   TMA,
		DirectionalSpreading: DirectionalSpreadingConfig{
			Type:  Hasselmann,
			Swell: 0.0,
		},
		Filter: FilterConfig{
			Type:            NullFilter,
			SoftWidth:       0.0,
			SmallWavelength: 0.0,
			BigWavelength:   1_000_000.0,
			Min:             0.0,
			Invert:          false,
		},
		Random: RandomConfig{
			Type: Normal,
			Seed: 54321,
		},
	}
}

// Resolution returns N = 2^resolutionPowerOfTwo.
func (p Parameters) Resolution() int {
	return 1 << uint(p.ResolutionPowerOfTwo)
}

// Validate checks the finite-but-out-of-range conditions Validate is
// responsible for per spec §4.2/§7. Numerical kernels otherwise treat
// inputs as finite floats; this is the caller-invoked gate.
func (p Parameters) Validate() error {
	if p.ResolutionPowerOfTwo < 1 || p.ResolutionPowerOfTwo > 30 {
		return &waverr.InvalidParameters{Field: "ResolutionPowerOfTwo", Value: itoa(p.ResolutionPowerOfTwo), Reason: "must be in [1,30]"}
	}
	if !finite(p.Domain) || p.Domain <= 0 {
		return &waverr.InvalidParameters{Field: "Domain", Value: ftoa(p.Domain), Reason: "must be finite and positive"}
	}
	if !finite(p.Gravity) || p.Gravity <= 0 {
		return &waverr.InvalidParameters{Field: "Gravity", Value: ftoa(p.Gravity), Reason: "must be finite and positive"}
	}
	if !finite(p.WindSpeed) || p.WindSpeed < 0 {
		return &waverr.InvalidParameters{Field: "WindSpeed", Value: ftoa(p.WindSpeed), Reason: "must be finite and non-negative"}
	}
	if !finite(p.Depth) || p.Depth <= 0 {
		return &waverr.InvalidParameters{Field: "Depth", Value: ftoa(p.Depth), Reason: "must be finite and positive"}
	}
	if !finite(p.Fetch) || p.Fetch <= 0 {
		return &waverr.InvalidParameters{Field: "Fetch", Value: ftoa(p.Fetch), Reason: "must be finite and positive"}
	}
	if p.TroughDamping < 0 || p.TroughDamping > 1 {
		return &waverr.InvalidParameters{Field: "TroughDamping", Value: ftoa(p.TroughDamping), Reason: "must be in [0,1]"}
	}
	if p.DirectionalSpreading.Swell < -1 || p.DirectionalSpreading.Swell > 2 {
		return &waverr.InvalidParameters{Field: "DirectionalSpreading.Swell", Value: ftoa(p.DirectionalSpreading.Swell), Reason: "must be in [-1,2]"}
	}
	if p.Filter.Min < 0 || p.Filter.Min > 1 {
		return &waverr.InvalidParameters{Field: "Filter.Min", Value: ftoa(p.Filter.Min), Reason: "must be in [0,1]"}
	}
	for _, v := range []float64{p.SurfaceTension, p.Density, p.Pinch, p.AmplitudeGain, p.MinClipE, p.MaxClipE} {
		if !finite(v) {
			return &waverr.InvalidParameters{Field: "Parameters", Value: ftoa(v), Reason: "all numeric fields must be finite"}
		}
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func itoa(k int) string { return strconv.Itoa(k) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
