package kernels

import "math"

// Filter maps a wavenumber magnitude to a gain in [0,1] applied to the
// drawn amplitude, outside the square root, so that it remains exactly
// invertible.
type Filter interface {
	Evaluate(k float64) float64
}

// NullFilter passes every wavenumber through unchanged.
type NullFilter struct{}

func (NullFilter) Evaluate(k float64) float64 { return 1 }

func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// SmoothInvertibleBandPassFilter passes wavelengths between Edge1 and
// Edge2 with smoothstep-soft shoulders out to Edge0 and Edge3, floored at
// Min, optionally inverted. The four-edge form matches the reference's
// raw-edge constructor directly (used internally by the trough-damping
// filter, whose edges are not the simple small/big +- softWidth shape).
type SmoothInvertibleBandPassFilter struct {
	Edge0, Edge1, Edge2, Edge3 float64
	Min                        float64
	Invert                     bool
}

// NewSmoothInvertibleBandPassFilter builds the filter from the
// soft-width/small/big-wavelength parameterization used by
// Parameters.filter: edges are (small-soft, small, big, big+soft).
func NewSmoothInvertibleBandPassFilter(softWidth, smallWavelength, bigWavelength, min float64, invert bool) SmoothInvertibleBandPassFilter {
	return SmoothInvertibleBandPassFilter{
		Edge0:  smallWavelength - softWidth,
		Edge1:  smallWavelength,
		Edge2:  bigWavelength,
		Edge3:  bigWavelength + softWidth,
		Min:    min,
		Invert: invert,
	}
}

func (f SmoothInvertibleBandPassFilter) Evaluate(k float64) float64 {
	if k <= 0 {
		return f.gain(0)
	}
	lambda := 2 * math.Pi / k
	return f.gain(lambda)
}

func (f SmoothInvertibleBandPassFilter) gain(lambda float64) float64 {
	t := smoothstep(f.Edge0, f.Edge1, lambda) - smoothstep(f.Edge2, f.Edge3, lambda)
	gain := clamp01(f.Min + (1-f.Min)*t)
	if f.Invert {
		return 1 - gain
	}
	return gain
}
