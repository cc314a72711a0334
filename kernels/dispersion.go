// Package kernels implements the stateless physics kernels the
// initial-state builder composes: dispersion relations, omni-directional
// spectra, directional spreading functions, wavelength filters, and
// per-cell random draws. Every kernel holds only a handful of
// precomputed scalars and is safe to share by value across goroutines.
package kernels

import "math"

// Dispersion maps a wavenumber magnitude to an angular frequency and its
// derivative with respect to k.
type Dispersion interface {
	Evaluate(k float64) (omega, dOmegaDk float64)
}

// DeepDispersion implements omega = sqrt(g*k), the infinite-depth
// gravity-wave dispersion relation.
type DeepDispersion struct {
	Gravity float64
}

func (d DeepDispersion) Evaluate(k float64) (float64, float64) {
	if k == 0 {
		return 0, 0
	}
	omega := math.Sqrt(d.Gravity * k)
	return omega, d.Gravity / (2 * omega)
}

// FiniteDepthDispersion implements omega = sqrt(g*k*tanh(k*h)).
type FiniteDepthDispersion struct {
	Gravity float64
	Depth   float64
}

func (d FiniteDepthDispersion) Evaluate(k float64) (float64, float64) {
	if k == 0 {
		return 0, 0
	}
	kh := k * d.Depth
	t := math.Tanh(kh)
	omega := math.Sqrt(d.Gravity * k * t)
	sech2 := 1 - t*t
	dOmegaDk := d.Gravity * (t + kh*sech2) / (2 * omega)
	return omega, dOmegaDk
}

// CapillaryDispersion layers surface-tension restoring force on top of
// FiniteDepth: omega = sqrt((g*k + (sigma/rho)*k^3) * tanh(k*h)).
type CapillaryDispersion struct {
	Gravity        float64
	Depth          float64
	SurfaceTension float64
	Density        float64
}

func (d CapillaryDispersion) Evaluate(k float64) (float64, float64) {
	if k == 0 {
		return 0, 0
	}
	kh := k * d.Depth
	t := math.Tanh(kh)
	sigmaOverRho := d.SurfaceTension / d.Density
	omega := math.Sqrt((d.Gravity*k + sigmaOverRho*k*k*k) * t)
	sech2 := 1 - t*t
	numerator := (d.Gravity+3*k*k*sigmaOverRho)*t + kh*(d.Gravity+k*k*sigmaOverRho)*sech2
	return omega, numerator / (2 * omega)
}
