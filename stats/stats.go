// Package stats computes the summary statistics the Propagator's crest
// interpolant depends on: min/max/mean of the band-limited height field
// and the population mean/stddev of the band-limited crest indicator.
package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes one frame's filtered height and crest-indicator fields.
type Stats struct {
	MinHeight  float64
	MaxHeight  float64
	MeanHeight float64

	MeanMinE   float64
	StdDevMinE float64
}

// Compute reduces height and minE (same-length raw field backing slices)
// into Stats. minE's stddev is the population (divide-by-N) statistic,
// matching the reference's ParallelStdDev.
func Compute(height, minE []float64) Stats {
	meanMinE, stdDevMinE := stat.PopMeanStdDev(minE, nil)
	return Stats{
		MinHeight:  floats.Min(height),
		MaxHeight:  floats.Max(height),
		MeanHeight: stat.Mean(height, nil),
		MeanMinE:   meanMinE,
		StdDevMinE: stdDevMinE,
	}
}
