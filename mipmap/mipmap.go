// Package mipmap builds reduced-resolution copies of a propagated wave
// state, for level-of-detail rendering of distant patches of ocean.
package mipmap

import (
	"github.com/blackencino/EncinoWaves/field"
	"github.com/blackencino/EncinoWaves/propagate"
	"github.com/blackencino/EncinoWaves/waverr"
)

// The 4x4 separable anisotropic box-like kernel weights. edge4x4 and
// corner4x4 weight the two outer taps of a row depending on whether that
// row itself is an outer or inner tap of the vertical pass.
const (
	center4x4 = 0.185622
	edge4x4   = 0.029797
	corner4x4 = 0.004783
)

// kernelSum is the total weight of the 4x4 kernel. The rounded weights
// above sum to slightly less than 1, so Downsample divides by it to keep a
// constant field constant.
const kernelSum = 4*corner4x4 + 8*edge4x4 + 4*center4x4

func edgeKernel(a, b, c, d float64) float64 {
	return (a+d)*corner4x4 + (b+c)*edge4x4
}

func centerKernel(a, b, c, d float64) float64 {
	return (a+d)*edge4x4 + (b+c)*center4x4
}

// Downsample fills dst, a field at half the resolution of src, by applying
// the 4x4 kernel at each destination cell. src.N() must equal 2*dst.N().
func Downsample(src, dst *field.Spatial) error {
	srcN := src.N()
	dstN := dst.N()
	if srcN != dstN*2 {
		return &waverr.InvalidShape{Width: srcN, Height: dstN, Reason: "mip source must be twice destination resolution"}
	}

	for j := 0; j < dstN; j++ {
		srcJ := 2 * j
		for i := 0; i < dstN; i++ {
			srcI := 2 * i
			v := edgeKernel(
				src.At(srcI-1, srcJ-1), src.At(srcI, srcJ-1),
				src.At(srcI+1, srcJ-1), src.At(srcI+2, srcJ-1))
			v += centerKernel(
				src.At(srcI-1, srcJ), src.At(srcI, srcJ),
				src.At(srcI+1, srcJ), src.At(srcI+2, srcJ))
			v += centerKernel(
				src.At(srcI-1, srcJ+1), src.At(srcI, srcJ+1),
				src.At(srcI+1, srcJ+1), src.At(srcI+2, srcJ+1))
			v += edgeKernel(
				src.At(srcI-1, srcJ+2), src.At(srcI, srcJ+2),
				src.At(srcI+1, srcJ+2), src.At(srcI+2, srcJ+2))
			dst.Set(i, j, v/kernelSum)
		}
	}
	dst.RefreshWrapBorder()
	return nil
}

// DownsampleState fills dst with a half-resolution copy of every field in
// src.
func DownsampleState(src, dst *propagate.PropagatedState) error {
	if err := Downsample(src.Height, dst.Height); err != nil {
		return err
	}
	if err := Downsample(src.Dx, dst.Dx); err != nil {
		return err
	}
	if err := Downsample(src.Dy, dst.Dy); err != nil {
		return err
	}
	return Downsample(src.MinE, dst.MinE)
}
