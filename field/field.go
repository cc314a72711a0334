// Package field implements the dense 2D grid containers the engine builds
// everything else on top of: real-valued spatial fields with periodic wrap
// indexing and an optional FFT padding row/column, and Hermitian
// half-spectrum complex fields produced by a real-input 2D FFT.
package field

import (
	"math/cmplx"
	"strconv"

	"github.com/blackencino/EncinoWaves/waverr"
)

// PowerOfTwoExponentMax mirrors the reference's hard upper bound on the
// resolution power of two. Values above it must fail planning rather than
// be silently clamped.
const PowerOfTwoExponentMax = 30

// ResolutionFromPowerOfTwo returns N = 2^k, validating k is in [1,30].
func ResolutionFromPowerOfTwo(k int) (int, error) {
	if k < 1 || k > PowerOfTwoExponentMax {
		return 0, &waverr.InvalidParameters{
			Field:  "resolutionPowerOfTwo",
			Value:  strconv.Itoa(k),
			Reason: "must be in [1,30]",
		}
	}
	return 1 << uint(k), nil
}

func wrap(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}

// Spatial is a real-valued N x N logical grid, optionally carrying one
// extra column and row of padding so that an in-place FFT can write an
// (N+1) x (N+1) array without a post-pass copy. Indexing wraps
// periodically over the *logical* N x N extent; the pad cells are only
// ever written by RefreshWrapBorder.
type Spatial struct {
	data   []float64
	n      int  // logical (unpadded) side, power of two
	stride int  // row stride: n or n+1 depending on padded
	padded bool
}

// NewSpatial allocates a real field of logical side n (must be a power of
// two in [2, 2^30]). If padded, the backing array is (n+1) x (n+1).
func NewSpatial(n int, padded bool) (*Spatial, error) {
	if n < 2 || n > 1<<PowerOfTwoExponentMax || n&(n-1) != 0 {
		return nil, &waverr.InvalidShape{Width: n, Height: n, Reason: "n must be a power of two >= 2"}
	}
	stride := n
	if padded {
		stride = n + 1
	}
	rows := stride
	return &Spatial{
		data:   make([]float64, stride*rows),
		n:      n,
		stride: stride,
		padded: padded,
	}, nil
}

// N returns the logical (unpadded) side length.
func (f *Spatial) N() int { return f.n }

// Padded reports whether this field carries the extra wrap row/column.
func (f *Spatial) Padded() bool { return f.padded }

// Stride returns the backing row length (n, or n+1 when padded).
func (f *Spatial) Stride() int { return f.stride }

// At returns the element at (x mod N, y mod N); well-defined for any
// signed x, y.
func (f *Spatial) At(x, y int) float64 {
	return f.data[wrap(y, f.n)*f.stride+wrap(x, f.n)]
}

// Set writes the element at (x mod N, y mod N).
func (f *Spatial) Set(x, y int, v float64) {
	f.data[wrap(y, f.n)*f.stride+wrap(x, f.n)] = v
}

// AtPadded indexes directly into the padded (N+1)x(N+1) extent without
// wrapping, for use after RefreshWrapBorder when x or y may equal N.
func (f *Spatial) AtPadded(x, y int) float64 {
	return f.data[y*f.stride+x]
}

// SetPadded writes directly into the padded extent without wrapping.
func (f *Spatial) SetPadded(x, y int, v float64) {
	f.data[y*f.stride+x] = v
}

// Raw exposes the backing slice for bulk/parallel iteration.
func (f *Spatial) Raw() []float64 { return f.data }

// RefreshWrapBorder copies column 0 into column N and row 0 into row N
// (including the corner), establishing the periodic-boundary invariant.
// No-op if the field was not allocated padded.
func (f *Spatial) RefreshWrapBorder() {
	if !f.padded {
		return
	}
	n := f.n
	for y := 0; y < n; y++ {
		f.SetPadded(n, y, f.AtPadded(0, y))
	}
	for x := 0; x <= n; x++ {
		f.SetPadded(x, n, f.AtPadded(x, 0))
	}
}

// Spectral is a Hermitian half-spectrum of a real N x N signal: width
// N/2+1, height N. Row index j in [N/2+1, N) represents negative
// wavenumber j-N.
type Spectral struct {
	data []complex128
	n    int
	w    int // n/2 + 1
}

// NewSpectral allocates a half-spectrum field for logical side n.
func NewSpectral(n int) (*Spectral, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, &waverr.InvalidShape{Width: n, Height: n, Reason: "n must be a power of two >= 2"}
	}
	w := n/2 + 1
	return &Spectral{
		data: make([]complex128, w*n),
		n:    n,
		w:    w,
	}, nil
}

// N returns the logical side length of the represented real signal.
func (f *Spectral) N() int { return f.n }

// Width returns N/2+1, the number of stored columns per row.
func (f *Spectral) Width() int { return f.w }

// Index returns the flat index for half-spectrum coordinate (i,j), where
// i in [0,N/2], j in [0,N).
func (f *Spectral) Index(i, j int) int { return j*f.w + i }

// At returns the stored coefficient at half-spectrum coordinate (i,j).
func (f *Spectral) At(i, j int) complex128 { return f.data[f.Index(i, j)] }

// Set writes the coefficient at half-spectrum coordinate (i,j).
func (f *Spectral) Set(i, j int, v complex128) { f.data[f.Index(i, j)] = v }

// Raw exposes the backing slice for bulk/parallel iteration and for
// handing to an FFT executor.
func (f *Spectral) Raw() []complex128 { return f.data }

// Zero clears every coefficient to 0+0i.
func (f *Spectral) Zero() {
	for i := range f.data {
		f.data[i] = 0
	}
}

// MaxAbsImag returns the largest |Im| across all cells (used by tests
// verifying Hermitian symmetry of an intended-real transform).
func MaxAbsImag(data []complex128) float64 {
	m := 0.0
	for _, c := range data {
		if a := cmplx.Abs(complex(0, imag(c))); a > m {
			m = a
		}
	}
	return m
}

// RealSpectral is a real-valued half-spectrum field over the same
// (N/2+1) x N grid as Spectral, used for quantities like Omega that are
// carried alongside a complex half-spectrum but never transformed.
type RealSpectral struct {
	data []float64
	n    int
	w    int
}

// NewRealSpectral allocates a real half-spectrum field for logical side n.
func NewRealSpectral(n int) (*RealSpectral, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, &waverr.InvalidShape{Width: n, Height: n, Reason: "n must be a power of two >= 2"}
	}
	w := n/2 + 1
	return &RealSpectral{data: make([]float64, w*n), n: n, w: w}, nil
}

func (f *RealSpectral) N() int     { return f.n }
func (f *RealSpectral) Width() int { return f.w }

func (f *RealSpectral) Index(i, j int) int { return j*f.w + i }

func (f *RealSpectral) At(i, j int) float64 { return f.data[f.Index(i, j)] }

func (f *RealSpectral) Set(i, j int, v float64) { f.data[f.Index(i, j)] = v }

func (f *RealSpectral) Raw() []float64 { return f.data }
