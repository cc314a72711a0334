package spectral

import "math"

// Processor receives callbacks for every cell of a half-spectrum tile.
// A fresh Processor must be constructed for each tile (see Factory) so
// that per-cell RNG state never crosses a goroutine boundary.
type Processor interface {
	// DC is called for the single (i=0, jReal=0) cell, and must leave
	// that cell's outputs at zero.
	DC(index int) error
	// General is called for every other cell, with the wavenumber
	// components, its magnitude, the grid spacing dk, the cell's (i,j)
	// half-spectrum coordinate, and the flat index into the
	// half-spectrum field's backing slice.
	General(ki, kj, kMag, dk float64, i, j, index int) error
}

// Factory constructs one fresh Processor per tile.
type Factory func() Processor

// grainSize caps the number of columns handled by a single tile, the
// engine's tiling default of 512 columns by 1 row.
const grainSize = 512

// Iterate walks the half-spectrum grid of logical side n (width n/2+1,
// height n) over the given domain size, dispatching column-chunked,
// single-row tiles to pool. Each tile gets its own Processor from
// factory. Blocks until every tile completes.
func Iterate(pool *Pool, n int, domain float64, factory Factory) error {
	w := n/2 + 1
	dk := 2 * math.Pi / domain

	var tasks []Task
	id := 0
	for j := 0; j < n; j++ {
		jReal := j
		if jReal > n/2 {
			jReal = j - n
		}
		kj := float64(jReal) * dk
		for iStart := 0; iStart < w; iStart += grainSize {
			iEnd := iStart + grainSize
			if iEnd > w {
				iEnd = w
			}
			j, iStart, iEnd := j, iStart, iEnd
			tasks = append(tasks, Task{
				ID: id,
				Execute: func() error {
					proc := factory()
					for i := iStart; i < iEnd; i++ {
						ki := float64(i) * dk
						index := j*w + i
						if i == 0 && jReal == 0 {
							if err := proc.DC(index); err != nil {
								return err
							}
							continue
						}
						kMag := math.Hypot(ki, kj)
						if err := proc.General(ki, kj, kMag, dk, i, j, index); err != nil {
							return err
						}
					}
					return nil
				},
			})
			id++
		}
	}
	return pool.Run(tasks)
}
