// Package normals computes per-vertex surface normals of the displaced
// ocean mesh by central differences on the Propagator's output fields.
package normals

import (
	"math"

	"github.com/blackencino/EncinoWaves/params"
	"github.com/blackencino/EncinoWaves/propagate"
	"github.com/blackencino/EncinoWaves/spectral"
	"github.com/blackencino/EncinoWaves/waverr"
)

// Vec3 is a plain 3-vector, deliberately independent of any graphics
// library so this package has no rendering dependency.
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Normalized() Vec3 {
	length := math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
	if length == 0 {
		return Vec3{0, 0, 1}
	}
	return Vec3{a.X / length, a.Y / length, a.Z / length}
}

const grainSize = 512

func wrap(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}

// Compute fills a (N+1)x(N+1) normal per vertex of the displaced grid
// described by ps, built from params.Domain/Pinch/AmplitudeGain. Vertex
// (x,y) is at flat index y*(N+1)+x.
func Compute(p params.Parameters, ps *propagate.PropagatedState, pool *spectral.Pool) ([]Vec3, error) {
	n := p.Resolution()
	if ps.Height.N() != n {
		return nil, &waverr.InvalidShape{Width: ps.Height.N(), Height: n, Reason: "propagated state resolution mismatch"}
	}

	spacing := p.Domain / float64(n)
	ampGain := p.AmplitudeGain
	pinch := p.Pinch

	h, dx, dy := ps.Height.Raw(), ps.Dx.Raw(), ps.Dy.Raw()
	stride := n + 1
	out := make([]Vec3, stride*stride)

	pointAt := func(xMult, yMult float64, xi, yi int) Vec3 {
		idx := yi*stride + xi
		return Vec3{
			X: xMult*spacing - pinch*dx[idx],
			Y: yMult*spacing - pinch*dy[idx],
			Z: ampGain * h[idx],
		}
	}

	var tasks []spectral.Task
	id := 0
	for y := 0; y <= n; y++ {
		downY := wrap(y-1, n)
		cenY := wrap(y, n)
		upY := wrap(y+1, n)
		for colStart := 0; colStart <= n; colStart += grainSize {
			colEnd := colStart + grainSize
			if colEnd > n+1 {
				colEnd = n + 1
			}
			y, downY, cenY, upY, colStart, colEnd := y, downY, cenY, upY, colStart, colEnd
			tasks = append(tasks, spectral.Task{
				ID: id,
				Execute: func() error {
					for x := colStart; x < colEnd; x++ {
						leftX := wrap(x-1, n)
						cenX := wrap(x, n)
						rightX := wrap(x+1, n)

						downPoint := pointAt(0, -1, cenX, downY)
						leftPoint := pointAt(-1, 0, leftX, cenY)
						rightPoint := pointAt(1, 0, rightX, cenY)
						upPoint := pointAt(0, 1, cenX, upY)

						dPdU := rightPoint.Sub(leftPoint)
						dPdV := upPoint.Sub(downPoint)
						out[y*stride+x] = dPdU.Cross(dPdV).Normalized()
					}
					return nil
				},
			})
			id++
		}
	}
	if err := pool.Run(tasks); err != nil {
		return nil, err
	}
	return out, nil
}
