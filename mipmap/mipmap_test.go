package mipmap

import (
	"math"
	"testing"

	"github.com/blackencino/EncinoWaves/field"
	"github.com/blackencino/EncinoWaves/propagate"
)

func TestDownsampleConstantFieldStaysConstant(t *testing.T) {
	src, err := field.NewSpatial(16, false)
	if err != nil {
		t.Fatalf("NewSpatial src: %v", err)
	}
	for i := range src.Raw() {
		src.Raw()[i] = 7
	}
	dst, err := field.NewSpatial(8, false)
	if err != nil {
		t.Fatalf("NewSpatial dst: %v", err)
	}
	if err := Downsample(src, dst); err != nil {
		t.Fatalf("Downsample: %v", err)
	}
	for y := 0; y < dst.N(); y++ {
		for x := 0; x < dst.N(); x++ {
			if v := dst.At(x, y); math.Abs(v-7) > 1e-9 {
				t.Fatalf("At(%d,%d) = %v, want 7", x, y, v)
			}
		}
	}
}

func TestDownsampleRejectsWrongRatio(t *testing.T) {
	src, _ := field.NewSpatial(16, false)
	dst, _ := field.NewSpatial(16, false)
	if err := Downsample(src, dst); err == nil {
		t.Fatalf("expected error for mismatched ratio")
	}
}

func TestDownsampleStateCoversAllFields(t *testing.T) {
	src, err := propagate.NewPropagatedState(16)
	if err != nil {
		t.Fatalf("NewPropagatedState src: %v", err)
	}
	for _, r := range [][]float64{src.Height.Raw(), src.Dx.Raw(), src.Dy.Raw(), src.MinE.Raw()} {
		for i := range r {
			r[i] = 2
		}
	}
	dst, err := propagate.NewPropagatedState(8)
	if err != nil {
		t.Fatalf("NewPropagatedState dst: %v", err)
	}
	if err := DownsampleState(src, dst); err != nil {
		t.Fatalf("DownsampleState: %v", err)
	}
	for _, f := range []*field.Spatial{dst.Height, dst.Dx, dst.Dy, dst.MinE} {
		for y := 0; y < f.N(); y++ {
			for x := 0; x < f.N(); x++ {
				if v := f.At(x, y); math.Abs(v-2) > 1e-9 {
					t.Fatalf("field value = %v, want 2", v)
				}
			}
		}
	}
}
