package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor_Float64(t *testing.T) {
	ops := For[float64]()
	a := []float64{0, 0.25, 0.5, 0.75, 1}
	dst := make([]float64, len(a))

	ops.Scale(dst, a, -120)
	assert.InDeltaSlice(t, []float64{0, -30, -60, -90, -120}, dst, 1e-12)
	assert.InDelta(t, 2.5, ops.Sum(a), 1e-12)
	assert.InDelta(t, 1.875, ops.DotProduct(a, a), 1e-12)
}

func TestFor_Float32(t *testing.T) {
	ops := For[float32]()
	a := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	dst := make([]float32, len(a))

	ops.Scale(dst, a, 0.5)
	assert.InDelta(t, float32(4.5), dst[8], 1e-6)
	assert.InDelta(t, float32(45), ops.Sum(a), 1e-4)
	assert.InDelta(t, float32(285), ops.DotProduct(a, a), 1e-3)
}

func BenchmarkScale(b *testing.B) {
	ops := For[float64]()
	a := make([]float64, 128)
	dst := make([]float64, 128)
	for i := range a {
		a[i] = float64(i) / 128
	}

	b.ReportAllocs()
	for b.Loop() {
		ops.Scale(dst, a, 1234.5)
	}
}
