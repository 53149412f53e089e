package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeL2UnitLength(t *testing.T) {
	v := NormalizeL2([]float32{3, 4})

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-6)
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)
}

func TestNormalizeL2ZeroVectorUnchanged(t *testing.T) {
	v := []float32{0, 0, 0}
	assert.Equal(t, v, NormalizeL2(v))
}

func TestDot(t *testing.T) {
	assert.InDelta(t, 1.0, Dot([]float32{1, 0}, []float32{1, 0}), 1e-6)
	assert.InDelta(t, 0.0, Dot([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, Dot([]float32{1, 0}, []float32{-1, 0}), 1e-6)
}

func TestDotTruncatesToShorterVector(t *testing.T) {
	assert.InDelta(t, 2.0, Dot([]float32{1, 1, 1}, []float32{1, 1}), 1e-6)
}
