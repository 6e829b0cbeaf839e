package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNan(t *testing.T) {
	// Scalars, slices and the wrapper types
	{
		assert.False(t, IsNan(1.))
		assert.True(t, IsNan(math.NaN()))
		assert.True(t, IsNan([]float64{0, math.NaN()}))
		assert.False(t, IsNan(NewVector(2, []float64{1, 2})))
		M := NewMatrix(1, 2, []float64{1, 2})
		assert.False(t, IsNan(M))
		M.Set(0, 1, math.NaN())
		assert.True(t, IsNan(M))
	}
	// The panic form guards freshly built operators
	{
		IsNanPanic(NewMatrix(2, 2))
		assert.Panics(t, func() { IsNanPanic(math.NaN()) })
		assert.Panics(t, func() { IsNanPanic([]float64{math.NaN()}) })
	}
}
