package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparse(t *testing.T) {
	// DOK accumulate and conversion
	{
		D := NewDOK(2, 3)
		D.Set(0, 0, 1)
		D.Accumulate(0, 0, 2)
		D.Set(1, 2, 5)
		assert.Equal(t, D.At(0, 0), 3.)
		C := D.ToCSR()
		assert.Equal(t, C.At(0, 0), 3.)
		assert.Equal(t, C.At(1, 2), 5.)
		assert.Equal(t, C.At(1, 1), 0.)
	}
	// MulVec and MulVecT
	{
		D := NewDOK(2, 3)
		D.Set(0, 0, 1)
		D.Set(0, 2, 2)
		D.Set(1, 1, 3)
		C := D.ToCSR()
		y := C.MulVec(NewVector(3, []float64{1, 2, 3}))
		assert.Equal(t, y.DataP, []float64{7, 6})
		z := C.MulVecT(NewVector(2, []float64{1, 1}))
		assert.Equal(t, z.DataP, []float64{1, 3, 2})
		assert.Panics(t, func() { C.MulVec(NewVector(2, []float64{1, 1})) })
	}
	// MulDense
	{
		D := NewDOK(2, 2)
		D.Set(0, 1, 1)
		D.Set(1, 0, 2)
		C := D.ToCSR()
		A := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		R := C.MulDense(A)
		assert.Equal(t, R.DataP, []float64{3, 4, 2, 4})
	}
	// ReadOnly guard
	{
		D := NewDOK(1, 1)
		D.Set(0, 0, 1)
		D.SetReadOnly("D")
		assert.Panics(t, func() { D.Set(0, 0, 2) })
		C := D.ToCSR()
		nr, nc := C.Dims()
		assert.Equal(t, nr, 1)
		assert.Equal(t, nc, 1)
	}
}
