package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Transpose
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		mNr, mNc := M.Dims()
		A := M.Transpose()
		aNr, aNc := A.Dims()
		assert.Equal(t, aNc, mNr)
		assert.Equal(t, aNr, mNc)
		assert.Equal(t, A.DataP, []float64{1, 4, 2, 5, 3, 6})
	}
	// Mul and MulVec
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		A := M.Mul(M.Transpose())
		assert.Equal(t, A.DataP, []float64{14, 32, 32, 77})
		v := M.MulVec(NewVector(3, []float64{1, 1, 1}))
		assert.Equal(t, v.DataP, []float64{6, 15})
	}
	// Kron
	{
		A := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		B := NewMatrix(2, 2, []float64{
			0, 1,
			1, 0,
		})
		K := A.Kron(B)
		//fmt.Printf("K = \n%v\n", mat.Formatted(K, mat.Squeeze()))
		assert.Equal(t, K.DataP, []float64{
			0, 1, 0, 2,
			1, 0, 2, 0,
			0, 3, 0, 4,
			3, 0, 4, 0,
		})
	}
	// Inverse
	{
		M := NewMatrix(2, 2, []float64{
			4, 7,
			2, 6,
		})
		MInv, err := M.Inverse()
		assert.Nil(t, err)
		P := M.Mul(MInv)
		assert.True(t, near(P.At(0, 0), 1))
		assert.True(t, near(P.At(1, 1), 1))
		assert.True(t, math.Abs(P.At(0, 1)) < 1.e-14)
		assert.True(t, math.Abs(P.At(1, 0)) < 1.e-14)
	}
	// LUSolve
	{
		M := NewMatrix(2, 2, []float64{
			3, 1,
			1, 2,
		})
		x := M.LUSolve(NewVector(2, []float64{9, 8}))
		assert.True(t, near(x.AtVec(0), 2))
		assert.True(t, near(x.AtVec(1), 3))
	}
	// Col, Row and Norm
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.Equal(t, M.Col(1).DataP, []float64{2, 5})
		assert.Equal(t, M.Row(0).DataP, []float64{1, 2, 3})
		assert.Equal(t, M.Col(-1).DataP, []float64{3, 6})
		assert.True(t, near(M.Norm(2), math.Sqrt(91)))
	}
	// ReadOnly guard
	{
		M := NewMatrix(2, 2)
		M.SetReadOnly("M")
		assert.Panics(t, func() { M.Set(0, 0, 1) })
		M.SetWritable()
		M.Set(0, 0, 1)
		assert.Equal(t, M.At(0, 0), 1.)
	}
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
