package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V     *mat.VecDense
	DataP []float64
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	var v *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v\n", n, len(dataO[0]))
			panic(err)
		}
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	R = Vector{
		V:     v,
		DataP: v.RawVector().Data,
	}
	return
}

func NewVectorConstant(n int, val float64) (R Vector) {
	return NewVector(n, ConstArray(n, val))
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }

func (v Vector) Copy() (R Vector) { // Does not change receiver
	var (
		data = make([]float64, v.Len())
	)
	copy(data, v.DataP)
	R = NewVector(v.Len(), data)
	return
}

func (v Vector) Subset(i1, i2 int) (R Vector) { // Does not change receiver
	// Inclusive range, with support for indexing from the end, -1 == last
	var (
		n = v.Len()
	)
	i1, i2 = lim(i1, n), lim(i2, n)
	data := make([]float64, i2-i1+1)
	copy(data, v.DataP[i1:i2+1])
	R = NewVector(len(data), data)
	return
}

func (v Vector) Concat(a Vector) (R Vector) { // Does not change receiver
	var (
		n    = v.Len() + a.Len()
		data = make([]float64, n)
	)
	copy(data, v.DataP)
	copy(data[v.Len():], a.DataP)
	R = NewVector(n, data)
	return
}

// Chainable (extended) methods
func (v Vector) Add(a Vector) Vector {
	var (
		data  = v.DataP
		dataA = a.DataP
	)
	for i := range data {
		data[i] += dataA[i]
	}
	return v
}

func (v Vector) Subtract(a Vector) Vector {
	var (
		data  = v.DataP
		dataA = a.DataP
	)
	for i := range data {
		data[i] -= dataA[i]
	}
	return v
}

func (v Vector) AddScalar(a float64) Vector {
	var (
		data = v.DataP
	)
	for i := range data {
		data[i] += a
	}
	return v
}

func (v Vector) Scale(a float64) Vector {
	var (
		data = v.DataP
	)
	for i := range data {
		data[i] *= a
	}
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector {
	var (
		data = v.DataP
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

func (v Vector) POW(p int) Vector {
	var (
		data = v.DataP
	)
	for i, val := range data {
		data[i] = POW(val, p)
	}
	return v
}

// Non chainable methods
func (v Vector) Dot(a Vector) float64 {
	return mat.Dot(v.V, a.V)
}

func (v Vector) Min() (min float64) {
	var (
		data = v.DataP
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	var (
		data = v.DataP
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}
