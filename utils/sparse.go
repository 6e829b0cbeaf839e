package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m DOK) Accumulate(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
	return m
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }

func (m *CSR) SetReadOnly(name ...string) CSR {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

// DoNonZero visits each stored element in row-major order.
func (m CSR) DoNonZero(fn func(i, j int, val float64)) {
	m.M.DoNonZero(fn)
}

func (m CSR) MulVec(x Vector) (R Vector) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		dataX  = x.DataP
	)
	if x.Len() != nc {
		err := fmt.Errorf("dimension mismatch in MulVec of \"%v\": nc = %v, len(x) = %v", m.name, nc, x.Len())
		panic(err)
	}
	R = NewVector(nr)
	dataR := R.DataP
	m.M.DoNonZero(func(i, j int, val float64) {
		dataR[i] += val * dataX[j]
	})
	return
}

func (m CSR) MulVecT(x Vector) (R Vector) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		dataX  = x.DataP
	)
	if x.Len() != nr {
		err := fmt.Errorf("dimension mismatch in MulVecT of \"%v\": nr = %v, len(x) = %v", m.name, nr, x.Len())
		panic(err)
	}
	R = NewVector(nc)
	dataR := R.DataP
	m.M.DoNonZero(func(i, j int, val float64) {
		dataR[j] += val * dataX[i]
	})
	return
}

func (m CSR) MulDense(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nr, nc   = m.Dims()
		nrA, ncA = A.Dims()
		dataA    = A.DataP
	)
	if nrA != nc {
		err := fmt.Errorf("dimension mismatch in MulDense of \"%v\": nc = %v, nrA = %v", m.name, nc, nrA)
		panic(err)
	}
	R = NewMatrix(nr, ncA)
	dataR := R.DataP
	m.M.DoNonZero(func(i, j int, val float64) {
		rowR := dataR[i*ncA : (i+1)*ncA]
		rowA := dataA[j*ncA : (j+1)*ncA]
		for k, a := range rowA {
			rowR[k] += val * a
		}
	})
	return
}
