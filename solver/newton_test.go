package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sloisel/SpectralBarrierMethod/utils"
)

// diagHessian wraps a constant diagonal into a HessianFunc.
func diagHessian(d []float64) HessianFunc {
	return func(x utils.Vector) utils.CSR {
		n := len(d)
		H := utils.NewDOK(n, n)
		for i, v := range d {
			H.Set(i, i, v)
		}
		return H.ToCSR()
	}
}

func identity(n int) utils.Matrix {
	I := utils.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		I.Set(i, i, 1)
	}
	return I
}

func TestMinimize(t *testing.T) {
	// A quadratic is solved in one full step
	{
		a := []float64{3, -1, 2}
		f := func(x utils.Vector) float64 {
			var s float64
			for i, ai := range a {
				d := x.AtVec(i) - ai
				s += 0.5 * d * d
			}
			return s
		}
		g := func(x utils.Vector) utils.Vector {
			gr := utils.NewVector(len(a))
			for i, ai := range a {
				gr.DataP[i] = x.AtVec(i) - ai
			}
			return gr
		}
		rec := Minimize(f, g, diagHessian([]float64{1, 1, 1}), utils.NewVector(len(a)), identity(len(a)), DefaultNewtonOptions())
		assert.True(t, rec.Converged)
		assert.Equal(t, 1., rec.Steps[0])
		assert.True(t, nearVec(rec.X.DataP, a, 1.e-6))
		for i := 1; i < len(rec.Values); i++ {
			assert.True(t, rec.Values[i] < rec.Values[i-1])
		}
	}
	// Armijo sufficient decrease, recomputed against the regularized system
	{
		f := func(x utils.Vector) float64 { return 0.5 * x.AtVec(0) * x.AtVec(0) }
		g := func(x utils.Vector) utils.Vector {
			return utils.NewVector(1, []float64{x.AtVec(0)})
		}
		rec := Minimize(f, g, diagHessian([]float64{1}), utils.NewVector(1, []float64{1}), identity(1), DefaultNewtonOptions())
		assert.True(t, rec.Converged)
		eps := math.Nextafter(1, 2) - 1
		gn := 1 / (1 + eps)
		assert.Equal(t, 1., rec.Steps[0])
		assert.True(t, rec.Values[0] < 0.5-rec.Steps[0]*0.25*gn)
	}
	// Slow convex descent keeps a strictly decreasing trace
	{
		f := func(x utils.Vector) float64 {
			d := x.AtVec(0) - 2
			return 0.25 * d * d * d * d
		}
		g := func(x utils.Vector) utils.Vector {
			d := x.AtVec(0) - 2
			return utils.NewVector(1, []float64{d * d * d})
		}
		h := func(x utils.Vector) utils.CSR {
			d := x.AtVec(0) - 2
			H := utils.NewDOK(1, 1)
			H.Set(0, 0, 3*d*d)
			return H.ToCSR()
		}
		rec := Minimize(f, g, h, utils.NewVector(1, []float64{5}), identity(1), DefaultNewtonOptions())
		assert.True(t, rec.Converged)
		assert.True(t, near(rec.X.AtVec(0), 2, 1.e-2))
		for i := 1; i < len(rec.Values); i++ {
			assert.True(t, rec.Values[i] < rec.Values[i-1])
		}
	}
	// The subspace restriction is never left
	{
		f := func(x utils.Vector) float64 {
			d0, d1 := x.AtVec(0)-3, x.AtVec(1)-5
			return 0.5 * (d0*d0 + d1*d1)
		}
		g := func(x utils.Vector) utils.Vector {
			return utils.NewVector(2, []float64{x.AtVec(0) - 3, x.AtVec(1) - 5})
		}
		basis := utils.NewMatrix(2, 1, []float64{1, 0})
		rec := Minimize(f, g, diagHessian([]float64{1, 1}), utils.NewVector(2), basis, DefaultNewtonOptions())
		assert.True(t, rec.Converged)
		assert.True(t, near(rec.X.AtVec(0), 3, 1.e-6))
		assert.Equal(t, 0., rec.X.AtVec(1))
	}
	// Backtracking rejects steps that leave the domain
	{
		f := func(x utils.Vector) float64 {
			arg := 1 - x.AtVec(0)
			if arg <= 0 {
				return math.Inf(1)
			}
			return -math.Log(arg) + 0.5*x.AtVec(0)*x.AtVec(0)
		}
		g := func(x utils.Vector) utils.Vector {
			return utils.NewVector(1, []float64{1/(1-x.AtVec(0)) + x.AtVec(0)})
		}
		h := func(x utils.Vector) utils.CSR {
			H := utils.NewDOK(1, 1)
			d := 1 - x.AtVec(0)
			H.Set(0, 0, 1/(d*d)+1)
			return H.ToCSR()
		}
		rec := Minimize(f, g, h, utils.NewVector(1, []float64{0.9}), identity(1), DefaultNewtonOptions())
		assert.True(t, rec.Converged)
		assert.True(t, rec.X.AtVec(0) < 1)
		for i := 1; i < len(rec.Values); i++ {
			assert.True(t, rec.Values[i] < rec.Values[i-1])
		}
	}
	// An infeasible starting point is a precondition violation
	{
		f := func(x utils.Vector) float64 { return math.Inf(1) }
		g := func(x utils.Vector) utils.Vector { return utils.NewVector(1) }
		assert.Panics(t, func() {
			Minimize(f, g, diagHessian([]float64{1}), utils.NewVector(1), identity(1), DefaultNewtonOptions())
		})
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

func nearVec(a, b []float64, tolI ...float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tolI...) {
			return false
		}
	}
	return true
}
