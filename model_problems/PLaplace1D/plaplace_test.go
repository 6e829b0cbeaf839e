package PLaplace1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sloisel/SpectralBarrierMethod/solver"
	"github.com/sloisel/SpectralBarrierMethod/utils"
)

func TestPLaplace(t *testing.T) {
	// p = 1 is the Laplace equation; unit source gives the parabola
	// u = (1-x^2)/2 with peak value 1/2
	{
		c := NewPLaplace(1, 5, nil)
		res := c.Run(solver.DefaultOptions())
		assert.True(t, res.Converged)
		u0 := c.Solution(res, utils.NewMatrix(1, 1, []float64{0}))
		assert.True(t, near(u0.AtVec(0), 0.5, 1.e-6))
		for i := 0; i < c.El.Np; i++ {
			x := c.El.X.At(i, 0)
			assert.True(t, near(res.X.AtVec(i), 0.5*(1-x*x), 1.e-6))
		}
	}
	// p = 1.1: the even source forces an even solution
	{
		c := NewPLaplace(1.1, 5, nil)
		res := c.Run(solver.DefaultOptions())
		assert.True(t, res.Converged)
		np := c.El.Np
		for i := 0; i < np; i++ {
			assert.True(t, near(res.X.AtVec(i), res.X.AtVec(np-1-i), 1.e-8))
		}
	}
	// Without rounding up, the finest basis is truncated to the target
	// resolution while the grid itself is larger
	{
		c := NewPLaplace(1, 5, nil)
		assert.Equal(t, 9, c.El.Np)
		_, nc := c.El.B[c.El.K-1].Dims()
		assert.Equal(t, 10, nc)
	}
	// Convexity demands p >= 1
	{
		assert.Panics(t, func() { NewPLaplace(0.9, 3, nil) })
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
