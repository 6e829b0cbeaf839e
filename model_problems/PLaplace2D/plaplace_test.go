package PLaplace2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sloisel/SpectralBarrierMethod/solver"
	"github.com/sloisel/SpectralBarrierMethod/utils"
)

func TestPLaplace(t *testing.T) {
	// Poisson on the square: center value of the classical series solution
	{
		c := NewPLaplace(1, 5, nil)
		res := c.Run(solver.DefaultOptions())
		assert.True(t, res.Converged)
		u0 := c.Solution(res, utils.NewMatrix(1, 2, []float64{0, 0}))
		assert.True(t, near(u0.AtVec(0), 0.2946854, 1.e-2))

		// The symmetric domain and source force u(x,y) = u(y,x)
		n := c.El.Orders[c.El.K-1]
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				assert.True(t, near(res.X.AtVec(i*n+j), res.X.AtVec(j*n+i), 1.e-8))
			}
		}
		// Homogeneous boundary values survive the solve
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i != 0 && i != n-1 && j != 0 && j != n-1 {
					continue
				}
				assert.True(t, math.Abs(res.X.AtVec(i*n+j)) < 1.e-10)
			}
		}
	}
	// Convexity demands p >= 1
	{
		assert.Panics(t, func() { NewPLaplace(0.5, 3, nil) })
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
