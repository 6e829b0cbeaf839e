package PLaplace1D

import (
	"fmt"
	"math"

	"github.com/sloisel/SpectralBarrierMethod/barrier"
	"github.com/sloisel/SpectralBarrierMethod/solver"
	"github.com/sloisel/SpectralBarrierMethod/spectral"
	"github.com/sloisel/SpectralBarrierMethod/utils"
)

// PLaplace solves the 1D p-Laplace Dirichlet problem on [-1,1] with
// homogeneous boundary values: minimize the energy |u'|^(2P)/(2P) - f u,
// rewritten with a slack field s >= |u'|^(2P)/(2P) and a log barrier.
type PLaplace struct {
	// Input parameters
	P          float64
	Resolution int
	Source     func(x float64) float64
	El         *spectral.Mesh
	BA         *barrier.Assembler
}

func NewPLaplace(p float64, resolution int, source func(x float64) float64) *PLaplace {
	if p < 1 {
		panic(fmt.Errorf("exponent p = %v below 1 loses convexity of the energy", p))
	}
	if source == nil {
		source = func(x float64) float64 { return 1 }
	}
	c := &PLaplace{
		P:          p,
		Resolution: resolution,
		Source:     source,
		El:         spectral.NewMesh1D(resolution, false),
	}
	c.BA = barrier.NewAssembler(c.El, c.integrand, c.integrandGradient, c.integrandHessian)
	return c
}

// energy returns E = (du^2)^P/(2P) with its first two derivatives in du.
func (c *PLaplace) energy(du float64) (e, e1, e2 float64) {
	var (
		p  = c.P
		q  = du * du
		qp = math.Pow(q, p-1)
	)
	e = qp * q / (2 * p)
	e1 = du * qp
	e2 = (2*p - 1) * qp
	return
}

func (c *PLaplace) integrand(pt, fields []float64) float64 {
	e, _, _ := c.energy(fields[1])
	return -math.Log(fields[2] - e)
}

func (c *PLaplace) integrandGradient(pt, fields, g []float64) {
	e, e1, _ := c.energy(fields[1])
	arg := fields[2] - e
	g[0] = 0
	g[1] = e1 / arg
	g[2] = -1 / arg
}

func (c *PLaplace) integrandHessian(pt, fields []float64, h utils.Matrix) {
	e, e1, e2 := c.energy(fields[1])
	arg := fields[2] - e
	h.Set(1, 1, e1*e1/(arg*arg)+e2/arg)
	h.Set(1, 2, -e1/(arg*arg))
	h.Set(2, 1, -e1/(arg*arg))
	h.Set(2, 2, 1/(arg*arg))
}

// Run performs the full continuation solve from the canonical admissible
// start u = 0, s = 1.
func (c *PLaplace) Run(opts solver.Options) (res solver.Result) {
	var (
		el = c.El
		np = el.Np
	)
	cost := utils.NewVector(2 * np)
	x0 := utils.NewVector(2 * np)
	for i := 0; i < np; i++ {
		cost.DataP[i] = -c.Source(el.X.At(i, 0))
		cost.DataP[np+i] = 1
		x0.DataP[np+i] = 1
	}
	res = solver.Solve(c.BA, cost, x0, opts)
	if opts.Verbose {
		fmt.Printf("converged = %v, t = %12.6e, steps = %d, elapsed = %v\n",
			res.Converged, res.Ts[len(res.Ts)-1], len(res.Ts), res.Elapsed)
	}
	return
}

// Solution interpolates the solved field at the query points.
func (c *PLaplace) Solution(res solver.Result, points utils.Matrix) utils.Vector {
	return c.El.EvaluateAt(res.X.Subset(0, c.El.Np-1), points)
}
