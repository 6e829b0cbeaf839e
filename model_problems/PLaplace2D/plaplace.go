package PLaplace2D

import (
	"fmt"
	"math"

	"github.com/sloisel/SpectralBarrierMethod/barrier"
	"github.com/sloisel/SpectralBarrierMethod/solver"
	"github.com/sloisel/SpectralBarrierMethod/spectral"
	"github.com/sloisel/SpectralBarrierMethod/utils"
)

// PLaplace solves the p-Laplace Dirichlet problem on the square [-1,1]^2
// with homogeneous boundary values, via a slack field bounding the energy
// density (ux^2+uy^2)^P/(2P) and a log barrier.
type PLaplace struct {
	// Input parameters
	P          float64
	Resolution int
	Source     func(x, y float64) float64
	El         *spectral.Mesh
	BA         *barrier.Assembler
}

func NewPLaplace(p float64, resolution int, source func(x, y float64) float64) *PLaplace {
	if p < 1 {
		panic(fmt.Errorf("exponent p = %v below 1 loses convexity of the energy", p))
	}
	if source == nil {
		source = func(x, y float64) float64 { return 1 }
	}
	c := &PLaplace{
		P:          p,
		Resolution: resolution,
		Source:     source,
		El:         spectral.NewMesh2D(resolution, false),
	}
	c.BA = barrier.NewAssembler(c.El, c.integrand, c.integrandGradient, c.integrandHessian)
	return c
}

// energy returns E = q^P/(2P) for q = ux^2+uy^2 together with the powers
// q^(P-1) and q^(P-2) needed by the derivatives. The q = 0 case is forced
// to zero curvature so that 1 < P < 2 does not produce 0 times infinity.
func (c *PLaplace) energy(ux, uy float64) (e, qp1, qp2 float64) {
	var (
		p = c.P
		q = ux*ux + uy*uy
	)
	qp1 = math.Pow(q, p-1)
	if q == 0 {
		qp2 = 0
	} else {
		qp2 = qp1 / q
	}
	e = qp1 * q / (2 * p)
	return
}

func (c *PLaplace) integrand(pt, fields []float64) float64 {
	e, _, _ := c.energy(fields[1], fields[2])
	return -math.Log(fields[3] - e)
}

func (c *PLaplace) integrandGradient(pt, fields, g []float64) {
	var (
		ux, uy    = fields[1], fields[2]
		e, qp1, _ = c.energy(ux, uy)
		arg       = fields[3] - e
		ex, ey    = ux * qp1, uy * qp1
	)
	g[0] = 0
	g[1] = ex / arg
	g[2] = ey / arg
	g[3] = -1 / arg
}

func (c *PLaplace) integrandHessian(pt, fields []float64, h utils.Matrix) {
	var (
		ux, uy      = fields[1], fields[2]
		e, qp1, qp2 = c.energy(ux, uy)
		arg         = fields[3] - e
		a2          = arg * arg
		ex, ey      = ux * qp1, uy * qp1
		exx         = qp1 + 2*(c.P-1)*ux*ux*qp2
		exy         = 2 * (c.P - 1) * ux * uy * qp2
		eyy         = qp1 + 2*(c.P-1)*uy*uy*qp2
	)
	h.Set(1, 1, ex*ex/a2+exx/arg)
	h.Set(1, 2, ex*ey/a2+exy/arg)
	h.Set(2, 1, ex*ey/a2+exy/arg)
	h.Set(2, 2, ey*ey/a2+eyy/arg)
	h.Set(1, 3, -ex/a2)
	h.Set(3, 1, -ex/a2)
	h.Set(2, 3, -ey/a2)
	h.Set(3, 2, -ey/a2)
	h.Set(3, 3, 1/a2)
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
		cost.DataP[i] = -c.Source(el.X.At(i, 0), el.X.At(i, 1))
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
