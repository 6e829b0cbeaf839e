// Package solver provides the subspace-restricted damped Newton minimizer
// and the barrier-parameter continuation driver built on top of it.
package solver

import (
	"fmt"
	"math"

	"github.com/sloisel/SpectralBarrierMethod/utils"
)

type (
	// ObjectiveFunc evaluates the cost at a coefficient vector. A non-finite
	// value marks the point infeasible.
	ObjectiveFunc func(x utils.Vector) float64
	// GradientFunc evaluates the cost gradient.
	GradientFunc func(x utils.Vector) utils.Vector
	// HessianFunc evaluates the sparse cost Hessian.
	HessianFunc func(x utils.Vector) utils.CSR
)

// NewtonOptions collects the line search and stopping parameters of a single
// Newton solve.
type NewtonOptions struct {
	MaxIterations int     // outer iteration budget
	Alpha         float64 // Armijo sufficient-decrease fraction
	Beta          float64 // backtracking shrink factor
	Tol           float64 // relative decrease below which we stop
}

func DefaultNewtonOptions() NewtonOptions {
	return NewtonOptions{
		MaxIterations: 100,
		Alpha:         0.25,
		Beta:          0.5,
		Tol:           1.e-12,
	}
}

// IterateRecord reports the outcome of one Newton solve. Steps and Values
// trace the accepted line search steps; abandoned steps leave no entry.
type IterateRecord struct {
	X          utils.Vector
	Value      float64
	Iterations int
	Converged  bool
	Steps      []float64
	Values     []float64
}

// Minimize runs a damped Newton iteration on f restricted to the affine
// subspace x0 + range(basis). Each step solves the reduced, regularized
// Newton system and backtracks until the Armijo condition holds. The
// starting point must be feasible; an infeasible x0 is a precondition
// violation and panics. A reduced direction with no positive predicted
// decrease, or a relative decrease below opts.Tol, ends the iteration as
// converged.
func Minimize(f ObjectiveFunc, g GradientFunc, h HessianFunc, x0 utils.Vector, basis utils.Matrix, opts NewtonOptions) (rec IterateRecord) {
	var (
		eps    = math.Nextafter(1, 2) - 1
		basisT = basis.Transpose()
		x      = x0.Copy()
		v      = f(x)
		_, nc  = basis.Dims()
	)
	if !finite(v) {
		panic(fmt.Errorf("objective is not finite at the starting point: %v", v))
	}
	var (
		xd  = x.DataP
		xt  = x.Copy()
		xtd = xt.DataP
	)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		rec.Iterations = iter + 1
		gr := basisT.MulVec(g(x))
		Hr := basisT.Mul(h(x).MulDense(basis))
		fn := Hr.Norm(2)
		for i := 0; i < nc; i++ {
			Hr.Set(i, i, Hr.At(i, i)+eps*fn)
		}
		nr := Hr.LUSolve(gr)
		n := basis.MulVec(nr)
		gn := gr.Dot(nr)
		if !finite(gn) {
			panic(fmt.Errorf("non-finite Newton decrement: %v", gn))
		}
		for _, nv := range n.DataP {
			if !finite(nv) {
				panic(fmt.Errorf("non-finite Newton direction"))
			}
		}
		if gn <= 0 {
			// No descent left in the subspace
			rec.Converged = true
			break
		}
		var (
			s    = 1.
			vNew = v
			nd   = n.DataP
		)
		for {
			moved := false
			for i := range xtd {
				xtd[i] = xd[i] - s*nd[i]
				if xtd[i] != xd[i] {
					moved = true
				}
			}
			if !moved {
				// Step underflowed, keep the current point
				break
			}
			vt := f(xt)
			if finite(vt) && vt < v-s*opts.Alpha*gn {
				copy(xd, xtd)
				vNew = vt
				rec.Steps = append(rec.Steps, s)
				rec.Values = append(rec.Values, vt)
				break
			}
			s *= opts.Beta
		}
		if v-vNew <= opts.Tol*math.Max(math.Min(math.Abs(v), math.Abs(vNew)), 1) {
			v = vNew
			rec.Converged = true
			break
		}
		v = vNew
	}
	rec.X = x
	rec.Value = v
	return
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
