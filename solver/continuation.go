package solver

import (
	"fmt"
	"math"
	"time"

	"github.com/sloisel/SpectralBarrierMethod/barrier"
	"github.com/sloisel/SpectralBarrierMethod/utils"
)

// ProgressReporter receives a monotone completion percentage after each
// accepted continuation step. Best effort; implementations must not fail.
type ProgressReporter interface {
	Report(percent int)
	Finish()
}

// Options collects the continuation and inner Newton parameters of a full
// barrier solve.
type Options struct {
	Tol         float64 // outer stop: finish once 1/t < Tol
	T0          float64 // initial barrier parameter
	Kappa       float64 // initial step multiplier for t
	Alpha       float64 // Armijo sufficient-decrease fraction
	Beta        float64 // backtracking shrink factor
	NewtonTol   float64 // relative decrease tolerance of the inner solves
	MaxNewton   int     // iteration budget per Newton solve
	MaxSteps    int     // outer continuation step budget
	MaxRecovery int     // recovery attempts per failed step
	Verbose     bool
	Progress    ProgressReporter
}

func DefaultOptions() Options {
	return Options{
		Tol:         1.e-8,
		T0:          0.1,
		Kappa:       10,
		Alpha:       0.25,
		Beta:        0.5,
		NewtonTol:   1.e-12,
		MaxNewton:   30,
		MaxSteps:    100,
		MaxRecovery: 10,
	}
}

// Result is the diagnostic bundle of a continuation solve. Ts holds the
// strictly increasing accepted barrier parameters; Iterations holds the
// Newton iteration counts of each accepted step, one entry per level solved
// during that step.
type Result struct {
	X          utils.Vector
	Value      float64
	Ts         []float64
	Kappa      float64
	Iterations [][]int
	Converged  bool
	Elapsed    time.Duration
}

// Solve drives the log-barrier continuation: a feasibility sweep across all
// hierarchy levels at the initial barrier parameter, then path-following of
// t toward 1/Tol on the finest level with adaptive step size. Failed steps
// trigger recovery sweeps across all levels with a shrunk multiplier. The
// starting point x0 must be feasible at the coarsest level. Solve never
// fails on slow convergence; inspect Converged and the traces instead.
func Solve(ba *barrier.Assembler, cost, x0 utils.Vector, opts Options) (res Result) {
	var (
		start  = time.Now()
		el     = ba.El
		finest = el.K - 1
		t      = opts.T0
		kappa  = opts.Kappa
		x      = x0.Copy()
	)
	mk := func(level int, c utils.Vector) (ObjectiveFunc, GradientFunc, HessianFunc) {
		return func(y utils.Vector) float64 { return ba.Objective(level, c, y) },
			func(y utils.Vector) utils.Vector { return ba.Gradient(level, c, y) },
			func(y utils.Vector) utils.CSR { return ba.Hessian(level, c, y) }
	}
	newtonOpts := NewtonOptions{
		MaxIterations: opts.MaxNewton,
		Alpha:         opts.Alpha,
		Beta:          opts.Beta,
		Tol:           opts.NewtonTol,
	}
	report := func() {
		if opts.Progress == nil {
			return
		}
		pct := int(100 * (math.Log(t) - math.Log(opts.T0)) /
			(math.Log(1/opts.Tol) - math.Log(opts.T0)))
		if pct < 0 {
			pct = 0
		} else if pct > 100 {
			pct = 100
		}
		opts.Progress.Report(pct)
	}
	defer func() {
		res.X = x
		res.Value = ba.Objective(finest, cost.Copy().Scale(t), x)
		res.Kappa = kappa
		res.Elapsed = time.Since(start)
		for i := 1; i < len(res.Ts); i++ {
			if res.Ts[i] <= res.Ts[i-1] {
				panic(fmt.Errorf("barrier parameters not strictly increasing: %v", res.Ts))
			}
		}
		if opts.Progress != nil {
			opts.Progress.Finish()
		}
	}()

	// Phase 1: feasibility sweep, coarse to fine, at the initial t. A level's
	// result is kept only when it converges and strictly improves the finest
	// objective at a finite point.
	c := cost.Copy().Scale(t)
	best := ba.Objective(finest, c, x)
	sweep := make([]int, 0, el.K)
	for l := 0; l < el.K; l++ {
		if !finite(ba.Objective(l, c, x)) {
			continue
		}
		f, g, h := mk(l, c)
		rec := Minimize(f, g, h, x, el.B[l], newtonOpts)
		sweep = append(sweep, rec.Iterations)
		if !rec.Converged {
			continue
		}
		vf := ba.Objective(finest, c, rec.X)
		if !finite(vf) || !finiteVec(ba.Gradient(finest, c, rec.X).DataP) || vf >= best {
			continue
		}
		x = rec.X
		best = vf
		if opts.Verbose {
			fmt.Printf("feasibility level %d: objective = %v after %d iterations\n", l, vf, rec.Iterations)
		}
	}
	res.Ts = append(res.Ts, t)
	res.Iterations = append(res.Iterations, sweep)
	report()

	// Phase 2: path-following on the finest level.
	for step := 0; ; step++ {
		if 1/t < opts.Tol {
			res.Converged = true
			return
		}
		if step >= opts.MaxSteps {
			return
		}
		tNew := t * kappa
		c = cost.Copy().Scale(tNew)
		var rec IterateRecord
		if finite(ba.Objective(finest, c, x)) {
			f, g, h := mk(finest, c)
			rec = Minimize(f, g, h, x, el.B[finest], newtonOpts)
		}
		if rec.Converged {
			x = rec.X
			t = tNew
			res.Ts = append(res.Ts, t)
			res.Iterations = append(res.Iterations, []int{rec.Iterations})
			if rec.Iterations <= opts.MaxNewton/2 {
				kappa = math.Min(opts.Kappa, kappa*kappa)
			}
			if opts.Verbose {
				fmt.Printf("t = %12.6e, kappa = %8.4f, iterations = %d\n", t, kappa, rec.Iterations)
			}
			report()
			continue
		}
		recovered := false
		for attempt := 0; attempt < opts.MaxRecovery && !recovered; attempt++ {
			kappa = math.Sqrt(kappa)
			tNew = t * kappa
			c = cost.Copy().Scale(tNew)
			xTry := x
			iters := make([]int, 0, el.K)
			ok := true
			for l := 0; l < el.K; l++ {
				// Intermediate sweep points can leave the finer levels'
				// domain; probe before warm starting there.
				if !finite(ba.Objective(l, c, xTry)) {
					ok = false
					break
				}
				fl, gl, hl := mk(l, c)
				rl := Minimize(fl, gl, hl, xTry, el.B[l], newtonOpts)
				iters = append(iters, rl.Iterations)
				if !rl.Converged {
					ok = false
					break
				}
				xTry = rl.X
			}
			if ok {
				x = xTry
				t = tNew
				res.Ts = append(res.Ts, t)
				res.Iterations = append(res.Iterations, iters)
				recovered = true
				if opts.Verbose {
					fmt.Printf("t = %12.6e, kappa = %8.4f, recovered after %d attempts\n", t, kappa, attempt+1)
				}
				report()
			}
		}
		if !recovered {
			return
		}
	}
}

func finiteVec(v []float64) bool {
	for _, val := range v {
		if !finite(val) {
			return false
		}
	}
	return true
}
