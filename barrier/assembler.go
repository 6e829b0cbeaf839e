// Package barrier assembles the log-barrier objective, gradient and Hessian
// of a pointwise integrand over a spectral quadrature mesh.
package barrier

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/sloisel/SpectralBarrierMethod/spectral"
	"github.com/sloisel/SpectralBarrierMethod/utils"
)

type (
	// Integrand evaluates the pointwise cost density. pt holds the node
	// coordinates and fields the per-operator values (value, derivatives,
	// slack) of the stacked coefficient vector at that node. A non-finite
	// return marks the point infeasible; it is never a failure.
	Integrand func(pt, fields []float64) float64
	// IntegrandGradient fills g with the derivative of the integrand with
	// respect to each entry of fields.
	IntegrandGradient func(pt, fields, g []float64)
	// IntegrandHessian fills h with the second derivatives of the integrand
	// with respect to fields. h is zeroed before each call, so only nonzero
	// entries need to be set.
	IntegrandHessian func(pt, fields []float64, h utils.Matrix)
)

// opRow caches one sparse operator row so per-node field values can be
// gathered without walking the CSR structure on every call.
type opRow struct {
	ix []int
	vx []float64
}

// Assembler binds an integrand to a mesh and produces the barrier triple
// (objective, gradient, Hessian) as quadrature-weighted functions of the
// stacked coefficient vector. The scratch buffers are reused across calls,
// so a single Assembler must not be invoked concurrently.
type Assembler struct {
	El  *spectral.Mesh
	F   Integrand
	DF  IntegrandGradient
	D2F IntegrandHessian

	rows   [][]opRow // (operator, node) cached sparse rows
	pt     []float64
	fields []float64
	grad   []float64
	wgrad  []utils.Vector // per-operator weighted pointwise gradients
	hess   utils.Matrix
}

// NewAssembler caches the operator rows of el and binds the integrand f.
// When df or d2f is nil the corresponding derivative is approximated by
// finite differences of f, which is only appropriate for integrands that
// stay smooth near the evaluation point.
func NewAssembler(el *spectral.Mesh, f Integrand, df IntegrandGradient, d2f IntegrandHessian) (ba *Assembler) {
	if f == nil {
		panic(fmt.Errorf("nil integrand"))
	}
	var (
		nOps = len(el.Ops)
	)
	ba = &Assembler{
		El:     el,
		F:      f,
		DF:     df,
		D2F:    d2f,
		rows:   make([][]opRow, nOps),
		pt:     make([]float64, el.Dim),
		fields: make([]float64, nOps),
		grad:   make([]float64, nOps),
		wgrad:  make([]utils.Vector, nOps),
		hess:   utils.NewMatrix(nOps, nOps),
	}
	for k := range ba.wgrad {
		ba.wgrad[k] = utils.NewVector(el.Np)
	}
	for k := range el.Ops {
		ba.rows[k] = make([]opRow, el.Np)
		rk := ba.rows[k]
		el.Ops[k].DoNonZero(func(i, j int, v float64) {
			rk[i].ix = append(rk[i].ix, j)
			rk[i].vx = append(rk[i].vx, v)
		})
	}
	if ba.DF == nil {
		ba.DF = func(pt, fields, g []float64) {
			fd.Gradient(g, func(v []float64) float64 { return f(pt, v) }, fields, nil)
		}
	}
	if ba.D2F == nil {
		sym := mat.NewSymDense(nOps, nil)
		ba.D2F = func(pt, fields []float64, h utils.Matrix) {
			fd.Hessian(sym, func(v []float64) float64 { return f(pt, v) }, fields, nil)
			for a := 0; a < nOps; a++ {
				for b := 0; b < nOps; b++ {
					h.Set(a, b, sym.At(a, b))
				}
			}
		}
	}
	return
}

// gather loads the node coordinates and per-operator field values for node i
// into the scratch buffers.
func (ba *Assembler) gather(i int, xd []float64) {
	for d := 0; d < ba.El.Dim; d++ {
		ba.pt[d] = ba.El.X.At(i, d)
	}
	for k := range ba.rows {
		row := ba.rows[k][i]
		var sum float64
		for jj, col := range row.ix {
			sum += row.vx[jj] * xd[col]
		}
		ba.fields[k] = sum
	}
}

// Objective returns the barrier cost at level: the quadrature sum of the
// integrand plus the weighted linear cost c. Nodes with zero weight at the
// level are skipped entirely, since coarse iterates are undefined there.
// An infeasible x yields +Inf.
func (ba *Assembler) Objective(level int, c, x utils.Vector) float64 {
	checkFinite(x, "coefficients")
	var (
		el  = ba.El
		xd  = x.DataP
		cd  = c.DataP
		sum float64
	)
	for i := 0; i < el.Np; i++ {
		wi := el.W.At(i, level)
		if wi == 0 {
			continue
		}
		ba.gather(i, xd)
		v := ba.F(ba.pt, ba.fields)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.Inf(1)
		}
		sum += wi * (v + cd[i]*xd[i] + cd[el.Np+i]*xd[el.Np+i])
	}
	return sum
}

// Gradient returns the derivative of Objective with respect to x,
// accumulated as operator' (w .* grad_k) per operator. The result may carry
// non-finite entries when x is infeasible at the level; callers test for
// that rather than recover from a failure.
func (ba *Assembler) Gradient(level int, c, x utils.Vector) utils.Vector {
	checkFinite(x, "coefficients")
	var (
		el  = ba.El
		xd  = x.DataP
		cd  = c.DataP
		acc = make([]float64, 2*el.Np)
	)
	for k := range ba.wgrad {
		wg := ba.wgrad[k].DataP
		for i := range wg {
			wg[i] = 0
		}
	}
	for i := 0; i < el.Np; i++ {
		wi := el.W.At(i, level)
		if wi == 0 {
			continue
		}
		ba.gather(i, xd)
		ba.DF(ba.pt, ba.fields, ba.grad)
		for k := range ba.wgrad {
			ba.wgrad[k].DataP[i] = wi * ba.grad[k]
		}
		acc[i] += wi * cd[i]
		acc[el.Np+i] += wi * cd[el.Np+i]
	}
	R := utils.NewVector(2*el.Np, acc)
	for k, op := range el.Ops {
		R.Add(op.MulVecT(ba.wgrad[k]))
	}
	return R
}

// Hessian assembles the sparse second derivative of Objective with respect
// to x at level, summing operator' diag(w h[a][b]) operator over all ordered
// operator pairs.
func (ba *Assembler) Hessian(level int, c, x utils.Vector) utils.CSR {
	checkFinite(x, "coefficients")
	var (
		el = ba.El
		xd = x.DataP
		hd = ba.hess.DataP
		H  = utils.NewDOK(2*el.Np, 2*el.Np)
	)
	for i := 0; i < el.Np; i++ {
		wi := el.W.At(i, level)
		if wi == 0 {
			continue
		}
		ba.gather(i, xd)
		for idx := range hd {
			hd[idx] = 0
		}
		ba.D2F(ba.pt, ba.fields, ba.hess)
		for a := range ba.rows {
			rowA := ba.rows[a][i]
			for b := range ba.rows {
				hab := ba.hess.At(a, b)
				if hab == 0 {
					continue
				}
				coef := wi * hab
				rowB := ba.rows[b][i]
				for ja, va := range rowA.vx {
					for jb, vb := range rowB.vx {
						H.Accumulate(rowA.ix[ja], rowB.ix[jb], coef*va*vb)
					}
				}
			}
		}
	}
	return H.ToCSR()
}

func checkFinite(x utils.Vector, name string) {
	for _, v := range x.DataP {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			panic(fmt.Errorf("non-finite value in %s", name))
		}
	}
}
