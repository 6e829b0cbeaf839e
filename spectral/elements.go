package spectral

import (
	"github.com/sloisel/SpectralBarrierMethod/utils"
)

/*
Mesh holds a nested hierarchy of Clenshaw-Curtis discretizations of the
interval [-1,1] (Dim = 1) or of its tensor-product square (Dim = 2).

Coefficient vectors downstream are stacked as [u_nodes; s_nodes] where u is
the unknown field and s the slack field, so all operators are Np x 2*Np and
all search bases are 2*Np x cols. The hierarchy orders grow as m -> 2m-1,
which makes every coarse node a node of the next finer rule; weight columns
for coarse levels are zero-padded onto the finest node set, and assemblers
must skip integrand evaluation wherever the weight is zero.

A Mesh is immutable once constructed.
*/
type Mesh struct {
	Dim        int            // spatial dimension, 1 or 2
	K          int            // number of hierarchy levels
	Np         int            // number of physical nodes at the finest level
	Resolution int            // degrees of freedom per field (per direction when Dim = 2)
	Orders     []int          // 1D quadrature order of each level
	R          utils.Vector   // finest 1D nodes, ascending
	X          utils.Matrix   // Np x Dim node coordinates
	W          utils.Matrix   // Np x K quadrature weight columns
	V, Vinv    utils.Matrix   // 1D Chebyshev Vandermonde at R and its inverse
	D          utils.Matrix   // 1D nodal differentiation matrix at R
	Ops        []utils.CSR    // value, derivative(s), slack extraction
	B          []utils.Matrix // per-level search subspace bases
}

// NewMesh1D builds the embedded hierarchy for a target resolution of
// degrees of freedom per field. Orders grow from 2 by m -> 2m-1 until the
// trial capacity m-2 covers the target; when roundUp is true the returned
// Resolution is promoted to the full finest capacity, otherwise every level
// truncates its basis to the requested count.
func NewMesh1D(targetResolution int, roundUp bool) (el *Mesh) {
	var (
		r = targetResolution
	)
	if r < 1 {
		r = 1
	}
	orders := hierarchyOrders(r)
	K := len(orders)
	if roundUp {
		r = orders[K-1] - 2
	}
	Np := orders[K-1]
	R, _ := ClenshawCurtis(Np)

	el = &Mesh{
		Dim:        1,
		K:          K,
		Np:         Np,
		Resolution: r,
		Orders:     orders,
		R:          R,
	}
	el.X = utils.NewMatrix(Np, 1, R.Copy().DataP)
	el.W = weightColumns(orders, Np)

	el.V = Vandermonde1D(Np-1, R)
	Vinv, err := el.V.Inverse()
	if err != nil {
		panic(err)
	}
	el.Vinv = Vinv
	el.D = el.V.Mul(GradModal1D(Np - 1)).Mul(el.Vinv)
	utils.IsNanPanic(el.Vinv)
	utils.IsNanPanic(el.D)

	el.Ops = []utils.CSR{
		valueOp(Np),
		derivOp(el.D),
		slackOp(Np),
	}
	el.B = make([]utils.Matrix, K)
	for l, m := range orders {
		el.B[l] = stackedBasis1D(R, m, r)
	}

	el.X.SetReadOnly("X")
	el.W.SetReadOnly("W")
	el.V.SetReadOnly("V")
	el.Vinv.SetReadOnly("Vinv")
	el.D.SetReadOnly("D")
	for l := range el.B {
		el.B[l].SetReadOnly("B")
	}
	return
}

func hierarchyOrders(r int) (orders []int) {
	m := 2
	orders = append(orders, m)
	for m-2 < r {
		m = 2*m - 1
		orders = append(orders, m)
	}
	return
}

// weightColumns maps each level's Clenshaw-Curtis weights onto the finest
// node set by index stride, leaving zeros at nodes the level does not carry.
func weightColumns(orders []int, np int) (W utils.Matrix) {
	W = utils.NewMatrix(np, len(orders))
	for l, m := range orders {
		_, wl := ClenshawCurtis(m)
		stride := (np - 1) / (m - 1)
		for j := 0; j < m; j++ {
			W.Set(j*stride, l, wl.AtVec(j))
		}
	}
	return
}

func valueOp(np int) utils.CSR {
	A := utils.NewDOK(np, 2*np)
	for i := 0; i < np; i++ {
		A.Set(i, i, 1)
	}
	R := A.ToCSR()
	return R.SetReadOnly("value")
}

func derivOp(D utils.Matrix) utils.CSR {
	var (
		np, _ = D.Dims()
		A     = utils.NewDOK(np, 2*np)
	)
	for i := 0; i < np; i++ {
		for j := 0; j < np; j++ {
			if v := D.At(i, j); v != 0 {
				A.Set(i, j, v)
			}
		}
	}
	R := A.ToCSR()
	return R.SetReadOnly("d/dx")
}

func slackOp(np int) utils.CSR {
	A := utils.NewDOK(np, 2*np)
	for i := 0; i < np; i++ {
		A.Set(i, np+i, 1)
	}
	R := A.ToCSR()
	return R.SetReadOnly("slack")
}

// trialColumn evaluates the boundary-respecting trial function
// T_k - T_{k mod 2} at the nodes; it vanishes at both interval ends.
func trialColumn(R utils.Vector, k int) (col []float64) {
	col = ChebyshevP(R, k)
	low := ChebyshevP(R, k%2)
	for i := range col {
		col[i] -= low[i]
	}
	return
}

// basisCounts gives the per-level column counts of the two fields: the
// trial space loses two degrees of freedom to the boundary conditions, the
// slack space is unconstrained, and both are truncated to the target.
func basisCounts(m, r int) (nu, ns int) {
	nu = min(m-2, r)
	ns = min(m, r)
	return
}

func stackedBasis1D(R utils.Vector, m, r int) (B utils.Matrix) {
	var (
		np     = R.Len()
		nu, ns = basisCounts(m, r)
	)
	B = utils.NewMatrix(2*np, nu+ns)
	for c := 0; c < nu; c++ {
		col := trialColumn(R, c+2)
		for i := 0; i < np; i++ {
			B.Set(i, c, col[i])
		}
	}
	for c := 0; c < ns; c++ {
		col := ChebyshevP(R, c)
		for i := 0; i < np; i++ {
			B.Set(np+i, nu+c, col[i])
		}
	}
	return
}
