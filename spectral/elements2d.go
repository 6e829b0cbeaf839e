package spectral

import (
	"github.com/sloisel/SpectralBarrierMethod/utils"
)

// NewMesh2D builds the tensor-product square mesh. The target resolution is
// per direction and per field, so the finest trial space carries
// Resolution^2 degrees of freedom. Node p = i*n + j sits at
// (R[i], R[j]); operators and bases are Kronecker products of their 1D
// counterparts, and each level's weights are the Kronecker square of the
// 1D weight column, so padding zeros propagate to every node with an
// inactive coordinate.
func NewMesh2D(targetResolution int, roundUp bool) (el *Mesh) {
	var (
		line = NewMesh1D(targetResolution, roundUp)
		n    = line.Np
		np   = n * n
	)
	el = &Mesh{
		Dim:        2,
		K:          line.K,
		Np:         np,
		Resolution: line.Resolution,
		Orders:     line.Orders,
		R:          line.R,
		V:          line.V,
		Vinv:       line.Vinv,
		D:          line.D,
	}
	el.X = utils.NewMatrix(np, 2)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p := i*n + j
			el.X.Set(p, 0, line.R.AtVec(i))
			el.X.Set(p, 1, line.R.AtVec(j))
		}
	}
	el.W = utils.NewMatrix(np, el.K)
	for l := 0; l < el.K; l++ {
		wl := line.W.Col(l)
		for i := 0; i < n; i++ {
			wi := wl.AtVec(i)
			if wi == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				el.W.Set(i*n+j, l, wi*wl.AtVec(j))
			}
		}
	}

	el.Ops = []utils.CSR{
		valueOp(np),
		kronDerivOp(line.D, n, true),
		kronDerivOp(line.D, n, false),
		slackOp(np),
	}
	el.B = make([]utils.Matrix, el.K)
	for l, m := range el.Orders {
		el.B[l] = stackedBasis2D(line.R, m, el.Resolution)
	}

	el.X.SetReadOnly("X")
	el.W.SetReadOnly("W")
	for l := range el.B {
		el.B[l].SetReadOnly("B")
	}
	return
}

// kronDerivOp assembles [kron(D,I) | 0] when xDir is true, [kron(I,D) | 0]
// otherwise, without materializing the dense Kronecker product.
func kronDerivOp(D utils.Matrix, n int, xDir bool) utils.CSR {
	var (
		np = n * n
		A  = utils.NewDOK(np, 2*np)
	)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			v := D.At(i, k)
			if v == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				if xDir {
					A.Set(i*n+j, k*n+j, v)
				} else {
					A.Set(j*n+i, j*n+k, v)
				}
			}
		}
	}
	R := A.ToCSR()
	if xDir {
		return R.SetReadOnly("d/dx")
	}
	return R.SetReadOnly("d/dy")
}

func stackedBasis2D(R utils.Vector, m, r int) (B utils.Matrix) {
	var (
		n      = R.Len()
		np     = n * n
		nu, ns = basisCounts(m, r)
	)
	S := utils.NewMatrix(n, ns)
	for c := 0; c < ns; c++ {
		S.SetCol(c, ChebyshevP(R, c))
	}
	SS := S.Kron(S)
	B = utils.NewMatrix(2*np, nu*nu+ns*ns)
	if nu > 0 {
		U := utils.NewMatrix(n, nu)
		for c := 0; c < nu; c++ {
			U.SetCol(c, trialColumn(R, c+2))
		}
		UU := U.Kron(U)
		for i := 0; i < np; i++ {
			for c := 0; c < nu*nu; c++ {
				B.Set(i, c, UU.At(i, c))
			}
		}
	}
	for i := 0; i < np; i++ {
		for c := 0; c < ns*ns; c++ {
			B.Set(np+i, nu*nu+c, SS.At(i, c))
		}
	}
	return
}
