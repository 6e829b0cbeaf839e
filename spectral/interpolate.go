package spectral

import (
	"fmt"

	"github.com/sloisel/SpectralBarrierMethod/utils"
)

// EvaluateAt reconstructs the global Chebyshev expansion of a single nodal
// field (length Np) and evaluates it at the query points (Nq x Dim). Points
// outside [-1,1] are admissible through the hyperbolic continuation of the
// basis.
func (el *Mesh) EvaluateAt(field utils.Vector, points utils.Matrix) (R utils.Vector) {
	var (
		nq, dim = points.Dims()
	)
	if field.Len() != el.Np {
		err := fmt.Errorf("field length %d does not match node count %d", field.Len(), el.Np)
		panic(err)
	}
	if dim != el.Dim {
		err := fmt.Errorf("query points have %d coordinates, mesh expects %d", dim, el.Dim)
		panic(err)
	}
	R = utils.NewVector(nq)
	switch el.Dim {
	case 1:
		coeffs := el.Vinv.MulVec(field)
		for q := 0; q < nq; q++ {
			x := points.At(q, 0)
			var sum float64
			for k := 0; k < coeffs.Len(); k++ {
				sum += coeffs.AtVec(k) * ChebyshevT(x, k)
			}
			R.DataP[q] = sum
		}
	case 2:
		n := el.R.Len()
		F := utils.NewMatrix(n, n, field.Copy().DataP)
		// f(x_i, y_j) = (V C V^T)[i,j], so C = Vinv F Vinv^T
		C := el.Vinv.Mul(F).Mul(el.Vinv.Transpose())
		for q := 0; q < nq; q++ {
			x, y := points.At(q, 0), points.At(q, 1)
			ty := make([]float64, n)
			for l := 0; l < n; l++ {
				ty[l] = ChebyshevT(y, l)
			}
			var sum float64
			for k := 0; k < n; k++ {
				tx := ChebyshevT(x, k)
				if tx == 0 {
					continue
				}
				for l := 0; l < n; l++ {
					sum += C.At(k, l) * tx * ty[l]
				}
			}
			R.DataP[q] = sum
		}
	}
	return
}
