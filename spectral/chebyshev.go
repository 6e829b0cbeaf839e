package spectral

import (
	"math"

	"github.com/sloisel/SpectralBarrierMethod/utils"
)

// ChebyshevT evaluates the degree k Chebyshev polynomial of the first kind.
// Outside [-1,1] the cosine form is continued hyperbolically, which is what
// permits extrapolation of a spectral expansion beyond the interval.
func ChebyshevT(x float64, k int) (y float64) {
	kf := float64(k)
	switch {
	case x > 1:
		y = math.Cosh(kf * math.Acosh(x))
	case x < -1:
		y = math.Cosh(kf * math.Acosh(-x))
		if k%2 == 1 {
			y = -y
		}
	default:
		y = math.Cos(kf * math.Acos(x))
	}
	return
}

// ChebyshevP evaluates T_k at each entry of R.
func ChebyshevP(R utils.Vector, k int) (p []float64) {
	p = make([]float64, R.Len())
	for i := range p {
		p[i] = ChebyshevT(R.AtVec(i), k)
	}
	return
}

func Vandermonde1D(N int, R utils.Vector) (V utils.Matrix) {
	V = utils.NewMatrix(R.Len(), N+1)
	for j := 0; j < N+1; j++ {
		V.SetCol(j, ChebyshevP(R, j))
	}
	return
}

// GradModal1D builds the modal differentiation matrix for the Chebyshev
// basis of degree N: if a holds expansion coefficients of f, Dhat*a holds
// those of f'. Column j comes from T'_j = 2j * sum T_k over k < j with
// j-k odd, where the k = 0 term is halved.
func GradModal1D(N int) (Dhat utils.Matrix) {
	Dhat = utils.NewMatrix(N+1, N+1)
	for j := 1; j < N+1; j++ {
		for k := j - 1; k >= 0; k -= 2 {
			ck := 1.
			if k == 0 {
				ck = 2.
			}
			Dhat.Set(k, j, 2.*float64(j)/ck)
		}
	}
	return
}
