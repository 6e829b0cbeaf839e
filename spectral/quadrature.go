package spectral

import (
	"fmt"
	"math"

	"github.com/sloisel/SpectralBarrierMethod/utils"
)

// ClenshawCurtis returns the n point Clenshaw-Curtis rule on [-1,1].
// Nodes are the Chebyshev-Lobatto points in ascending order; weights are
// positive and integrate polynomials of degree < n exactly. Nodes and
// weights are exactly symmetric about zero.
func ClenshawCurtis(n int) (X, W utils.Vector) {
	var (
		x = make([]float64, n)
		w = make([]float64, n)
	)
	if n < 2 {
		err := fmt.Errorf("Clenshaw-Curtis rule needs at least 2 points, got %d", n)
		panic(err)
	}
	N := n - 1 // panel count
	for j := 0; j <= N/2; j++ {
		x[j] = -math.Cos(float64(j) * math.Pi / float64(N))
		x[N-j] = -x[j]
	}
	if N%2 == 0 {
		x[N/2] = 0
	}
	for j := 0; j <= N/2; j++ {
		theta := float64(j) * math.Pi / float64(N)
		sum := 0.
		for k := 1; k <= N/2; k++ {
			bk := 2.
			if 2*k == N {
				bk = 1.
			}
			sum += bk * math.Cos(2.*float64(k)*theta) / float64(4*k*k-1)
		}
		cj := 2.
		if j == 0 || j == N {
			cj = 1.
		}
		w[j] = cj * (1. - sum) / float64(N)
		w[N-j] = w[j]
	}
	X = utils.NewVector(n, x)
	W = utils.NewVector(n, w)
	return
}
