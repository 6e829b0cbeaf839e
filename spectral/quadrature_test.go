package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClenshawCurtis(t *testing.T) {
	// Weight sum, positivity, node ordering and symmetry
	{
		for _, n := range []int{2, 3, 5, 9, 17, 33} {
			X, W := ClenshawCurtis(n)
			var sum float64
			for i := 0; i < n; i++ {
				sum += W.AtVec(i)
				assert.True(t, W.AtVec(i) > 0)
				assert.True(t, X.AtVec(i) >= -1 && X.AtVec(i) <= 1)
				if i > 0 {
					assert.True(t, X.AtVec(i) > X.AtVec(i-1))
				}
				assert.Equal(t, X.AtVec(i), -X.AtVec(n-1-i))
				assert.Equal(t, W.AtVec(i), W.AtVec(n-1-i))
			}
			assert.True(t, near(sum, 2))
		}
	}
	// Known small rules
	{
		_, W := ClenshawCurtis(2)
		assert.True(t, nearVec(W.DataP, []float64{1, 1}, 1.e-15))
		_, W = ClenshawCurtis(3)
		assert.True(t, nearVec(W.DataP, []float64{1. / 3., 4. / 3., 1. / 3.}, 1.e-15))
		_, W = ClenshawCurtis(5)
		assert.True(t, nearVec(W.DataP, []float64{1. / 15., 8. / 15., 4. / 5., 8. / 15., 1. / 15.}, 1.e-15))
	}
	// Polynomial exactness: degree < n integrates exactly
	{
		for _, n := range []int{3, 5, 9, 17} {
			X, W := ClenshawCurtis(n)
			for d := 0; d < n; d++ {
				var q float64
				for i := 0; i < n; i++ {
					q += W.AtVec(i) * math.Pow(X.AtVec(i), float64(d))
				}
				exact := 0.
				if d%2 == 0 {
					exact = 2. / float64(d+1)
				}
				assert.True(t, near(q, exact, 1.e-13))
			}
		}
	}
	// Node nesting: every node of order m appears in order 2m-1
	{
		for _, m := range []int{2, 3, 5, 9} {
			Xc, _ := ClenshawCurtis(m)
			Xf, _ := ClenshawCurtis(2*m - 1)
			for j := 0; j < m; j++ {
				assert.Equal(t, Xc.AtVec(j), Xf.AtVec(2*j))
			}
		}
	}
	// Degenerate order rejected
	{
		assert.Panics(t, func() { ClenshawCurtis(1) })
	}
}
