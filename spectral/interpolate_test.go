package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sloisel/SpectralBarrierMethod/utils"
)

func TestEvaluateAt(t *testing.T) {
	// 1D: nodal round trip and off-node evaluation of a resolved polynomial
	{
		el := NewMesh1D(5, false)
		f := make([]float64, el.Np)
		for i := 0; i < el.Np; i++ {
			x := el.X.At(i, 0)
			f[i] = 0.5 * (1 - x*x)
		}
		field := utils.NewVector(el.Np, f)
		assert.True(t, nearVec(el.EvaluateAt(field, el.X).DataP, f, 1.e-12))

		pts := utils.NewMatrix(3, 1, []float64{0, 0.5, -0.25})
		v := el.EvaluateAt(field, pts)
		assert.True(t, near(v.AtVec(0), 0.5, 1.e-12))
		assert.True(t, near(v.AtVec(1), 0.375, 1.e-12))
		assert.True(t, near(v.AtVec(2), 0.46875, 1.e-12))
	}
	// 1D: polynomial fields extrapolate exactly outside [-1,1]
	{
		el := NewMesh1D(5, false)
		f := make([]float64, el.Np)
		for i := 0; i < el.Np; i++ {
			x := el.X.At(i, 0)
			f[i] = x*x*x - 2*x
		}
		field := utils.NewVector(el.Np, f)
		pts := utils.NewMatrix(2, 1, []float64{1.5, -2})
		v := el.EvaluateAt(field, pts)
		assert.True(t, near(v.AtVec(0), 1.5*1.5*1.5-2*1.5, 1.e-11))
		assert.True(t, near(v.AtVec(1), -8+4, 1.e-11))
	}
	// 2D: tensor evaluation on and off the grid
	{
		el := NewMesh2D(3, false)
		f := make([]float64, el.Np)
		for p := 0; p < el.Np; p++ {
			x, y := el.X.At(p, 0), el.X.At(p, 1)
			f[p] = x*y + y*y
		}
		field := utils.NewVector(el.Np, f)
		assert.True(t, nearVec(el.EvaluateAt(field, el.X).DataP, f, 1.e-12))

		pts := utils.NewMatrix(2, 2, []float64{0.3, -0.2, 1.2, 0.5})
		v := el.EvaluateAt(field, pts)
		assert.True(t, near(v.AtVec(0), 0.3*-0.2+0.04, 1.e-12))
		assert.True(t, near(v.AtVec(1), 1.2*0.5+0.25, 1.e-11))
	}
	// Mismatched field length is a programming error
	{
		el := NewMesh1D(3, false)
		assert.Panics(t, func() {
			el.EvaluateAt(utils.NewVector(2), utils.NewMatrix(1, 1, []float64{0}))
		})
	}
}
