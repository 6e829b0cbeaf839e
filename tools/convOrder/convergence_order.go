package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/sloisel/SpectralBarrierMethod/model_problems/PLaplace1D"
	"github.com/sloisel/SpectralBarrierMethod/solver"
)

var (
	csvFile string
)

func main() {
	pPtr := flag.Float64("p", 1.1, "energy exponent of the study")
	maxResPtr := flag.Int("maxRes", 17, "largest target resolution of the study")
	csvFilePtr := flag.String("csvFile", csvFile, "write the study to a CSV file")
	flag.Parse()
	p := *pPtr
	csvFile = *csvFilePtr

	cs := NewConvergenceStudy("p-Laplace 1D, unit source", p)
	for res := 3; res <= *maxResPtr; res = 2*res - 1 {
		c := PLaplace1D.NewPLaplace(p, res, nil)
		r := c.Run(solver.DefaultOptions())
		eRMS, eMAX := solutionError(c, r)
		cs.Add(res, c.El.Np, eRMS, eMAX, r.Converged)
	}
	cs.Print()
	if len(csvFile) != 0 {
		cs.WriteCSV(csvFile)
		fmt.Printf("Output file: %v\n", csvFile)
	}
}

// solutionError compares the solved field against the closed form
// u = (2p-1)/(2p) (1 - |x|^(2p/(2p-1))) in the finest quadrature norm and
// in the max norm over the nodes.
func solutionError(c *PLaplace1D.PLaplace, r solver.Result) (eRMS, eMAX float64) {
	var (
		el     = c.El
		p      = c.P
		expo   = 2 * p / (2*p - 1)
		scale  = (2*p - 1) / (2 * p)
		finest = el.K - 1
	)
	for i := 0; i < el.Np; i++ {
		x := el.X.At(i, 0)
		e := r.X.AtVec(i) - scale*(1-math.Pow(math.Abs(x), expo))
		eRMS += 0.5 * el.W.At(i, finest) * e * e
		if math.Abs(e) > eMAX {
			eMAX = math.Abs(e)
		}
	}
	eRMS = math.Sqrt(eRMS)
	return
}

type ConvergenceStudy struct {
	title       string
	p           float64
	res, numPTS []int
	eRMS, eMAX  []float64
	converged   []bool
}

func NewConvergenceStudy(title string, p float64) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
		p:     p,
	}
}

func (cs *ConvergenceStudy) Add(res, numPTS int, eRMS, eMAX float64, converged bool) {
	cs.res = append(cs.res, res)
	cs.numPTS = append(cs.numPTS, numPTS)
	cs.eRMS = append(cs.eRMS, eRMS)
	cs.eMAX = append(cs.eMAX, eMAX)
	cs.converged = append(cs.converged, converged)
}

// Print tabulates the study with the observed order between successive
// resolutions, log(e_prev/e)/log(n/n_prev).
func (cs *ConvergenceStudy) Print() {
	fmt.Printf("Title = %s, P = %5.2f\n", cs.title, cs.p)
	fmt.Printf("res, npts, eRMS, eMAX, order, converged\n")
	for i := range cs.numPTS {
		order := 0.
		if i > 0 && cs.eRMS[i] > 0 {
			order = math.Log(cs.eRMS[i-1]/cs.eRMS[i]) /
				math.Log(float64(cs.numPTS[i])/float64(cs.numPTS[i-1]))
		}
		fmt.Printf("%d, %d, %v, %v, %5.2f, %v\n",
			cs.res[i], cs.numPTS[i], cs.eRMS[i], cs.eMAX[i], order, cs.converged[i])
	}
}

func (cs *ConvergenceStudy) WriteCSV(csvFile string) {
	var (
		f   *os.File
		err error
	)
	if f, err = os.Create(csvFile); err != nil {
		panic(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	_ = w.Write([]string{"title", "p", "res", "npts", "eRMS", "eMAX", "converged"})
	for i := range cs.numPTS {
		_ = w.Write([]string{
			cs.title,
			strconv.FormatFloat(cs.p, 'g', -1, 64),
			strconv.Itoa(cs.res[i]),
			strconv.Itoa(cs.numPTS[i]),
			strconv.FormatFloat(cs.eRMS[i], 'g', -1, 64),
			strconv.FormatFloat(cs.eMAX[i], 'g', -1, 64),
			strconv.FormatBool(cs.converged[i]),
		})
	}
	w.Flush()
}
