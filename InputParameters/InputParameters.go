package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/sloisel/SpectralBarrierMethod/solver"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title       string  `yaml:"Title"`
	P           float64 `yaml:"P"`           // Energy exponent, >= 1
	Resolution  int     `yaml:"Resolution"`  // Target degrees of freedom per direction
	Tolerance   float64 `yaml:"Tolerance"`   // Outer continuation tolerance
	T0          float64 `yaml:"T0"`          // Initial barrier parameter
	Kappa       float64 `yaml:"Kappa"`       // Initial continuation step multiplier
	Alpha       float64 `yaml:"Alpha"`       // Armijo sufficient-decrease fraction
	Beta        float64 `yaml:"Beta"`        // Line search shrink factor
	NewtonTol   float64 `yaml:"NewtonTol"`   // Inner Newton tolerance
	MaxNewton   int     `yaml:"MaxNewton"`   // Newton iteration budget per solve
	MaxSteps    int     `yaml:"MaxSteps"`    // Outer continuation step budget
	MaxRecovery int     `yaml:"MaxRecovery"` // Recovery attempts per failed step
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Options maps the parameters onto solver options; fields left at zero keep
// the solver defaults.
func (ip *InputParameters) Options() (opts solver.Options) {
	opts = solver.DefaultOptions()
	if ip.Tolerance != 0 {
		opts.Tol = ip.Tolerance
	}
	if ip.T0 != 0 {
		opts.T0 = ip.T0
	}
	if ip.Kappa != 0 {
		opts.Kappa = ip.Kappa
	}
	if ip.Alpha != 0 {
		opts.Alpha = ip.Alpha
	}
	if ip.Beta != 0 {
		opts.Beta = ip.Beta
	}
	if ip.NewtonTol != 0 {
		opts.NewtonTol = ip.NewtonTol
	}
	if ip.MaxNewton != 0 {
		opts.MaxNewton = ip.MaxNewton
	}
	if ip.MaxSteps != 0 {
		opts.MaxSteps = ip.MaxSteps
	}
	if ip.MaxRecovery != 0 {
		opts.MaxRecovery = ip.MaxRecovery
	}
	return
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= P\n", ip.P)
	fmt.Printf("[%d]\t\t\t= Resolution\n", ip.Resolution)
	opts := ip.Options()
	fmt.Printf("%8.2e\t\t= Tolerance\n", opts.Tol)
	fmt.Printf("%8.5f\t\t= T0\n", opts.T0)
	fmt.Printf("%8.5f\t\t= Kappa\n", opts.Kappa)
	fmt.Printf("%8.5f\t\t= Alpha\n", opts.Alpha)
	fmt.Printf("%8.5f\t\t= Beta\n", opts.Beta)
	fmt.Printf("%8.2e\t\t= NewtonTol\n", opts.NewtonTol)
	fmt.Printf("[%d]\t\t\t= MaxNewton\n", opts.MaxNewton)
	fmt.Printf("[%d]\t\t\t= MaxSteps\n", opts.MaxSteps)
	fmt.Printf("[%d]\t\t\t= MaxRecovery\n", opts.MaxRecovery)
}
