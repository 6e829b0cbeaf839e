/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"

	input "github.com/sloisel/SpectralBarrierMethod/InputParameters"
	"github.com/sloisel/SpectralBarrierMethod/model_problems/PLaplace2D"
	"github.com/sloisel/SpectralBarrierMethod/utils"
)

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional p-Laplace solver on the square [-1,1]^2",
	Long: `
Solves the p-Laplace Dirichlet problem on the tensor-product square with a
constant unit source and homogeneous boundary values,

sbm 2D `,
	Run: func(cmd *cobra.Command, args []string) {
		m2d := &Model2D{}
		fmt.Println("2D called")
		m2d.ICFile, _ = cmd.Flags().GetString("inputParametersFile")
		m2d.P, _ = cmd.Flags().GetFloat64("p")
		m2d.N, _ = cmd.Flags().GetInt("n")
		m2d.Tol, _ = cmd.Flags().GetFloat64("tol")
		m2d.Verbose, _ = cmd.Flags().GetBool("verbose")
		ip := processInput(m2d.ICFile)
		if cmd.Flags().Changed("p") || ip.P == 0 {
			ip.P = m2d.P
		}
		if cmd.Flags().Changed("n") || ip.Resolution == 0 {
			ip.Resolution = m2d.N
		}
		if cmd.Flags().Changed("tol") || ip.Tolerance == 0 {
			ip.Tolerance = m2d.Tol
		}
		Run2D(m2d, ip)
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().Float64P("p", "p", def_P, "energy exponent, must be at least 1")
	TwoDCmd.Flags().IntP("n", "n", def_N, "target resolution per direction of the solution field")
	TwoDCmd.Flags().Float64("tol", def_TOL, "continuation tolerance, runs until 1/t < tol")
	TwoDCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for solver parameters like:\n\t- Kappa\n\t- MaxNewton")
	TwoDCmd.Flags().BoolP("verbose", "v", false, "print continuation steps instead of a progress meter")
}

type Model2D struct {
	P       float64
	N       int
	Tol     float64
	Verbose bool
	ICFile  string
}

// processInput reads the optional YAML parameter file; flags fill in the
// rest afterward.
func processInput(icFile string) (ip *input.InputParameters) {
	var (
		err error
	)
	ip = &input.InputParameters{}
	if len(icFile) == 0 {
		return
	}
	var data []byte
	if data, err = ioutil.ReadFile(icFile); err != nil {
		panic(err)
	}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func Run2D(m2d *Model2D, ip *input.InputParameters) {
	if len(ip.Title) != 0 {
		ip.Print()
	}
	c := PLaplace2D.NewPLaplace(ip.P, ip.Resolution, nil)
	opts := ip.Options()
	opts.Verbose = m2d.Verbose
	if !opts.Verbose {
		opts.Progress = &consoleProgress{last: -1}
	}
	res := c.Run(opts)
	pts := utils.NewMatrix(4, 2, []float64{
		0, 0,
		0.5, 0,
		0.5, 0.5,
		-0.5, 0.5,
	})
	U := c.Solution(res, pts)
	for i := 0; i < 4; i++ {
		fmt.Printf("u(%5.2f,%5.2f) = %10.7f\n", pts.At(i, 0), pts.At(i, 1), U.AtVec(i))
	}
	fmt.Printf("converged = %v, steps = %d, elapsed = %v\n", res.Converged, len(res.Ts), res.Elapsed)
}
