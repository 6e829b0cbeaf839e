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

	"github.com/spf13/cobra"

	input "github.com/sloisel/SpectralBarrierMethod/InputParameters"
	"github.com/sloisel/SpectralBarrierMethod/model_problems/PLaplace1D"
	"github.com/sloisel/SpectralBarrierMethod/utils"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One dimensional p-Laplace solver on [-1,1]",
	Long: `
Solves the p-Laplace Dirichlet problem on the interval with a constant
unit source and homogeneous boundary values,

sbm 1D `,
	Run: func(cmd *cobra.Command, args []string) {
		m1d := &Model1D{}
		fmt.Println("1D called")
		m1d.ICFile, _ = cmd.Flags().GetString("inputParametersFile")
		m1d.P, _ = cmd.Flags().GetFloat64("p")
		m1d.N, _ = cmd.Flags().GetInt("n")
		m1d.Tol, _ = cmd.Flags().GetFloat64("tol")
		m1d.Verbose, _ = cmd.Flags().GetBool("verbose")
		ip := processInput(m1d.ICFile)
		if cmd.Flags().Changed("p") || ip.P == 0 {
			ip.P = m1d.P
		}
		if cmd.Flags().Changed("n") || ip.Resolution == 0 {
			ip.Resolution = m1d.N
		}
		if cmd.Flags().Changed("tol") || ip.Tolerance == 0 {
			ip.Tolerance = m1d.Tol
		}
		Run1D(m1d, ip)
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	OneDCmd.Flags().Float64P("p", "p", def_P, "energy exponent, must be at least 1")
	OneDCmd.Flags().IntP("n", "n", def_N, "target resolution of the solution field")
	OneDCmd.Flags().Float64("tol", def_TOL, "continuation tolerance, runs until 1/t < tol")
	OneDCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for solver parameters like:\n\t- Kappa\n\t- MaxNewton")
	OneDCmd.Flags().BoolP("verbose", "v", false, "print continuation steps instead of a progress meter")
}

type Model1D struct {
	P       float64
	N       int
	Tol     float64
	Verbose bool
	ICFile  string
}

var (
	def_P   = 1.0
	def_N   = 5
	def_TOL = 1.e-8
)

func Run1D(m1d *Model1D, ip *input.InputParameters) {
	if len(ip.Title) != 0 {
		ip.Print()
	}
	c := PLaplace1D.NewPLaplace(ip.P, ip.Resolution, nil)
	opts := ip.Options()
	opts.Verbose = m1d.Verbose
	if !opts.Verbose {
		opts.Progress = &consoleProgress{last: -1}
	}
	res := c.Run(opts)
	pts := utils.NewMatrix(5, 1, []float64{-1, -0.5, 0, 0.5, 1})
	U := c.Solution(res, pts)
	for i := 0; i < 5; i++ {
		fmt.Printf("u(%5.2f) = %10.7f\n", pts.At(i, 0), U.AtVec(i))
	}
	fmt.Printf("converged = %v, steps = %d, elapsed = %v\n", res.Converged, len(res.Ts), res.Elapsed)
}
