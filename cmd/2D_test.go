package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"

	input "github.com/sloisel/SpectralBarrierMethod/InputParameters"
)

func TestRun2D(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
P: 1.5
Resolution: 7
Kappa: 4.
MaxNewton: 20
`)
	ip := &input.InputParameters{}
	if err = ip.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, ip.P, 1.5)
	assert.Equal(t, ip.Resolution, 7)
	ip.Print()
	// Fields from the file override the defaults, the rest keep them
	opts := ip.Options()
	assert.Equal(t, opts.Kappa, 4.)
	assert.Equal(t, opts.MaxNewton, 20)
	assert.Equal(t, opts.Tol, 1.e-8)
	assert.Equal(t, opts.Beta, 0.5)
}
