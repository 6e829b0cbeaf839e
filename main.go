package main

import "github.com/sloisel/SpectralBarrierMethod/cmd"

func main() {
	cmd.Execute()
}
