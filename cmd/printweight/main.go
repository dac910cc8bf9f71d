package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/printweight/version"
)

var rootCmd = &cobra.Command{
	Use:   "printweight",
	Short: "A CLI tool for estimating the print weight of 3D models",
	Long: `printweight estimates how much a 3D print will weigh from the mesh
volume of an STL (or OpenSCAD) model and the print settings: material,
infill density, wall and top/bottom thickness. The estimate is an
empirical approximation, not a slicer simulation.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
