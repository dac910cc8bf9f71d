package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/printweight/internal/loader"
	"github.com/philipparndt/printweight/pkg/analysis"
	"github.com/philipparndt/printweight/pkg/estimate"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a model",
	Long:  "Show dimensions, triangle count, surface area, mesh volume and the estimated weight at default print settings.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	model, cleanup, err := loader.Load(filename)
	defer cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	result := analysis.AnalyzeModel(model)

	fmt.Println("Model Information")
	fmt.Println("=================")
	if model.Name != "" {
		fmt.Printf("Name: %s\n", model.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Surface Area: %.6f mm²\n", result.SurfaceArea)
	fmt.Printf("  Mesh Volume: %.6f mm³ (%.6f cm³)\n\n", result.MeshVolume, result.MeshVolume/1000)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f mm\n", result.Dimensions.X)
	fmt.Printf("  Depth (Y): %.6f mm\n", result.Dimensions.Y)
	fmt.Printf("  Height (Z): %.6f mm\n", result.Dimensions.Z)
	fmt.Printf("  Diagonal: %.6f mm\n", result.BoundingBox.Diagonal())
	fmt.Printf("  Box Volume: %.6f mm³\n\n", result.BoundingBoxVolume)

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f mm\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f mm\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f mm\n\n", result.AvgEdgeLength)

	// Weight at basic-mode defaults, as a quick reference
	if weight, err := estimate.EstimateWeight(result.MeshVolume, estimate.DefaultParameters()); err == nil {
		fmt.Printf("Estimated Weight (PLA, 20%% infill): %.2f g\n", weight)
	} else {
		fmt.Printf("Estimated Weight: not available (%v)\n", err)
	}
}
