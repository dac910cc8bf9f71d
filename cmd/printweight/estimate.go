package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/printweight/internal/loader"
	"github.com/philipparndt/printweight/pkg/estimate"
)

var (
	estMaterial  string
	estDensity   float64
	estInfill    float64
	estWall      float64
	estTopBottom float64
	estLayer     float64
	estJSON      bool

	// Advanced settings are recorded in the JSON output but do not
	// affect the weight formula.
	estPattern    string
	estWallCount  int
	estPrintSpeed float64
	estTravel     float64
	estRetraction bool
	estSupport    bool
	estAdhesion   string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [file]",
	Short: "Estimate the print weight of a model",
	Long: `Estimate the print weight of an STL or OpenSCAD model from its mesh
volume and the given print settings. Mesh coordinates are assumed to be
in millimeters.`,
	Args: cobra.ExactArgs(1),
	Run:  runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().StringVarP(&estMaterial, "material", "m", "PLA", "Material name (PLA, ABS, PETG, Nylon, TPU)")
	estimateCmd.Flags().Float64Var(&estDensity, "density", 0, "Material density in g/cm³ (overrides --material)")
	estimateCmd.Flags().Float64VarP(&estInfill, "infill", "i", 20, "Infill density in percent (0-100)")
	estimateCmd.Flags().Float64VarP(&estWall, "wall", "w", 1.2, "Wall thickness in mm")
	estimateCmd.Flags().Float64VarP(&estTopBottom, "top-bottom", "t", 0.8, "Top/bottom thickness in mm")
	estimateCmd.Flags().Float64VarP(&estLayer, "layer-height", "l", 0.3, "Layer height in mm")
	estimateCmd.Flags().BoolVar(&estJSON, "json", false, "Print the result as JSON")

	estimateCmd.Flags().StringVar(&estPattern, "infill-pattern", "Grid", "Infill pattern name")
	estimateCmd.Flags().IntVar(&estWallCount, "wall-count", 3, "Wall line count")
	estimateCmd.Flags().Float64Var(&estPrintSpeed, "print-speed", 200, "Print speed in mm/s")
	estimateCmd.Flags().Float64Var(&estTravel, "travel-speed", 125, "Travel speed in mm/s")
	estimateCmd.Flags().BoolVar(&estRetraction, "retraction", true, "Enable retraction")
	estimateCmd.Flags().BoolVar(&estSupport, "support", false, "Generate support")
	estimateCmd.Flags().StringVar(&estAdhesion, "adhesion", "None", "Build plate adhesion (None, Brim, Raft, Skirt)")
}

func runEstimate(cmd *cobra.Command, args []string) {
	filename := args[0]

	density := estDensity
	if density == 0 {
		var err error
		density, err = estimate.DensityFor(estMaterial)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	params := estimate.PrintParameters{
		MaterialDensity:      density,
		InfillDensityPercent: estInfill,
		WallThicknessMM:      estWall,
		TopBottomThicknessMM: estTopBottom,
		LayerHeightMM:        estLayer,
	}
	if err := params.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !estimate.IsValidInfillPattern(estPattern) {
		fmt.Fprintf(os.Stderr, "Error: unknown infill pattern %q\n", estPattern)
		os.Exit(1)
	}

	model, cleanup, err := loader.Load(filename)
	defer cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	result, err := estimate.Estimate(model.Volume(), params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error estimating weight: %v (the mesh may be inverted or non-manifold)\n", err)
		os.Exit(1)
	}

	if estJSON {
		output := struct {
			File     string                    `json:"file"`
			Material string                    `json:"material"`
			Settings estimate.PrintParameters  `json:"settings"`
			Advanced estimate.AdvancedSettings `json:"advanced_settings"`
			estimate.Result
		}{
			File:     filename,
			Material: estMaterial,
			Settings: params,
			Advanced: estimate.AdvancedSettings{
				WallLineCount:    estWallCount,
				InfillPattern:    estPattern,
				PrintSpeedMMS:    estPrintSpeed,
				TravelSpeedMMS:   estTravel,
				EnableRetraction: estRetraction,
				GenerateSupport:  estSupport,
				AdhesionType:     estAdhesion,
			},
			Result: result,
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Print Weight Estimate")
	fmt.Println("=====================")
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Triangles: %d\n\n", model.TriangleCount())

	fmt.Println("Settings:")
	fmt.Printf("  Material: %s (%.2f g/cm³)\n", estMaterial, density)
	fmt.Printf("  Infill: %.0f%% %s\n", estInfill, estPattern)
	fmt.Printf("  Wall Thickness: %.2f mm\n", estWall)
	fmt.Printf("  Top/Bottom Thickness: %.2f mm\n", estTopBottom)
	fmt.Printf("  Layer Height: %.2f mm\n\n", estLayer)

	fmt.Printf("Mesh Volume: %.6f cm³\n", result.VolumeCM3)
	fmt.Printf("Adjusted Volume: %.6f cm³\n\n", result.AdjustedVolumeCM3)
	fmt.Printf("Estimated Weight: %.2f g\n", result.WeightGrams)
}
