package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/printweight/internal/loader"
	"github.com/philipparndt/printweight/pkg/render"
)

var (
	previewOutput    string
	previewWidth     int
	previewHeight    int
	previewRotationX float64
	previewRotationY float64
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Render a PNG snapshot of a model",
	Long:  "Render a shaded snapshot of an STL or OpenSCAD model to a PNG file, without a GPU or window system.",
	Args:  cobra.ExactArgs(1),
	Run:   runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "preview.png", "Output PNG file")
	previewCmd.Flags().IntVar(&previewWidth, "width", 640, "Image width in pixels")
	previewCmd.Flags().IntVar(&previewHeight, "height", 480, "Image height in pixels")
	previewCmd.Flags().Float64Var(&previewRotationX, "rotation-x", -0.45, "Camera rotation around the horizontal axis in radians")
	previewCmd.Flags().Float64Var(&previewRotationY, "rotation-y", 0.6, "Camera rotation around the vertical axis in radians")
}

func runPreview(cmd *cobra.Command, args []string) {
	filename := args[0]

	model, cleanup, err := loader.Load(filename)
	defer cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	opts := render.DefaultOptions()
	opts.Width = previewWidth
	opts.Height = previewHeight
	opts.RotationX = previewRotationX
	opts.RotationY = previewRotationY

	out, err := os.Create(previewOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := render.EncodePNG(out, render.Snapshot(model, opts)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %s (%d triangles) to %s\n", filename, model.TriangleCount(), previewOutput)
}
