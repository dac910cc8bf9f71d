package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/printweight/pkg/estimate"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the supported materials and infill patterns",
	Args:  cobra.NoArgs,
	Run:   runMaterials,
}

func init() {
	rootCmd.AddCommand(materialsCmd)
}

func runMaterials(cmd *cobra.Command, args []string) {
	fmt.Println("Materials")
	fmt.Println("=========")
	fmt.Printf("%-10s %s\n", "Name", "Density (g/cm³)")
	fmt.Println("--------------------------")
	for _, material := range estimate.Materials() {
		fmt.Printf("%-10s %.2f\n", material.Name, material.Density)
	}

	fmt.Println()
	fmt.Println("Infill Patterns")
	fmt.Println("===============")
	for _, pattern := range estimate.InfillPatterns() {
		fmt.Printf("  %s\n", pattern)
	}
}
