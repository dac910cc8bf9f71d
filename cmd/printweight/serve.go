package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/printweight/internal/server"
)

var (
	serveAddr        string
	serveMaxUploadMB int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser-based estimator",
	Long: `Start an HTTP server with an upload form, a JSON estimation API and a
rendered model preview.`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "Listen address")
	serveCmd.Flags().Int64Var(&serveMaxUploadMB, "max-upload-mb", 64, "Maximum upload size in MiB")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := server.Config{
		Addr:           serveAddr,
		MaxUploadBytes: serveMaxUploadMB << 20,
	}

	fmt.Printf("Listening on %s\n", cfg.Addr)
	if err := server.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
