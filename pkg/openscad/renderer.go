// Package openscad renders OpenSCAD sources to STL through the external
// openscad binary, so .scad files can be estimated like plain meshes.
package openscad

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Renderer handles OpenSCAD file rendering to STL
type Renderer struct {
	workDir string
}

// NewRenderer creates a new OpenSCAD renderer
func NewRenderer(workDir string) *Renderer {
	return &Renderer{
		workDir: workDir,
	}
}

// RenderToSTL renders an OpenSCAD file to STL format
func (r *Renderer) RenderToSTL(scadFile, outputFile string) error {
	// Convert scadFile to absolute path if it's relative
	absScadFile := scadFile
	if !filepath.IsAbs(scadFile) {
		absScadFile = filepath.Join(r.workDir, scadFile)
	}

	if _, err := exec.LookPath("openscad"); err != nil {
		return fmt.Errorf("openscad not found in PATH. Please install OpenSCAD from https://openscad.org/")
	}

	cmd := exec.Command("openscad", "-o", outputFile, absScadFile)
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var errMsg strings.Builder
		errMsg.WriteString(fmt.Sprintf("failed to render %s: %v\n", scadFile, err))
		if stderr.Len() > 0 {
			errMsg.WriteString("stderr: ")
			errMsg.WriteString(stderr.String())
		}
		if stdout.Len() > 0 {
			errMsg.WriteString("stdout: ")
			errMsg.WriteString(stdout.String())
		}
		return fmt.Errorf("%s", errMsg.String())
	}

	return nil
}
