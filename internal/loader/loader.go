// Package loader resolves a model file path into a parsed mesh,
// rendering OpenSCAD sources to STL first when necessary.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/printweight/pkg/openscad"
	"github.com/philipparndt/printweight/pkg/stl"
)

// Load loads a model from either an STL or an OpenSCAD file. The
// returned cleanup function removes any temporary STL produced for an
// OpenSCAD source; it is always safe to call.
func Load(filePath string) (*stl.Model, func(), error) {
	cleanup := func() {}
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".scad":
		workDir := filepath.Dir(filePath)
		renderer := openscad.NewRenderer(workDir)

		tempFile := filepath.Join(os.TempDir(), fmt.Sprintf("printweight_%d.stl", time.Now().UnixNano()))
		if err := renderer.RenderToSTL(filePath, tempFile); err != nil {
			return nil, cleanup, fmt.Errorf("failed to render OpenSCAD file: %w", err)
		}
		cleanup = func() { os.Remove(tempFile) }

		model, err := stl.Parse(tempFile)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to parse rendered STL: %w", err)
		}
		return model, cleanup, nil

	case ".stl":
		model, err := stl.Parse(filePath)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to parse STL file: %w", err)
		}
		return model, cleanup, nil

	default:
		return nil, cleanup, fmt.Errorf("unsupported file type: %s (expected .stl or .scad)", ext)
	}
}
