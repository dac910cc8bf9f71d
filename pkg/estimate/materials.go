package estimate

import (
	"fmt"
	"sort"
	"strings"
)

// Material describes a printable filament material
type Material struct {
	Name    string  `json:"name"`
	Density float64 `json:"density"` // g/cm³
}

// materials is the fixed density table, in g/cm³
var materials = map[string]float64{
	"PLA":   1.24,
	"ABS":   1.04,
	"PETG":  1.27,
	"Nylon": 1.15,
	"TPU":   1.21,
}

// infillPatterns lists the supported infill pattern names. The pattern
// is recorded with the settings but does not influence the weight formula.
var infillPatterns = []string{"Grid", "Gyroid", "Cubic", "Triangles", "Honeycomb"}

// Materials returns the material table sorted by name
func Materials() []Material {
	result := make([]Material, 0, len(materials))
	for name, density := range materials {
		result = append(result, Material{Name: name, Density: density})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// DensityFor looks up the density for a material name (case-insensitive)
func DensityFor(name string) (float64, error) {
	for material, density := range materials {
		if strings.EqualFold(material, name) {
			return density, nil
		}
	}
	return 0, fmt.Errorf("unknown material %q", name)
}

// InfillPatterns returns the supported infill pattern names
func InfillPatterns() []string {
	patterns := make([]string, len(infillPatterns))
	copy(patterns, infillPatterns)
	return patterns
}

// IsValidInfillPattern reports whether name is a known infill pattern
func IsValidInfillPattern(name string) bool {
	for _, pattern := range infillPatterns {
		if strings.EqualFold(pattern, name) {
			return true
		}
	}
	return false
}
