package estimate

import (
	"fmt"
	"math"
)

// PrintParameters holds the print settings consumed by the weight formula.
// Values are treated as immutable once constructed.
type PrintParameters struct {
	MaterialDensity      float64 `json:"material_density"`       // g/cm³
	InfillDensityPercent float64 `json:"infill_density_percent"` // 0..100
	WallThicknessMM      float64 `json:"wall_thickness_mm"`
	TopBottomThicknessMM float64 `json:"top_bottom_thickness_mm"`
	LayerHeightMM        float64 `json:"layer_height_mm"` // recorded, not used by the formula
}

// DefaultParameters returns the basic-mode defaults with PLA density
func DefaultParameters() PrintParameters {
	return PrintParameters{
		MaterialDensity:      materials["PLA"],
		InfillDensityPercent: 20,
		WallThicknessMM:      1.2,
		TopBottomThicknessMM: 0.8,
		LayerHeightMM:        0.3,
	}
}

// Validate checks the range invariants. The estimator itself only rejects
// what the formula cannot evaluate; callers at the input boundary use
// Validate to reject out-of-range settings before estimating.
func (p PrintParameters) Validate() error {
	if !p.finite() {
		return fmt.Errorf("%w: parameters must be finite", ErrInvalidParameters)
	}
	if p.MaterialDensity <= 0 {
		return fmt.Errorf("%w: material density must be positive, got %g", ErrInvalidParameters, p.MaterialDensity)
	}
	if p.InfillDensityPercent < 0 || p.InfillDensityPercent > 100 {
		return fmt.Errorf("%w: infill density must be between 0 and 100, got %g", ErrInvalidParameters, p.InfillDensityPercent)
	}
	if p.WallThicknessMM <= 0 {
		return fmt.Errorf("%w: wall thickness must be positive, got %g", ErrInvalidParameters, p.WallThicknessMM)
	}
	if p.TopBottomThicknessMM <= 0 {
		return fmt.Errorf("%w: top/bottom thickness must be positive, got %g", ErrInvalidParameters, p.TopBottomThicknessMM)
	}
	if p.LayerHeightMM <= 0 {
		return fmt.Errorf("%w: layer height must be positive, got %g", ErrInvalidParameters, p.LayerHeightMM)
	}
	return nil
}

func (p PrintParameters) finite() bool {
	for _, v := range []float64{
		p.MaterialDensity,
		p.InfillDensityPercent,
		p.WallThicknessMM,
		p.TopBottomThicknessMM,
		p.LayerHeightMM,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// AdvancedSettings collects the advanced-mode inputs. They are accepted
// and echoed back through the front ends but the weight formula does not
// consult them; the estimate is a heuristic, not a slicing simulation.
type AdvancedSettings struct {
	InitialLayerHeightMM float64 `json:"initial_layer_height_mm"`
	LineWidthMM          float64 `json:"line_width_mm"`
	WallLineCount        int     `json:"wall_line_count"`
	InfillPattern        string  `json:"infill_pattern"`
	InfillOverlapPercent float64 `json:"infill_overlap_percent"`
	TopLayers            int     `json:"top_layers"`
	BottomLayers         int     `json:"bottom_layers"`
	PrintSpeedMMS        float64 `json:"print_speed_mms"`
	TravelSpeedMMS       float64 `json:"travel_speed_mms"`
	EnableRetraction     bool    `json:"enable_retraction"`
	GenerateSupport      bool    `json:"generate_support"`
	AdhesionType         string  `json:"adhesion_type"` // None, Brim, Raft, Skirt
}
