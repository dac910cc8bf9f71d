// Package estimate computes an approximate print weight from a mesh
// volume and a set of print settings. The formula is an empirical
// correction over the geometric volume, not a slicer simulation, so the
// result tracks real filament usage only loosely.
package estimate

import (
	"errors"
	"math"
)

var (
	// ErrInvalidVolume is returned for a volume the formula cannot
	// evaluate: negative (inverted mesh) or non-finite.
	ErrInvalidVolume = errors.New("invalid mesh volume")

	// ErrInvalidParameters is returned for print settings outside the
	// supported domain.
	ErrInvalidParameters = errors.New("invalid print parameters")
)

// Result is the outcome of a weight estimation
type Result struct {
	VolumeMM3         float64 `json:"volume_mm3"`
	VolumeCM3         float64 `json:"volume_cm3"`
	AdjustedVolumeCM3 float64 `json:"adjusted_volume_cm3"`
	WeightGrams       float64 `json:"weight_grams"`
}

// EstimateWeight converts a mesh volume in cubic millimeters and print
// settings into an estimated weight in grams, rounded to two decimals.
//
// A zero volume (degenerate mesh) yields 0.00 g. A negative or
// non-finite volume, or non-finite settings, yield an error; range
// checks beyond that are the caller's concern (see Validate).
func EstimateWeight(volumeMM3 float64, params PrintParameters) (float64, error) {
	result, err := Estimate(volumeMM3, params)
	if err != nil {
		return 0, err
	}
	return result.WeightGrams, nil
}

// Estimate is EstimateWeight with the intermediate quantities exposed
// for display purposes.
func Estimate(volumeMM3 float64, params PrintParameters) (Result, error) {
	if math.IsNaN(volumeMM3) || math.IsInf(volumeMM3, 0) {
		return Result{}, ErrInvalidVolume
	}
	if volumeMM3 < 0 {
		return Result{}, ErrInvalidVolume
	}
	if !params.finite() {
		return Result{}, ErrInvalidParameters
	}

	volumeCM3 := volumeMM3 / 1000
	infill := params.InfillDensityPercent / 100

	// Empirical modifiers for accuracy. The constants are part of the
	// model and must not change: a fixed 10% baseline, a 70%-weighted
	// infill contribution and a 20%-weighted shell/top-bottom term.
	shellFactor := 1 + (params.WallThicknessMM/2.0)*(1-infill)
	topBottomFactor := 1 + (params.TopBottomThicknessMM/5.0)*(1-infill)

	adjustedVolume := volumeCM3 * (0.1 + 0.7*infill + 0.2*shellFactor*topBottomFactor)
	weight := adjustedVolume * params.MaterialDensity

	return Result{
		VolumeMM3:         volumeMM3,
		VolumeCM3:         volumeCM3,
		AdjustedVolumeCM3: adjustedVolume,
		WeightGrams:       round2(weight),
	}, nil
}

// round2 rounds to two decimal places. Ties round to the even digit,
// so an exact 0.125 g becomes 0.12, not 0.13.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
