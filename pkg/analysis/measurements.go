package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/printweight/pkg/geometry"
	"github.com/philipparndt/printweight/pkg/stl"
)

// MeasurementResult contains the measurements of an STL model that the
// estimator and the info surfaces report
type MeasurementResult struct {
	BoundingBox       geometry.BoundingBox
	Dimensions        geometry.Vector3
	MeshVolume        float64 // signed enclosed volume, native cubic units
	BoundingBoxVolume float64
	SurfaceArea       float64
	TriangleCount     int
	EdgeCount         int
	MinEdgeLength     float64
	MaxEdgeLength     float64
	AvgEdgeLength     float64
}

// AnalyzeModel performs comprehensive analysis on an STL model
func AnalyzeModel(model *stl.Model) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   model.BoundingBox(),
		MeshVolume:    model.Volume(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
	}

	result.Dimensions = result.BoundingBox.Size()
	result.BoundingBoxVolume = result.BoundingBox.Volume()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	edgeCount := 0

	for _, triangle := range model.Triangles {
		for _, length := range triangle.EdgeLengths() {
			totalLength += length
			edgeCount++
			if length < minLength {
				minLength = length
			}
			if length > maxLength {
				maxLength = length
			}
		}
	}

	result.EdgeCount = edgeCount
	if edgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(edgeCount)
	}

	return result
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
