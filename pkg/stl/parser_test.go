package stl

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/philipparndt/printweight/pkg/geometry"
)

const asciiTetrahedron = `solid tetra
facet normal 0 0 -1
  outer loop
    vertex 0 0 0
    vertex 0 1 0
    vertex 1 0 0
  endloop
endfacet
facet normal 0 -1 0
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 0 1
  endloop
endfacet
facet normal -1 0 0
  outer loop
    vertex 0 0 0
    vertex 0 0 1
    vertex 0 1 0
  endloop
endfacet
facet normal 1 1 1
  outer loop
    vertex 1 0 0
    vertex 0 1 0
    vertex 0 0 1
  endloop
endfacet
endsolid tetra
`

// cubeModel builds a closed, outward-facing cube spanning [0,size] on all axes
func cubeModel(size float64) *Model {
	s := size
	quads := [][4]geometry.Vector3{
		{geometry.NewVector3(0, 0, 0), geometry.NewVector3(0, s, 0), geometry.NewVector3(s, s, 0), geometry.NewVector3(s, 0, 0)}, // bottom
		{geometry.NewVector3(0, 0, s), geometry.NewVector3(s, 0, s), geometry.NewVector3(s, s, s), geometry.NewVector3(0, s, s)}, // top
		{geometry.NewVector3(0, 0, 0), geometry.NewVector3(s, 0, 0), geometry.NewVector3(s, 0, s), geometry.NewVector3(0, 0, s)}, // front
		{geometry.NewVector3(0, s, 0), geometry.NewVector3(0, s, s), geometry.NewVector3(s, s, s), geometry.NewVector3(s, s, 0)}, // back
		{geometry.NewVector3(0, 0, 0), geometry.NewVector3(0, 0, s), geometry.NewVector3(0, s, s), geometry.NewVector3(0, s, 0)}, // left
		{geometry.NewVector3(s, 0, 0), geometry.NewVector3(s, s, 0), geometry.NewVector3(s, s, s), geometry.NewVector3(s, 0, s)}, // right
	}

	model := NewModel("cube")
	for _, q := range quads {
		normal := geometry.NewTriangle(geometry.Vector3{}, q[0], q[1], q[2]).CalculateNormal()
		model.AddTriangle(geometry.NewTriangle(normal, q[0], q[1], q[2]))
		model.AddTriangle(geometry.NewTriangle(normal, q[0], q[2], q[3]))
	}
	return model
}

func TestParseReaderASCII(t *testing.T) {
	model, err := ParseReader(strings.NewReader(asciiTetrahedron))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if model.Name != "tetra" {
		t.Errorf("Name failed: expected %q, got %q", "tetra", model.Name)
	}
	if model.TriangleCount() != 4 {
		t.Errorf("TriangleCount failed: expected 4, got %d", model.TriangleCount())
	}

	// Unit tetrahedron volume is 1/6
	volume := model.Volume()
	if math.Abs(volume-1.0/6.0) > 1e-10 {
		t.Errorf("Volume failed: expected %v, got %v", 1.0/6.0, volume)
	}
}

func TestParseReaderASCIIIncompleteFacet(t *testing.T) {
	broken := `solid broken
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 1 0 0
  endloop
endfacet
endsolid broken
`
	if _, err := ParseReader(strings.NewReader(broken)); err == nil {
		t.Error("expected error for facet with missing vertex, got nil")
	}
}

func TestParseReaderASCIIEmpty(t *testing.T) {
	if _, err := ParseReader(strings.NewReader("solid empty\nendsolid empty\n")); err == nil {
		t.Error("expected error for STL without facets, got nil")
	}
}

func TestParseReaderTruncated(t *testing.T) {
	if _, err := ParseReader(strings.NewReader("not an stl")); err == nil {
		t.Error("expected error for truncated input, got nil")
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	original := cubeModel(10)

	var buf bytes.Buffer
	if err := WriteBinary(&buf, original); err != nil {
		t.Fatalf("WriteBinary failed: %v", err)
	}

	parsed, err := ParseReader(&buf)
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if parsed.TriangleCount() != original.TriangleCount() {
		t.Errorf("TriangleCount failed: expected %d, got %d",
			original.TriangleCount(), parsed.TriangleCount())
	}

	// 10x10x10 cube encloses 1000 cubic units
	volume := parsed.Volume()
	if math.Abs(volume-1000.0) > 1e-6 {
		t.Errorf("Volume failed: expected 1000, got %v", volume)
	}

	area := parsed.SurfaceArea()
	if math.Abs(area-600.0) > 1e-6 {
		t.Errorf("SurfaceArea failed: expected 600, got %v", area)
	}
}

func TestBinaryTruncatedTriangles(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBinary(&buf, cubeModel(1)); err != nil {
		t.Fatalf("WriteBinary failed: %v", err)
	}

	// Chop off the last triangle record
	data := buf.Bytes()
	if _, err := ParseReader(bytes.NewReader(data[:len(data)-10])); err == nil {
		t.Error("expected error for truncated binary STL, got nil")
	}
}

func TestVolumeInvertedMesh(t *testing.T) {
	cube := cubeModel(2)

	inverted := NewModel("inverted")
	for _, tri := range cube.Triangles {
		inverted.AddTriangle(geometry.NewTriangle(tri.Normal.Mul(-1), tri.V1, tri.V3, tri.V2))
	}

	volume := inverted.Volume()
	if math.Abs(volume-(-8.0)) > 1e-10 {
		t.Errorf("Volume failed: expected -8, got %v", volume)
	}
}

func TestBoundingBox(t *testing.T) {
	cube := cubeModel(3)
	bbox := cube.BoundingBox()

	if bbox.Min != geometry.NewVector3(0, 0, 0) {
		t.Errorf("Min failed: got %v", bbox.Min)
	}
	if bbox.Max != geometry.NewVector3(3, 3, 3) {
		t.Errorf("Max failed: got %v", bbox.Max)
	}
	if math.Abs(bbox.Volume()-27.0) > 1e-10 {
		t.Errorf("BoundingBox volume failed: expected 27, got %v", bbox.Volume())
	}
}
