// Package render produces shaded PNG snapshots of STL models with a
// small software rasterizer. It exists so previews work headless, with
// no GPU or window system involved.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/simplify"
	"github.com/nfnt/resize"

	"github.com/philipparndt/printweight/pkg/geometry"
	"github.com/philipparndt/printweight/pkg/stl"
)

// Options controls a snapshot render
type Options struct {
	Width       int
	Height      int
	RotationX   float64 // radians around the horizontal axis
	RotationY   float64 // radians around the vertical axis
	Supersample int     // render at N x the output size, then downscale

	// MaxTriangles decimates larger meshes before rasterizing.
	// Zero disables decimation.
	MaxTriangles int

	Background color.RGBA
	FaceColor  color.RGBA
}

// DefaultOptions returns the snapshot settings used by the web UI
func DefaultOptions() Options {
	return Options{
		Width:        640,
		Height:       480,
		RotationX:    -0.45,
		RotationY:    0.6,
		Supersample:  2,
		MaxTriangles: 50000,
		Background:   color.RGBA{14, 17, 23, 255},
		FaceColor:    color.RGBA{140, 190, 230, 255},
	}
}

// Snapshot renders a single shaded view of the model
func Snapshot(model *stl.Model, opts Options) image.Image {
	if opts.Width <= 0 {
		opts.Width = 640
	}
	if opts.Height <= 0 {
		opts.Height = 480
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}

	if opts.MaxTriangles > 0 && model.TriangleCount() > opts.MaxTriangles {
		model = decimate(model, opts.MaxTriangles)
	}

	width := opts.Width * opts.Supersample
	height := opts.Height * opts.Supersample

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, opts.Background)
		}
	}

	if model.TriangleCount() == 0 {
		return scaleDown(img, opts)
	}

	camera := NewCamera(model.BoundingBox())
	camera.Rotate(opts.RotationX, opts.RotationY)

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.MaxFloat64
	}

	light := geometry.NewVector3(-0.4, 0.8, 0.45).Normalize()
	fw := float64(width)
	fh := float64(height)

	for _, triangle := range model.Triangles {
		x1, y1, z1 := camera.Project(triangle.V1, fw, fh)
		x2, y2, z2 := camera.Project(triangle.V2, fw, fh)
		x3, y3, z3 := camera.Project(triangle.V3, fw, fh)

		fillTriangleWithDepth(img, zbuffer,
			x1, y1, z1, x2, y2, z2, x3, y3, z3,
			shade(triangle, light, opts.FaceColor))
	}

	return scaleDown(img, opts)
}

// EncodePNG writes a snapshot to a stream as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// shade applies simple diffuse lighting to the face color
func shade(triangle geometry.Triangle, light geometry.Vector3, base color.RGBA) color.RGBA {
	normal := triangle.CalculateNormal()
	intensity := 0.35 + 0.65*math.Abs(normal.Dot(light))

	return color.RGBA{
		R: uint8(math.Min(255, float64(base.R)*intensity)),
		G: uint8(math.Min(255, float64(base.G)*intensity)),
		B: uint8(math.Min(255, float64(base.B)*intensity)),
		A: 255,
	}
}

// decimate reduces the triangle count to roughly the given budget
func decimate(model *stl.Model, budget int) *stl.Model {
	triangles := make([]*simplify.Triangle, 0, model.TriangleCount())
	for _, t := range model.Triangles {
		triangles = append(triangles, simplify.NewTriangle(
			simplify.Vector{X: t.V1.X, Y: t.V1.Y, Z: t.V1.Z},
			simplify.Vector{X: t.V2.X, Y: t.V2.Y, Z: t.V2.Z},
			simplify.Vector{X: t.V3.X, Y: t.V3.Y, Z: t.V3.Z},
		))
	}

	factor := float64(budget) / float64(model.TriangleCount())
	simplified := simplify.NewMesh(triangles).Simplify(factor)

	result := stl.NewModel(model.Name)
	for _, t := range simplified.Triangles {
		v1 := geometry.NewVector3(t.V1.X, t.V1.Y, t.V1.Z)
		v2 := geometry.NewVector3(t.V2.X, t.V2.Y, t.V2.Z)
		v3 := geometry.NewVector3(t.V3.X, t.V3.Y, t.V3.Z)
		tri := geometry.NewTriangle(geometry.Vector3{}, v1, v2, v3)
		tri.Normal = tri.CalculateNormal()
		result.AddTriangle(tri)
	}
	return result
}

// scaleDown resolves supersampling to the requested output size
func scaleDown(img *image.RGBA, opts Options) image.Image {
	if opts.Supersample == 1 {
		return img
	}
	return resize.Resize(uint(opts.Width), uint(opts.Height), img, resize.Lanczos3)
}
