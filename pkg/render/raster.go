package render

import (
	"image"
	"image/color"
	"math"
)

// fillTriangleWithDepth fills a projected triangle with depth testing
// using barycentric coordinates over the triangle's bounding box
func fillTriangleWithDepth(img *image.RGBA, zbuffer []float64, x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	bounds := img.Bounds()
	width := bounds.Max.X
	height := bounds.Max.Y

	minX := int(math.Max(0, math.Floor(math.Min(x1, math.Min(x2, x3)))))
	maxX := int(math.Min(float64(width-1), math.Ceil(math.Max(x1, math.Max(x2, x3)))))
	minY := int(math.Max(0, math.Floor(math.Min(y1, math.Min(y2, y3)))))
	maxY := int(math.Min(float64(height-1), math.Ceil(math.Max(y1, math.Max(y2, y3)))))

	if minX > maxX || minY > maxY {
		return
	}

	// Twice the signed area of the projected triangle
	area := (x2-x1)*(y3-y1) - (x3-x1)*(y2-y1)
	if math.Abs(area) < 1e-12 {
		return // Degenerate after projection
	}

	for y := minY; y <= maxY; y++ {
		fy := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			fx := float64(x) + 0.5

			w1 := ((x2-fx)*(y3-fy) - (x3-fx)*(y2-fy)) / area
			w2 := ((x3-fx)*(y1-fy) - (x1-fx)*(y3-fy)) / area
			w3 := 1 - w1 - w2

			if w1 < 0 || w2 < 0 || w3 < 0 {
				continue
			}

			depth := w1*z1 + w2*z2 + w3*z3
			index := y*width + x
			if depth >= zbuffer[index] {
				continue
			}

			zbuffer[index] = depth
			img.SetRGBA(x, y, col)
		}
	}
}
