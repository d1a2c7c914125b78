package yolokit

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// MaskOn is the intensity of pixels inside a mask region.
var MaskOn = color.Gray{Y: 0xff}

// NewMask returns a zero (black) single-channel mask of the given size.
func NewMask(width, height int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, width, height))
}

// FillPolygon fills the closed polygon pts in mask with c. The interior is determined with the
// even-odd rule; pixels on the polygon outline are part of the region. Pixels outside the mask
// bounds are ignored.
func FillPolygon(mask *image.Gray, pts []image.Point, c color.Gray) {
	if len(pts) == 0 {
		return
	}
	bounds := mask.Bounds()

	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	minY = max(minY, bounds.Min.Y)
	maxY = min(maxY, bounds.Max.Y-1)

	// Scanline fill. An edge covers the half-open row range [min(y0, y1), max(y0, y1)), which
	// counts a shared vertex once and skips horizontal edges. The outline pass below closes the
	// rows left out by that rule.
	xs := make([]float64, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if a.Y == b.Y {
				continue
			}
			if a.Y > b.Y {
				a, b = b, a
			}
			if y < a.Y || y >= b.Y {
				continue
			}
			x := float64(a.X) + float64(y-a.Y)*float64(b.X-a.X)/float64(b.Y-a.Y)
			xs = append(xs, x)
		}
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			x0 := max(int(math.Ceil(xs[i])), bounds.Min.X)
			x1 := min(int(math.Floor(xs[i+1])), bounds.Max.X-1)
			for x := x0; x <= x1; x++ {
				mask.SetGray(x, y, c)
			}
		}
	}

	// Outline.
	for i := range pts {
		drawLine(mask, pts[i], pts[(i+1)%len(pts)], c)
	}
}

// drawLine draws an 8-connected line from a to b (both inclusive) with Bresenham's algorithm.
// Segments reaching outside the mask are clipped to it first, so the walk stays within the mask.
func drawLine(mask *image.Gray, a, b image.Point, c color.Gray) {
	bounds := mask.Bounds()
	if !a.In(bounds) || !b.In(bounds) {
		var ok bool
		if a, b, ok = clipSegment(a, b, bounds); !ok {
			return
		}
	}

	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	e := dx + dy
	for x, y := a.X, a.Y; ; {
		if (image.Point{X: x, Y: y}).In(bounds) {
			mask.SetGray(x, y, c)
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// clipSegment clips the segment from a to b to r with the Liang-Barsky algorithm and rounds the
// clipped end points to pixels of r. It returns false if the segment misses r.
func clipSegment(a, b image.Point, r image.Rectangle) (image.Point, image.Point, bool) {
	if r.Empty() {
		return a, b, false
	}
	x0, y0 := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X)-x0, float64(b.Y)-y0
	minX, maxX := float64(r.Min.X), float64(r.Max.X-1)
	minY, maxY := float64(r.Min.Y), float64(r.Max.Y-1)

	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = min(t1, t)
		}
		return true
	}
	if !clip(-dx, x0-minX) || !clip(dx, maxX-x0) || !clip(-dy, y0-minY) || !clip(dy, maxY-y0) {
		return a, b, false
	}

	at := func(t float64) image.Point {
		x := math.Max(minX, math.Min(maxX, math.Round(x0+t*dx)))
		y := math.Max(minY, math.Min(maxY, math.Round(y0+t*dy)))
		return image.Point{X: int(x), Y: int(y)}
	}
	return at(t0), at(t1), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
