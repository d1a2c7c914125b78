package yolokit

// Normalized polygon annotations, one per line: <class_index> <x1> <y1> <x2> <y2> ...

import (
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Point is a polygon vertex given as fractions of the image width and height.
type Point struct {
	X float64
	Y float64
}

// Polygon is a single normalized polygon annotation.
type Polygon struct {
	ClassIndex int
	Points     []Point
}

// ParsePolygon parses the line of values for a single polygon annotation. Tokens are separated by
// arbitrary whitespace.
func ParsePolygon(line string) (Polygon, error) {
	p := Polygon{}

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return p, errors.Wrap(ErrParse, "empty annotation line")
	}

	var err error
	if p.ClassIndex, err = strconv.Atoi(tokens[0]); err != nil {
		return p, errors.Wrapf(ErrParse, "invalid class index %q: %v", tokens[0], err)
	}

	coords := tokens[1:]
	if len(coords) == 0 {
		return p, errors.Wrapf(ErrParse, "no coordinates for class %d", p.ClassIndex)
	}
	if len(coords)%2 != 0 {
		return p, errors.Wrapf(ErrParse, "odd number of coordinates (%d) for class %d",
			len(coords), p.ClassIndex)
	}

	p.Points = make([]Point, len(coords)/2)
	for i, v := range coords {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, errors.Wrapf(ErrParse, "invalid coordinate %q: %v", v, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return p, errors.Wrapf(ErrParse, "non-finite coordinate %q", v)
		}
		if i&1 == 0 {
			p.Points[i/2].X = f
		} else {
			p.Points[i/2].Y = f
		}
	}

	return p, nil
}

// ReadPolygons reads and parses all polygon annotations from the file at path, in file order.
//
// Blank and whitespace-only lines are skipped. Any other malformed line aborts reading with an
// error that wraps ErrParse and names the line.
func ReadPolygons(path string) ([]Polygon, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	polygons := make([]Polygon, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := ParsePolygon(line)
		if err != nil {
			return nil, errors.WithMessagef(err, "%s:%d", path, i+1)
		}
		polygons = append(polygons, p)
	}

	return polygons, nil
}

// maxPixelCoord bounds denormalized coordinates far outside of any image, which keeps the integer
// and float arithmetic of the rasterizer exact enough.
const maxPixelCoord = 1 << 32

// Denormalize scales the points to pixel coordinates of a width x height image. Coordinates are
// truncated toward zero and clamped to +-maxPixelCoord.
func (p Polygon) Denormalize(width, height int) []image.Point {
	pts := make([]image.Point, len(p.Points))
	for i, v := range p.Points {
		pts[i] = image.Point{X: toPixel(v.X, width), Y: toPixel(v.Y, height)}
	}
	return pts
}

func toPixel(v float64, size int) int {
	f := math.Trunc(v * float64(size))
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Max(-maxPixelCoord, math.Min(maxPixelCoord, f)))
}
