package yolokit

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/llgcode/draw2d/draw2dimg"
)

// overlayPalette assigns outline colors to class indices, cycling for larger indices.
var overlayPalette = []color.RGBA{
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 0, 255, 255},
	{255, 255, 0, 255},
	{255, 0, 255, 255},
	{0, 255, 255, 255},
}

// DrawOverlay returns a copy of img with the outline of every polygon drawn on top, colored by
// class index.
func DrawOverlay(img image.Image, polygons []Polygon) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	gc := draw2dimg.NewGraphicContext(dst)
	gc.SetLineWidth(2)
	for _, p := range polygons {
		pts := p.Denormalize(b.Dx(), b.Dy())
		if len(pts) == 0 {
			continue
		}
		idx := p.ClassIndex % len(overlayPalette)
		if idx < 0 {
			idx += len(overlayPalette)
		}
		gc.SetStrokeColor(overlayPalette[idx])

		gc.BeginPath()
		gc.MoveTo(float64(pts[0].X), float64(pts[0].Y))
		for _, pt := range pts[1:] {
			gc.LineTo(float64(pt.X), float64(pt.Y))
		}
		gc.Close()
		gc.Stroke()
	}

	return dst
}
