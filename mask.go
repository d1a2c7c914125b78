package yolokit

// Rendering of normalized polygon annotations to binary masks.

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/cyclopcam/logs"
)

// Output file names of RenderMasks.
const (
	OriginalImageName = "original_image.png"
	OverlayImageName  = "overlay.png"
)

// MaskOptions controls optional RenderMasks outputs. The zero value writes the image copy and one
// mask per class index only.
type MaskOptions struct {
	Overlay    bool // Also write overlay.png with all polygons outlined on the image.
	Accumulate bool // Merge polygons with the same class index instead of overwriting the mask.
}

// MaskFileName is the file name of the mask for classIndex.
func MaskFileName(classIndex int) string {
	return fmt.Sprintf("mask_for_class_%d.png", classIndex)
}

// RenderMasks writes a PNG copy of the image at imagePath and one binary mask per class index of
// the polygon annotations at annotationPath to outDir, which is created if missing.
//
// Masks are single-channel 8-bit images of the source image size with polygon regions set to
// 255. Polygons are processed in file order; unless opts.Accumulate is set, a later polygon with
// the same class index replaces the earlier mask.
func RenderMasks(log logs.Log, annotationPath, imagePath, outDir string, opts MaskOptions) error {
	img, err := loadImage(imagePath)
	if err != nil {
		return err
	}
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	log.Infof("Loaded %v (%d x %d)", imagePath, width, height)

	if err := ensureDir(outDir); err != nil {
		return err
	}

	if err := saveImage(filepath.Join(outDir, OriginalImageName), img); err != nil {
		return err
	}

	polygons, err := ReadPolygons(annotationPath)
	if err != nil {
		return err
	}
	log.Infof("Rendering %d polygons from %v", len(polygons), annotationPath)

	masks := make(map[int]*image.Gray)
	for _, p := range polygons {
		mask := masks[p.ClassIndex]
		if mask == nil || !opts.Accumulate {
			mask = NewMask(width, height)
			masks[p.ClassIndex] = mask
		}
		FillPolygon(mask, p.Denormalize(width, height), MaskOn)

		outPath := filepath.Join(outDir, MaskFileName(p.ClassIndex))
		if err := saveImage(outPath, mask); err != nil {
			return err
		}
		log.Debugf("Wrote %v", outPath)
	}

	if opts.Overlay {
		overlay := DrawOverlay(img, polygons)
		if err := saveImage(filepath.Join(outDir, OverlayImageName), overlay); err != nil {
			return err
		}
	}

	log.Infof("Wrote %d masks to %v", len(masks), outDir)
	return nil
}
