package yolokit

// YOLO specific functionality.

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cyclopcam/logs"
)

// YOLOAnnotation is a single annotation within a YOLO file. The geometry is normalised by the
// image width and height.
type YOLOAnnotation struct {
	ClassIndex int
	XCenter    float64
	YCenter    float64
	Width      float64
	Height     float64
}

// String formats the annotation as a YOLO label line.
func (a YOLOAnnotation) String() string {
	return strconv.Itoa(a.ClassIndex) + " " + formatFloat(a.XCenter) + " " +
		formatFloat(a.YCenter) + " " + formatFloat(a.Width) + " " + formatFloat(a.Height)
}

// YOLOAnnotatedFile defines the YOLO annotation structure for a single image.
type YOLOAnnotatedFile struct {
	Annotations []YOLOAnnotation
	FilePath    string // The annotated image.
}

// LabelFileName is the name of the label file for the image, i.e. its base name with the file
// extension replaced by ".txt".
func (f YOLOAnnotatedFile) LabelFileName() string {
	return fileStem(f.FilePath) + ".txt"
}

// Encode returns the label lines joined by newlines, without a trailing newline.
func (f YOLOAnnotatedFile) Encode() []byte {
	lines := make([]string, len(f.Annotations))
	for i, a := range f.Annotations {
		lines[i] = a.String()
	}
	return []byte(strings.Join(lines, "\n"))
}

// toYOLOAnnotation converts a pixel bounding box of an imgWidth x imgHeight image to the center
// normalised YOLO form.
func toYOLOAnnotation(classIndex int, b BBox, imgWidth, imgHeight int) YOLOAnnotation {
	w := float64(imgWidth)
	h := float64(imgHeight)
	return YOLOAnnotation{
		ClassIndex: classIndex,
		XCenter:    (b.X + b.Width/2) / w,
		YCenter:    (b.Y + b.Height/2) / h,
		Width:      b.Width / w,
		Height:     b.Height / h,
	}
}

// ToBBox converts the annotation back to a pixel bounding box of an imgWidth x imgHeight image.
func (a YOLOAnnotation) ToBBox(imgWidth, imgHeight int) BBox {
	w := a.Width * float64(imgWidth)
	h := a.Height * float64(imgHeight)
	return BBox{
		X:      a.XCenter*float64(imgWidth) - w/2,
		Y:      a.YCenter*float64(imgHeight) - h/2,
		Width:  w,
		Height: h,
	}
}

// ToYOLO converts the intermediate representation to YOLO format, with one element per file.
//
// Labels are mapped to class indices with classes. Annotations with a label that is not in
// classes are dropped, which is how the class file selects the classes to keep.
func ToYOLO(log logs.Log, data AnnotatedFiles, classes ClassMap) []YOLOAnnotatedFile {
	yoloData := make([]YOLOAnnotatedFile, 0, len(data))
	skipped := make(map[string]int)
	for _, fileData := range data {
		yoloFileData := YOLOAnnotatedFile{
			Annotations: make([]YOLOAnnotation, 0, len(fileData.Annotations)),
			FilePath:    fileData.FilePath,
		}
		for _, a := range fileData.Annotations {
			idx, ok := classes.Index(a.Label)
			if !ok {
				skipped[a.Label]++
				continue
			}
			yoloFileData.Annotations = append(yoloFileData.Annotations,
				toYOLOAnnotation(idx, a.Box, fileData.Width, fileData.Height))
		}
		yoloData = append(yoloData, yoloFileData)
	}

	for label, n := range skipped {
		log.Debugf("Skipped %d annotations with label %q (not in the class file)", n, label)
	}
	if len(skipped) > 0 {
		log.Infof("Skipped annotations of %d labels that are not in the class file", len(skipped))
	}

	return yoloData
}

// WriteYOLO writes data to dirPath, one label file per element, creating dirPath if it does not
// exist. Files are written for every element, so images without annotations get an empty file.
func WriteYOLO(dirPath string, data []YOLOAnnotatedFile) error {
	if err := ensureDir(dirPath); err != nil {
		return err
	}

	for _, fileData := range data {
		filePath := filepath.Join(dirPath, fileData.LabelFileName())
		if err := writeFile(filePath, fileData.Encode()); err != nil {
			return err
		}
	}

	return nil
}

// formatFloat returns the shortest decimal representation of v that parses back to v. Magnitudes
// below 1e-4 or from 1e16 up use exponent notation and integral values get a ".0" suffix, e.g. 0.2,
// 1.0, 1e-05.
func formatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
