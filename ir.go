package yolokit

// The intermediate bounding box annotation representation.

import (
	"strings"

	"github.com/cyclopcam/logs"
	"github.com/pkg/errors"
)

// BBox is an axis-aligned rectangle in absolute pixels, given by its top-left corner and size.
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Annotation is the intermediate representation of an object label.
type Annotation struct {
	Box   BBox
	Label string
}

// AnnotatedFile is the intermediate representation of image metadata.
type AnnotatedFile struct {
	Annotations []Annotation // The annotations, in source order.
	FilePath    string       // The annotated image.
	Width       int          // Image width in pixels.
	Height      int          // Image height in pixels.
}

// AnnotatedFiles is the annotation metadata for a list of files.
type AnnotatedFiles []AnnotatedFile

// NumAnnotations is the total number of annotations over all files.
func (data AnnotatedFiles) NumAnnotations() int {
	n := 0
	for _, f := range data {
		n += len(f.Annotations)
	}
	return n
}

// MapLabels replaces label (sub-)strings with substitution values, as specified in mappings.
//
// The format of mappings is old=new.
func (data AnnotatedFiles) MapLabels(log logs.Log, mappings []string) error {
	if len(mappings) == 0 {
		return nil
	}

	// Extract the individual old and new strings to map between.
	replacements := make([]struct{ old, new string }, len(mappings))
	for i, v := range mappings {
		a := strings.Split(v, "=")
		if len(a) != 2 || a[0] == "" {
			return errors.Wrapf(ErrConfig, "invalid label mapping %q", v)
		}

		replacements[i].old = a[0]
		replacements[i].new = a[1]
	}

	// Apply the replacements, in order, to all labels.
	count := 0
	for _, f := range data {
		for i := range f.Annotations {
			a := &f.Annotations[i]

			oldLabel := a.Label
			for _, r := range replacements {
				a.Label = strings.ReplaceAll(a.Label, r.old, r.new)
			}

			if a.Label != oldLabel {
				count++
			}
		}
	}

	log.Infof("The label mappings changed %d labels", count)
	return nil
}
