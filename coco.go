package yolokit

// COCO object detection specific functionality.

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"
)

// COCOID identifies a COCO image, annotation or category. Integral numbers written with a
// fraction, e.g. 1.0, are the same id as 1.
type COCOID int64

// UnmarshalJSON implements json.Unmarshaler.
func (id *COCOID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if v, err := n.Int64(); err == nil {
		*id = COCOID(v)
		return nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return errors.Errorf("invalid id %s", b)
	}
	*id = COCOID(f)
	return nil
}

// COCOImage is an entry of the COCO "images" collection.
type COCOImage struct {
	ID       COCOID `json:"id"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// COCOAnnotation is an entry of the COCO "annotations" collection.
type COCOAnnotation struct {
	ID         COCOID    `json:"id"`
	ImageID    COCOID    `json:"image_id"`
	CategoryID COCOID    `json:"category_id"`
	BBox       []float64 `json:"bbox"` // x_min, y_min, width, height
}

// COCOCategory is an entry of the COCO "categories" collection.
type COCOCategory struct {
	ID            COCOID `json:"id"`
	Name          string `json:"name"`
	Supercategory string `json:"supercategory,omitempty"`
}

// COCODataset defines the COCO annotation file structure. A nil collection was missing from the
// document.
type COCODataset struct {
	Images      *[]COCOImage      `json:"images"`
	Annotations *[]COCOAnnotation `json:"annotations"`
	Categories  *[]COCOCategory   `json:"categories"`
}

// ReadCOCO reads and decodes the COCO document at path. Malformed JSON and missing top-level
// collections are reported as ErrParse.
func ReadCOCO(path string) (*COCODataset, error) {
	enc, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrConfig, "cannot read %q: %v", path, err)
	}

	var coco COCODataset
	if err := json.Unmarshal(enc, &coco); err != nil {
		return nil, errors.Wrapf(ErrParse, "failed to parse COCO input from %q: %v", path, err)
	}

	missing := func(key string) error {
		return errors.Wrapf(ErrParse, "missing %q in COCO input %q", key, path)
	}
	switch {
	case coco.Categories == nil:
		return nil, missing("categories")
	case coco.Annotations == nil:
		return nil, missing("annotations")
	case coco.Images == nil:
		return nil, missing("images")
	}

	return &coco, nil
}

// FromCOCO reads and parses COCO annotations from the file at path.
func FromCOCO(path string) (AnnotatedFiles, error) {
	coco, err := ReadCOCO(path)
	if err != nil {
		return nil, err
	}
	data, err := coco.ToAnnotatedFiles()
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return data, nil
}

// ToAnnotatedFiles converts the dataset to the intermediate representation, with one
// AnnotatedFile per image in document order. The annotations of each image keep their document
// order; annotations of images that are not listed are ignored.
//
// An annotation whose category_id is not defined in the categories returns an error wrapping
// ErrLookup.
func (coco *COCODataset) ToAnnotatedFiles() (AnnotatedFiles, error) {
	// Map category ids to category names.
	categories := make(map[COCOID]string, len(*coco.Categories))
	for _, c := range *coco.Categories {
		categories[c.ID] = c.Name
	}

	// Group annotations by image id.
	byImage := make(map[COCOID][]*COCOAnnotation)
	annotations := *coco.Annotations
	for i := range annotations {
		a := &annotations[i]
		byImage[a.ImageID] = append(byImage[a.ImageID], a)
	}

	data := make(AnnotatedFiles, 0, len(*coco.Images))
	for _, img := range *coco.Images {
		if img.Width <= 0 || img.Height <= 0 {
			return nil, errors.Wrapf(ErrParse, "invalid size %dx%d of image %d (%q)",
				img.Width, img.Height, img.ID, img.FileName)
		}

		fileData := AnnotatedFile{
			Annotations: make([]Annotation, 0, len(byImage[img.ID])),
			FilePath:    img.FileName,
			Width:       img.Width,
			Height:      img.Height,
		}
		for _, a := range byImage[img.ID] {
			name, ok := categories[a.CategoryID]
			if !ok {
				return nil, errors.Wrapf(ErrLookup, "unknown category_id %d in annotation %d",
					a.CategoryID, a.ID)
			}
			if len(a.BBox) < 4 {
				return nil, errors.Wrapf(ErrParse, "bbox of annotation %d has %d values, want 4",
					a.ID, len(a.BBox))
			}

			fileData.Annotations = append(fileData.Annotations, Annotation{
				Box:   BBox{X: a.BBox[0], Y: a.BBox[1], Width: a.BBox[2], Height: a.BBox[3]},
				Label: name,
			})
		}
		data = append(data, fileData)
	}

	return data, nil
}
