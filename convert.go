package yolokit

import (
	"github.com/cyclopcam/logs"
)

// ConvertOptions controls optional ConvertCOCOToYOLO steps.
type ConvertOptions struct {
	LabelMappings []string // old=new label replacements applied before the class lookup.
	TFRecordPath  string   // If set, also write the retained boxes as TFRecord to this path.
	ImageDir      string   // Directory of the images, to embed them into the TFRecord.
}

// ConvertCOCOToYOLO converts the COCO annotations at cocoPath into one YOLO label file per image
// in outDir. Only annotations whose category name is listed in the class file at classPath are
// kept.
//
// Returns the number of label files written.
func ConvertCOCOToYOLO(log logs.Log, classPath, cocoPath, outDir string, opts ConvertOptions) (
	int, error) {

	classes, err := LoadClasses(classPath)
	if err != nil {
		return 0, err
	}
	log.Infof("Loaded %d class names from %v", classes.Len(), classPath)

	data, err := FromCOCO(cocoPath)
	if err != nil {
		return 0, err
	}
	log.Infof("Parsed %d annotations for %d images from %v", data.NumAnnotations(), len(data),
		cocoPath)

	if err := data.MapLabels(log, opts.LabelMappings); err != nil {
		return 0, err
	}

	yoloData := ToYOLO(log, data, classes)
	if err := WriteYOLO(outDir, yoloData); err != nil {
		return 0, err
	}

	if opts.TFRecordPath != "" {
		if err := WriteTFRecord(log, opts.TFRecordPath, data, classes, opts.ImageDir); err != nil {
			return 0, err
		}
	}

	return len(yoloData), nil
}
