// Converts COCO object detection annotations to YOLO label files, one per image.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	"github.com/pkg/errors"
	"github.com/sensorable/yolokit"
)

type config struct {
	classFilePath string   // The class names, one per line.
	cocoJSONPath  string   // The COCO annotations.
	outDirPath    string   // The output directory for YOLO label files.
	labelMappings []string // old=new label (sub-)string replacements.
	tfRecordPath  string   // Optional TFRecord output file.
	imageDirPath  string   // Optional image directory for embedding images in the TFRecord.
}

// parseArgs parses and validates the command line. If the arguments are invalid, the returned
// usage text explains the error.
func parseArgs(args []string) (cfg config, usage string, err error) {
	parser := argparse.NewParser("coco2yolo", "Convert COCO format annotations to YOLO format")
	classFile := parser.String("", "class_file", &argparse.Options{
		Help: "Path to the class file, one class name per line", Required: true})
	cocoJSON := parser.String("", "coco_json", &argparse.Options{
		Help: "Path to the COCO annotations file in JSON format", Required: true})
	outDir := parser.String("", "output_directory", &argparse.Options{
		Help: "Directory where the YOLO annotations are saved", Required: true})
	mappings := parser.String("", "map_labels", &argparse.Options{
		Help: "Comma-separated list of old=new label (sub-)string replacements, applied before" +
			" the class lookup"})
	tfRecord := parser.String("", "tfrecord", &argparse.Options{
		Help: "Also write the retained boxes to this TFRecord file (with a .pbtxt label map)"})
	imageDir := parser.String("", "image_directory", &argparse.Options{
		Help: "Directory with the images, to embed them in the TFRecord output"})

	invalid := func(msg string) (config, string, error) {
		return config{}, parser.Usage(msg), errors.New(msg)
	}

	if err := parser.Parse(args); err != nil {
		return invalid(err.Error())
	}

	cfg = config{
		classFilePath: filepath.Clean(*classFile),
		cocoJSONPath:  filepath.Clean(*cocoJSON),
		outDirPath:    filepath.Clean(*outDir),
	}
	if *mappings != "" {
		cfg.labelMappings = strings.Split(*mappings, ",")
	}
	if *tfRecord != "" {
		cfg.tfRecordPath = filepath.Clean(*tfRecord)
	}
	if *imageDir != "" {
		if cfg.tfRecordPath == "" {
			return invalid("Argument --image_directory requires --tfrecord")
		}
		cfg.imageDirPath = filepath.Clean(*imageDir)
	}

	if cfg.outDirPath == cfg.classFilePath || cfg.outDirPath == cfg.cocoJSONPath {
		return invalid("The input and output paths cannot be identical")
	}

	return cfg, "", nil
}

func main() {
	log, err := logs.NewLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, usage, err := parseArgs(os.Args)
	if err != nil {
		log.Errorf("%v", err)
		fmt.Fprint(os.Stderr, usage)
		log.Close()
		os.Exit(1)
	}

	n, err := yolokit.ConvertCOCOToYOLO(log, cfg.classFilePath, cfg.cocoJSONPath, cfg.outDirPath,
		yolokit.ConvertOptions{
			LabelMappings: cfg.labelMappings,
			TFRecordPath:  cfg.tfRecordPath,
			ImageDir:      cfg.imageDirPath,
		})
	if err != nil {
		log.Errorf("Conversion failed: %v", err)
		log.Close()
		os.Exit(1)
	}

	log.Infof("Wrote labels for %d images", n)
	log.Close()
	fmt.Printf("YOLO format annotations saved to %v\n", cfg.outDirPath)
}
