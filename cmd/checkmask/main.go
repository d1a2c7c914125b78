// Renders polygon annotations into binary mask images, one per class index, for visual inspection.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	"github.com/sensorable/yolokit"
)

type config struct {
	annotationPath string
	imagePath      string
	outDirPath     string
	opts           yolokit.MaskOptions
}

// parseArgs parses the command line. If the arguments are invalid, the returned usage text
// explains the error.
func parseArgs(args []string) (cfg config, usage string, err error) {
	parser := argparse.NewParser("checkmask", "Create mask images from annotations")
	annotationFile := parser.String("", "annotation_file", &argparse.Options{
		Help: "Path to the annotation file", Required: true})
	imageFile := parser.String("", "image_file", &argparse.Options{
		Help: "Path to the image file", Required: true})
	outDir := parser.String("", "output_directory", &argparse.Options{
		Help: "Directory where the output files are saved", Required: true})
	overlay := parser.Flag("", "overlay", &argparse.Options{
		Help: "Also write overlay.png with the polygon outlines drawn on the image", Default: false})
	accumulate := parser.Flag("", "accumulate", &argparse.Options{
		Help: "Merge polygons of the same class into one mask instead of keeping the last one",
		Default: false})
	if err := parser.Parse(args); err != nil {
		return config{}, parser.Usage(err), err
	}

	return config{
		annotationPath: filepath.Clean(*annotationFile),
		imagePath:      filepath.Clean(*imageFile),
		outDirPath:     filepath.Clean(*outDir),
		opts:           yolokit.MaskOptions{Overlay: *overlay, Accumulate: *accumulate},
	}, "", nil
}

func main() {
	log, err := logs.NewLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, usage, err := parseArgs(os.Args)
	if err != nil {
		fmt.Fprint(os.Stderr, usage)
		log.Close()
		os.Exit(1)
	}

	err = yolokit.RenderMasks(log, cfg.annotationPath, cfg.imagePath, cfg.outDirPath, cfg.opts)
	if err != nil {
		log.Errorf("Failed to create masks: %v", err)
		log.Close()
		os.Exit(1)
	}
	log.Close()
}
