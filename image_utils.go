package yolokit

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// decodeImageConfig opens the file at path and returns the results of image.DecodeConfig.
func decodeImageConfig(path string) (config image.Config, format string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer file.Close()

	return image.DecodeConfig(file)
}

// loadImage reads and decodes the image at path. Failures wrap ErrLoad.
func loadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrLoad, "cannot load image %q: %v", path, err)
	}
	return img, nil
}

// saveImage saves the image to path, with the encoding selected by the file extension of path.
// PNG output keeps the color model of img, so *image.Gray is written as 8-bit grayscale.
func saveImage(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrapf(err, "cannot save image %q", path)
	}
	return nil
}
