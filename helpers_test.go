package yolokit

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTestPNG writes a width x height RGBA gradient image to dir/name and returns its path.
func writeTestPNG(t *testing.T, dir, name string, width, height int) string {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

// writeTestFile writes content to dir/name and returns its path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// readTestImage decodes the image at path.
func readTestImage(t *testing.T, path string) image.Image {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	return img
}

// readTestMask decodes the 8-bit grayscale PNG at path.
func readTestMask(t *testing.T, path string) *image.Gray {
	img := readTestImage(t, path)
	gray, ok := img.(*image.Gray)
	require.True(t, ok, "%v decodes as %T, want *image.Gray", path, img)
	return gray
}
