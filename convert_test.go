package yolokit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCOCOToYOLO(t *testing.T) {
	log := logs.NewTestingLog(t)
	dir := t.TempDir()
	classPath := writeTestFile(t, dir, "classes.txt", "cat\ndog\n")
	cocoPath := writeTestFile(t, dir, "coco.json", `{
		"images": [{"id": 1, "file_name": "a.jpg", "width": 100, "height": 50}],
		"annotations": [{"image_id": 1, "category_id": 5, "bbox": [10, 10, 20, 10]}],
		"categories": [{"id": 5, "name": "dog"}]}`)
	outDir := filepath.Join(dir, "out")

	n, err := ConvertCOCOToYOLO(log, classPath, cocoPath, outDir, ConvertOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	enc, err := os.ReadFile(filepath.Join(outDir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1 0.2 0.3 0.2 0.2", string(enc))
}

func TestConvertCOCOToYOLOFiltersClasses(t *testing.T) {
	log := logs.NewTestingLog(t)
	dir := t.TempDir()
	classPath := writeTestFile(t, dir, "classes.txt", "person\nmotorcycle")
	cocoPath := writeTestFile(t, dir, "coco.json", testCOCOWithPeople)
	outDir := filepath.Join(dir, "out")

	_, err := ConvertCOCOToYOLO(log, classPath, cocoPath, outDir, ConvertOptions{})
	require.NoError(t, err)

	// Without the label mapping, motorbikes are not in the class file.
	assertLabelFile(t, filepath.Join(outDir, "street.txt"), "0 0.25 0.25 0.5 0.5")
	assertLabelFile(t, filepath.Join(outDir, "empty.txt"), "")
	assertLabelFile(t, filepath.Join(outDir, "bikes.txt"), "")

	_, err = ConvertCOCOToYOLO(log, classPath, cocoPath, outDir,
		ConvertOptions{LabelMappings: []string{"motorbike=motorcycle"}})
	require.NoError(t, err)
	assertLabelFile(t, filepath.Join(outDir, "street.txt"),
		"0 0.25 0.25 0.5 0.5\n1 0.75 0.75 0.5 0.5")
	assertLabelFile(t, filepath.Join(outDir, "bikes.txt"), "1 0.5 0.5 1.0 1.0")
}

func TestConvertCOCOToYOLOErrors(t *testing.T) {
	log := logs.NewTestingLog(t)
	dir := t.TempDir()
	classPath := writeTestFile(t, dir, "classes.txt", "cat\n")
	cocoPath := writeTestFile(t, dir, "coco.json", testCOCOWithPeople)

	_, err := ConvertCOCOToYOLO(log, filepath.Join(dir, "missing.txt"), cocoPath,
		filepath.Join(dir, "out"), ConvertOptions{})
	assert.True(t, errors.Is(err, ErrConfig), "got %v", err)

	badPath := writeTestFile(t, dir, "bad.json", `{"images": []}`)
	_, err = ConvertCOCOToYOLO(log, classPath, badPath, filepath.Join(dir, "out"), ConvertOptions{})
	assert.True(t, errors.Is(err, ErrParse), "got %v", err)

	_, err = ConvertCOCOToYOLO(log, classPath, cocoPath, filepath.Join(dir, "out"),
		ConvertOptions{LabelMappings: []string{"broken"}})
	assert.True(t, errors.Is(err, ErrConfig), "got %v", err)
}

const testCOCOWithPeople = `{
  "images": [
    {"id": 1, "file_name": "street.jpg", "width": 200, "height": 100},
    {"id": 2, "file_name": "empty.jpg", "width": 10, "height": 10},
    {"id": 3, "file_name": "bikes.jpeg", "width": 40, "height": 40}
  ],
  "annotations": [
    {"image_id": 1, "category_id": 1, "bbox": [0, 0, 100, 50]},
    {"image_id": 3, "category_id": 4, "bbox": [0, 0, 40, 40]},
    {"image_id": 1, "category_id": 4, "bbox": [100, 50, 100, 50]},
    {"image_id": 1, "category_id": 2, "bbox": [5, 5, 5, 5]}
  ],
  "categories": [
    {"id": 1, "name": "person"},
    {"id": 2, "name": "bicycle"},
    {"id": 4, "name": "motorbike"}
  ]
}`

func assertLabelFile(t *testing.T, path, want string) {
	t.Helper()
	enc, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(enc))
}
