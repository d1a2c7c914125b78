package yolokit

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCOCO = `{
  "images": [
    {"id": 2, "file_name": "b.png", "width": 200, "height": 100},
    {"id": 1, "file_name": "a.jpg", "width": 100, "height": 50},
    {"id": 3, "file_name": "empty.jpg", "width": 10, "height": 10}
  ],
  "annotations": [
    {"id": 10, "image_id": 1, "category_id": 5, "bbox": [10, 10, 20, 10]},
    {"id": 11, "image_id": 2, "category_id": 7, "bbox": [0, 0, 50, 50]},
    {"id": 12, "image_id": 1, "category_id": 7, "bbox": [1.5, 2.5, 3, 4]},
    {"id": 13, "image_id": 99, "category_id": 123, "bbox": [0, 0, 1, 1]}
  ],
  "categories": [
    {"id": 5, "name": "dog", "supercategory": "animal"},
    {"id": 7, "name": "bird"}
  ]
}`

func TestFromCOCO(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "coco.json", testCOCO)

	data, err := FromCOCO(path)
	require.NoError(t, err)

	// Images in document order, annotations grouped in document order, unlisted images ignored.
	require.Equal(t, AnnotatedFiles{
		{
			FilePath: "b.png", Width: 200, Height: 100,
			Annotations: []Annotation{{Label: "bird", Box: BBox{0, 0, 50, 50}}},
		},
		{
			FilePath: "a.jpg", Width: 100, Height: 50,
			Annotations: []Annotation{
				{Label: "dog", Box: BBox{10, 10, 20, 10}},
				{Label: "bird", Box: BBox{1.5, 2.5, 3, 4}},
			},
		},
		{FilePath: "empty.jpg", Width: 10, Height: 10, Annotations: []Annotation{}},
	}, data)
	assert.Equal(t, 3, data.NumAnnotations())
}

func TestFromCOCOErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind error
	}{
		{name: "Malformed", json: `{"images": [`, kind: ErrParse},
		{name: "Not an object", json: `[1, 2]`, kind: ErrParse},
		{name: "Missing categories", json: `{"images": [], "annotations": []}`, kind: ErrParse},
		{name: "Missing annotations", json: `{"images": [], "categories": []}`, kind: ErrParse},
		{name: "Missing images", json: `{"annotations": [], "categories": []}`, kind: ErrParse},
		{
			name: "Unknown category",
			json: `{"images": [{"id": 1, "file_name": "a.jpg", "width": 4, "height": 4}],
				"annotations": [{"image_id": 1, "category_id": 3, "bbox": [0, 0, 1, 1]}],
				"categories": [{"id": 1, "name": "cat"}]}`,
			kind: ErrLookup,
		},
		{
			name: "Short bbox",
			json: `{"images": [{"id": 1, "file_name": "a.jpg", "width": 4, "height": 4}],
				"annotations": [{"image_id": 1, "category_id": 1, "bbox": [0, 0, 1]}],
				"categories": [{"id": 1, "name": "cat"}]}`,
			kind: ErrParse,
		},
		{
			name: "Fractional id",
			json: `{"images": [{"id": 1.5, "file_name": "a.jpg", "width": 4, "height": 4}],
				"annotations": [], "categories": []}`,
			kind: ErrParse,
		},
		{
			name: "Zero image size",
			json: `{"images": [{"id": 1, "file_name": "a.jpg", "width": 0, "height": 4}],
				"annotations": [], "categories": []}`,
			kind: ErrParse,
		},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, dir, "coco.json", tt.json)
			_, err := FromCOCO(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}

	_, err := FromCOCO(dir + "/missing.json")
	assert.True(t, errors.Is(err, ErrConfig), "got %v", err)
}

func TestCOCOUnknownCategoryOfUnlistedImage(t *testing.T) {
	// Annotations are only resolved for listed images.
	path := writeTestFile(t, t.TempDir(), "coco.json", `{
		"images": [],
		"annotations": [{"image_id": 1, "category_id": 3, "bbox": [0, 0, 1, 1]}],
		"categories": []}`)
	data, err := FromCOCO(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCOCOFloatIDs(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "coco.json", `{
		"images": [{"id": 1.0, "file_name": "a.jpg", "width": 100, "height": 50}],
		"annotations": [{"id": 7, "image_id": 1, "category_id": 5.0, "bbox": [10, 10, 20, 10]}],
		"categories": [{"id": 5, "name": "dog"}]}`)
	data, err := FromCOCO(path)
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, []Annotation{{Label: "dog", Box: BBox{10, 10, 20, 10}}}, data[0].Annotations)
}
