package yolokit

// TFRecord object detection specific functionality.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cyclopcam/logs"
	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/ryszard/tfutils/go/example"
	"github.com/ryszard/tfutils/go/tfrecord"
	"github.com/ryszard/tfutils/proto/tensorflow/core/example" // package tensorflow
)

// TFFeatureMap maps feature names to their values. Values must be convertible to
// tensorflow.Feature.
type TFFeatureMap map[string]interface{}

// TFRecordLabelMapPath is the path of the label map written next to the record file.
func TFRecordLabelMapPath(recordFilePath string) string {
	return recordFilePath + ".pbtxt"
}

// toTFFeatures converts the intermediate representation for a single file to TFRecord features.
// Only annotations with a label in classes are included; class ids are the class index plus one,
// as id 0 is reserved for the background.
//
// If imageDir is not empty, the image is read from it and embedded.
func toTFFeatures(fileData AnnotatedFile, classes ClassMap, imageDir string) (TFFeatureMap, error) {
	f := make(TFFeatureMap, 16)
	f["image/height"] = fileData.Height
	f["image/width"] = fileData.Width
	f["image/filename"] = fileData.FilePath
	f["image/source_id"] = fileData.FilePath
	f["image/format"] = imageFormatFromExt(fileData.FilePath)

	if imageDir != "" {
		imagePath := filepath.Join(imageDir, fileData.FilePath)
		_, format, err := decodeImageConfig(imagePath)
		if err != nil {
			return nil, errors.Wrapf(ErrLoad, "failed to decode the image metadata of %q: %v",
				imagePath, err)
		}
		imgData, err := os.ReadFile(imagePath)
		if err != nil {
			return nil, errors.Wrapf(ErrLoad, "failed to read the image %q: %v", imagePath, err)
		}
		f["image/encoded"] = imgData
		f["image/format"] = format
	}

	// Prepare the per label data.
	n := len(fileData.Annotations)
	xmins := make([]float32, 0, n)
	ymins := make([]float32, 0, n)
	xmaxs := make([]float32, 0, n)
	ymaxs := make([]float32, 0, n)
	labels := make([]string, 0, n)
	classIDs := make([]int64, 0, n)
	w := float64(fileData.Width)
	h := float64(fileData.Height)
	for _, a := range fileData.Annotations {
		idx, ok := classes.Index(a.Label)
		if !ok {
			continue
		}
		xmins = append(xmins, float32(a.Box.X/w))
		ymins = append(ymins, float32(a.Box.Y/h))
		xmaxs = append(xmaxs, float32((a.Box.X+a.Box.Width)/w))
		ymaxs = append(ymaxs, float32((a.Box.Y+a.Box.Height)/h))
		labels = append(labels, a.Label)
		classIDs = append(classIDs, int64(idx+1))
	}
	f["image/object/bbox/xmin"] = xmins
	f["image/object/bbox/ymin"] = ymins
	f["image/object/bbox/xmax"] = xmaxs
	f["image/object/bbox/ymax"] = ymaxs
	f["image/object/class/text"] = labels
	f["image/object/class/label"] = classIDs

	return f, nil
}

// imageFormatFromExt guesses the image format name from the file extension of path.
func imageFormatFromExt(path string) string {
	_, _, ext := splitPath(path)
	ext = strings.ToLower(ext)
	if ext == "jpg" {
		return "jpeg"
	}
	return ext
}

// WriteTFRecord converts and serialises the annotation data to a TFRecord file at recordFilePath,
// one tensorflow.Example per file. A label map for classes is written to
// TFRecordLabelMapPath(recordFilePath).
func WriteTFRecord(log logs.Log, recordFilePath string, data AnnotatedFiles, classes ClassMap,
	imageDir string) (err error) {

	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("conversion to TensorFlow Example failed: %v", e)
		}
	}()

	file, err := os.Create(recordFilePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create the record file %q", recordFilePath)
	}
	defer closeWithErrCheck(file, &err)

	for _, fileData := range data {
		features, err := toTFFeatures(fileData, classes, imageDir)
		if err != nil {
			return err
		}
		if err := writeTFRecordExample(file, example.New(features)); err != nil {
			return errors.Wrapf(err, "failed to write the example for %q", fileData.FilePath)
		}
	}
	log.Infof("Wrote %d examples to %v", len(data), recordFilePath)

	return saveTFRecordLabelMap(TFRecordLabelMapPath(recordFilePath), classes)
}

// writeTFRecordExample serialises the example and writes it as a TFRecord to w.
func writeTFRecordExample(w io.Writer, e *tensorflow.Example) error {
	enc, err := proto.Marshal(e)
	if err != nil {
		return err
	}

	return tfrecord.Write(w, enc)
}

// saveTFRecordLabelMap writes classes in the prototxt format of the object detection
// StringIntLabelMap to path.
func saveTFRecordLabelMap(path string, classes ClassMap) error {
	var b strings.Builder
	for i, name := range classes.Names {
		if idx, _ := classes.Index(name); idx != i {
			// Duplicate class name, its last position is the one in use.
			continue
		}
		fmt.Fprintf(&b, "item {\n  id: %d\n  name: %s\n}\n", i+1, strconv.Quote(name))
	}

	if err := writeFile(path, []byte(b.String())); err != nil {
		return errors.Wrap(err, "failed to write the label map")
	}
	return nil
}
