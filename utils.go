package yolokit

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// splitPath splits the given file path into the dir name, the base name without extension and the
// extension (without the dot). The extension is empty if the file name has none.
func splitPath(path string) (dir, baseNoExt, ext string) {
	dir, file := filepath.Split(path)
	ext = filepath.Ext(file)

	dir = strings.TrimSuffix(dir, string(os.PathSeparator))
	baseNoExt = file[0 : len(file)-len(ext)]
	ext = strings.TrimPrefix(ext, ".")

	// A leading dot starts a hidden file name, not an extension.
	if baseNoExt == "" {
		baseNoExt, ext = file, ""
	}

	return dir, baseNoExt, ext
}

// fileStem returns the base name of path with the last file extension stripped.
func fileStem(path string) string {
	_, baseNoExt, _ := splitPath(path)
	return baseNoExt
}

// ensureDir creates dirPath and any missing parents. It is not an error if the directory exists.
func ensureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return errors.Wrapf(ErrConfig, "cannot create directory %q: %v", dirPath, err)
	}
	return nil
}

// readLines returns a slice of lines read from the file at path.
func readLines(path string) (lines []string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrConfig, "cannot read file %q: %v", path, err)
	}
	defer closeWithErrCheck(file, &err)

	scanner := bufio.NewScanner(file)
	// Polygon lines can get long.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(ErrConfig, "failed to read %q as lines: %v", path, err)
	}

	return lines, nil
}

// writeFile creates or truncates the file at path and writes data to it.
func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create file %q", path)
	}
	defer closeWithErrCheck(f, &err)

	if _, err := f.Write(data); err != nil {
		return errors.Wrapf(err, "cannot write file %q", path)
	}
	return nil
}

// closeWithErrCheck calls c.Close(). If it returns an error, and (*e == nil), e is set to that
// error.
func closeWithErrCheck(c io.Closer, e *error) {
	err := c.Close()
	if err != nil && *e == nil {
		*e = err
	}
}
