package yolokit

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ClassMap assigns zero-based indices to class names by their position in a class file.
type ClassMap struct {
	Names   []string       // Class names in index order.
	indices map[string]int // Name to index.
}

// NewClassMap returns the mapping for names. If a name occurs more than once, its last position
// wins.
func NewClassMap(names []string) ClassMap {
	m := ClassMap{Names: names, indices: make(map[string]int, len(names))}
	for i, name := range names {
		m.indices[name] = i
	}
	return m
}

// LoadClasses reads the class file at path, one class name per line. Leading and trailing
// whitespace of the file is ignored, the lines themselves are taken as they are.
func LoadClasses(path string) (ClassMap, error) {
	enc, err := os.ReadFile(path)
	if err != nil {
		return ClassMap{}, errors.Wrapf(ErrConfig, "cannot read class file %q: %v", path, err)
	}

	lines := strings.Split(strings.TrimSpace(string(enc)), "\n")
	for i, v := range lines {
		lines[i] = strings.TrimSuffix(v, "\r")
	}

	return NewClassMap(lines), nil
}

// Index returns the index of the class name and whether the name is known.
func (m ClassMap) Index(name string) (int, bool) {
	i, ok := m.indices[name]
	return i, ok
}

// Len is the number of class names.
func (m ClassMap) Len() int {
	return len(m.Names)
}
