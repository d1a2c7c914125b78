package yolokit

import "github.com/pkg/errors"

// Error kinds. All returned errors wrap one of these, test with errors.Is.
var (
	ErrConfig = errors.New("config error") // Missing or unreadable input, e.g. the class file.
	ErrLoad   = errors.New("load error")   // An image could not be decoded.
	ErrParse  = errors.New("parse error")  // A malformed annotation line or JSON document.
	ErrLookup = errors.New("lookup error") // A category id missing from the category mapping.
)
