// File: confstore/errors.go
package confstore

import "errors"

var (
	// ErrKeyNotFound is returned by Get and Remove for an absent key.
	ErrKeyNotFound = errors.New("confstore: key not found")

	// ErrInvalidKey is returned by Set when the key is empty.
	ErrInvalidKey = errors.New("confstore: invalid key")

	// ErrValidationFailed is returned when a per-key validator rejects a
	// value, or when Validate finds a missing key or failing predicate.
	ErrValidationFailed = errors.New("confstore: validation failed")

	// ErrUnsupportedFormat is returned for file extensions other than
	// .json, .yaml, and .yml.
	ErrUnsupportedFormat = errors.New("confstore: unsupported file format")

	// ErrFileOpen is returned when a load or save target is inaccessible.
	ErrFileOpen = errors.New("confstore: cannot open file")

	// ErrParse is returned for malformed JSON or YAML content.
	ErrParse = errors.New("confstore: cannot parse file")

	// ErrUnsupportedEnvironment is returned by CreateForEnvironment for
	// names outside the known preset set.
	ErrUnsupportedEnvironment = errors.New("confstore: unsupported environment")
)
