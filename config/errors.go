package config

import "fmt"

// ErrorKind classifies the ways in which resolving the build configuration can
// fail.  All of them are build preconditions: none can be retried.
type ErrorKind int

// Enumeration of error kinds.
const (
	ConfigMissing   ErrorKind = iota // The config file could not be opened.
	ConfigMalformed                  // The config file could not be parsed or is incomplete.
	IconMissing                      // The compiled icon artifact could not be read.
	ConfigExists                     // A config file already exists where one would be created.
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigMissing:
		return "missing config"
	case ConfigMalformed:
		return "malformed config"
	case IconMissing:
		return "missing icon"
	case ConfigExists:
		return "config exists"
	default:
		return "unknown"
	}
}

// Error is returned by the resolver for all configuration failures.
type Error struct {
	Kind ErrorKind

	// Path is the file the error concerns.
	Path string

	// Err is the underlying error if one exists.
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: `%s`", e.Kind, e.Path)
	}

	return fmt.Sprintf("%s: `%s`: %s", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
