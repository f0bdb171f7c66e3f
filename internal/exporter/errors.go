package exporter

import (
	"errors"
	"fmt"

	"github.com/Faultbox/symexport/internal/flatten"
)

// ErrorKind classifies why an export failed. Every kind is terminal.
type ErrorKind int

const (
	KindNotAMesh         ErrorKind = iota + 1 // Handle has no polygon data
	KindInvalidMesh                           // Polygon data is structurally broken
	KindMissingUVChannel                      // Mesh has no UV layer
	KindIOFailure                             // Destination could not be written
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindNotAMesh:
		return "NotAMesh"
	case KindInvalidMesh:
		return "InvalidMesh"
	case KindMissingUVChannel:
		return "MissingUVChannel"
	case KindIOFailure:
		return "IOFailure"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against an *ExportError of the same kind.
var (
	ErrNotAMesh         = errors.New("object is not a mesh")
	ErrInvalidMesh      = errors.New("invalid mesh data")
	ErrMissingUVChannel = flatten.ErrMissingUVChannel
	ErrIOFailure        = errors.New("writing export failed")
)

// ExportError is the structured failure returned by Export.
type ExportError struct {
	Kind   ErrorKind
	Object string // Name of the exported object, if known
	Path   string // Destination path
	Err    error  // Underlying cause
}

func (e *ExportError) Error() string {
	msg := fmt.Sprintf("export %s", e.Kind)
	if e.Object != "" {
		msg += fmt.Sprintf(" (object %q)", e.Object)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *ExportError) Is(target error) bool {
	switch target {
	case ErrNotAMesh:
		return e.Kind == KindNotAMesh
	case ErrInvalidMesh:
		return e.Kind == KindInvalidMesh
	case ErrMissingUVChannel:
		return e.Kind == KindMissingUVChannel
	case ErrIOFailure:
		return e.Kind == KindIOFailure
	}
	return false
}

// KindOf returns the kind of an export error, or 0 if err is not one.
func KindOf(err error) ErrorKind {
	var ee *ExportError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return 0
}
