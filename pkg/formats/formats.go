// Package formats provides readers and writers for the mesh file formats the
// exporter consumes and produces.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/symexport/pkg/mesh"
)

// ErrUnsupportedFormat is returned for files no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format identifies a file format by its extension.
type Format int

const (
	FormatUnknown Format = iota
	FormatOBJ            // Wavefront .obj
	FormatGLTF           // glTF 2.0, .gltf or .glb
	FormatSymbres        // .symbres
)

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "OBJ"
	case FormatGLTF:
		return "glTF"
	case FormatSymbres:
		return "SYMBRES"
	default:
		return "Unknown"
	}
}

// DetectFormat picks the format from the file extension, ignoring case.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return FormatOBJ
	case ".gltf", ".glb":
		return FormatGLTF
	case ".symbres":
		return FormatSymbres
	default:
		return FormatUnknown
	}
}

// LoadScene reads every object from an OBJ or glTF file, in file order.
func LoadScene(path string) ([]*mesh.Object, error) {
	switch f := DetectFormat(path); f {
	case FormatOBJ:
		scene, err := ParseOBJFile(path)
		if err != nil {
			return nil, err
		}
		return scene.Objects, nil
	case FormatGLTF:
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%w: %s is not a scene (%s)", ErrUnsupportedFormat, filepath.Base(path), f)
	}
}
