package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/symexport/internal/config"
	"github.com/Faultbox/symexport/pkg/mesh"
)

var (
	errObjectNotFound = errors.New("object not found")
	errNoObjects      = errors.New("input contains no objects")
	errOutputExists   = errors.New("output already exists")
)

// selectObject picks the object to export. With no name it takes the first
// mesh object, or the first object at all so the exporter can report it.
func selectObject(objects []*mesh.Object, name string) (*mesh.Object, error) {
	if name != "" {
		for _, o := range objects {
			if o.Name == name {
				return o, nil
			}
		}
		return nil, fmt.Errorf("%w: %q", errObjectNotFound, name)
	}
	if len(objects) == 0 {
		return nil, errNoObjects
	}
	for _, o := range objects {
		if _, ok := o.Mesh(); ok {
			return o, nil
		}
	}
	return objects[0], nil
}

// outputPath derives the destination from the input name.
func outputPath(input string, ec config.ExportConfig) string {
	ext := ec.Extension
	if ext == "" {
		ext = config.Default().Export.Extension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ext
	dir := ec.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, name)
}

// checkDestination refuses an existing output unless overwrite is set. A
// destination that cannot be checked is refused too.
func checkDestination(path string, overwrite bool) error {
	if overwrite {
		return nil
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s (use --overwrite to replace it)", errOutputExists, path)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("checking output %s: %w", path, err)
	}
}
