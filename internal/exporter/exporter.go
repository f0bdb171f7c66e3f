// Package exporter implements the export operation: take the host's selected
// object and a destination path, write a SYMBRES file or fail with a
// structured error. The host object is never modified, and the destination is
// replaced atomically so a failed export leaves no partial file behind.
package exporter

import (
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/symexport/internal/flatten"
	"github.com/Faultbox/symexport/pkg/formats"
	"github.com/Faultbox/symexport/pkg/math"
	"github.com/Faultbox/symexport/pkg/mesh"
)

// DefaultPerm is the mode of written files.
const DefaultPerm os.FileMode = 0644

// Result describes a successful export.
type Result struct {
	Object    string
	Path      string
	Corners   int
	Triangles int
	Bytes     int64
}

// Exporter writes mesh objects as SYMBRES files.
type Exporter struct {
	Convention flatten.Convention
	Perm       os.FileMode
	Log        *zap.Logger
}

// New returns an Exporter using the fixed Z-up to Y-up conversion.
// A nil logger disables logging.
func New(log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{
		Convention: flatten.ZUpToYUp,
		Perm:       DefaultPerm,
		Log:        log,
	}
}

// Export writes obj to path with default settings.
func Export(obj *mesh.Object, path string) (Result, error) {
	return New(nil).Export(obj, path)
}

// Export flattens obj and writes it to path.
func (e *Exporter) Export(obj *mesh.Object, path string) (Result, error) {
	m, ok := obj.Mesh()
	if !ok {
		name := ""
		if obj != nil {
			name = obj.Name
		}
		return Result{}, &ExportError{Kind: KindNotAMesh, Object: name, Path: path, Err: ErrNotAMesh}
	}

	placed := obj.TransformOrIdentity() != math.Identity()
	e.logger().Debug("Exporting",
		zap.String("object", obj.Name),
		zap.String("path", path),
		zap.String("convention", e.Convention.Name),
		zap.Bool("transformed", placed),
		zap.Int("faces", len(m.Faces)),
	)

	// The object transform is baked in ahead of the axis conversion; the
	// object itself keeps its transform and data.
	conv := e.Convention.Apply(obj.TransformOrIdentity())
	flat, err := flatten.Flatten(m, conv)
	if err != nil {
		kind := KindInvalidMesh
		if errors.Is(err, flatten.ErrMissingUVChannel) {
			kind = KindMissingUVChannel
		}
		return Result{}, &ExportError{Kind: kind, Object: obj.Name, Path: path, Err: err}
	}

	if err := e.writeFile(path, flat); err != nil {
		return Result{}, &ExportError{Kind: KindIOFailure, Object: obj.Name, Path: path, Err: err}
	}

	res := Result{
		Object:    obj.Name,
		Path:      path,
		Corners:   flat.Len(),
		Triangles: flat.Triangles(),
		Bytes:     flat.Size(),
	}
	e.logger().Info("Export complete",
		zap.String("object", res.Object),
		zap.String("path", res.Path),
		zap.Int("corners", res.Corners),
		zap.Int("triangles", res.Triangles),
		zap.Int64("bytes", res.Bytes),
	)
	return res, nil
}

// writeFile encodes s into a temp file next to path, then renames it over
// path. The temp file is removed if anything fails before the rename.
func (e *Exporter) writeFile(path string, s *formats.Symbres) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if err := formats.EncodeSymbres(f, s); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(e.perm()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

func (e *Exporter) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e *Exporter) perm() os.FileMode {
	if e.Perm == 0 {
		return DefaultPerm
	}
	return e.Perm
}
