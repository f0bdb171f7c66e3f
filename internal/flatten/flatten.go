// Package flatten turns a polygon mesh into the per-corner arrays of the
// SYMBRES format.
//
// Every triangle corner gets its own position, normal and UV, so a vertex
// shared by several faces is emitted once per corner. Positions and normals
// are converted with a Convention and V is flipped to a top-left origin.
// The source mesh is only read.
package flatten

import (
	"errors"
	"fmt"

	"github.com/Faultbox/symexport/pkg/formats"
	"github.com/Faultbox/symexport/pkg/math"
	"github.com/Faultbox/symexport/pkg/mesh"
)

// ErrMissingUVChannel is returned for meshes without a UV layer; the format
// always carries a UV block.
var ErrMissingUVChannel = errors.New("mesh has no UV channel")

// Flatten triangulates m and returns its corners in emission order:
// faces in order, triangles of each face in order, corners of each triangle
// in order. Indices run 0..N-1. A mesh without faces yields empty arrays.
func Flatten(m *mesh.Mesh, conv Convention) (*formats.Symbres, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil mesh", mesh.ErrInvalidMesh)
	}

	layer := m.ActiveUVLayer()
	if layer == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingUVChannel, m.Name)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	// Converted copies; m.Vertices is never written.
	positions := make([]math.Vec3, len(m.Vertices))
	normals := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = conv.Position(v.Position)
		normals[i] = conv.Normal(v.Normal)
	}

	n := 3 * m.TriangleCount()
	out := &formats.Symbres{
		Indices:  make([]uint32, 0, n),
		Vertices: make([]math.Vec3, 0, n),
		Normals:  make([]math.Vec3, 0, n),
		UVs:      make([]math.Vec2, 0, n),
	}

	for fi, f := range m.Faces {
		for _, tri := range Triangulate(m, f) {
			for _, loop := range tri {
				vi := f.Verts[loop]
				out.Indices = append(out.Indices, uint32(len(out.Indices)))
				out.Vertices = append(out.Vertices, positions[vi])
				out.Normals = append(out.Normals, normals[vi])
				out.UVs = append(out.UVs, layer.UVs[fi][loop].FlipV())
			}
		}
	}

	return out, nil
}
