// Package mesh holds the authoring-side polygon mesh handed to the exporter.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/symexport/pkg/math"
)

// ErrInvalidMesh reports structurally broken mesh data.
var ErrInvalidMesh = errors.New("invalid mesh")

// Vertex is a shared mesh vertex.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Face is a polygon described by its loop of vertex indices.
type Face struct {
	Verts []int
}

// UVLayer maps every face corner to a texture coordinate.
// UVs[f][i] belongs to corner i of face f.
type UVLayer struct {
	Name string
	UVs  [][]math.Vec2
}

// Mesh is a polygonal mesh in the authoring tool's convention
// (Z up, bottom-left UV origin).
type Mesh struct {
	Name     string
	Vertices []Vertex
	Faces    []Face
	UVLayers []UVLayer
	ActiveUV int // Index into UVLayers
}

// ActiveUVLayer returns the UV layer used for export, or nil when the mesh
// has no UV channel.
func (m *Mesh) ActiveUVLayer() *UVLayer {
	if len(m.UVLayers) == 0 {
		return nil
	}
	if m.ActiveUV < 0 || m.ActiveUV >= len(m.UVLayers) {
		return &m.UVLayers[0]
	}
	return &m.UVLayers[m.ActiveUV]
}

// AddUVLayer appends an empty UV layer shaped to the current faces and
// returns it.
func (m *Mesh) AddUVLayer(name string) *UVLayer {
	layer := UVLayer{Name: name, UVs: make([][]math.Vec2, len(m.Faces))}
	for i, f := range m.Faces {
		layer.UVs[i] = make([]math.Vec2, len(f.Verts))
	}
	m.UVLayers = append(m.UVLayers, layer)
	return &m.UVLayers[len(m.UVLayers)-1]
}

// CornerCount returns the number of face corners before triangulation.
func (m *Mesh) CornerCount() int {
	n := 0
	for _, f := range m.Faces {
		n += len(f.Verts)
	}
	return n
}

// TriangleCount returns the number of triangles the faces decompose into.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, f := range m.Faces {
		if len(f.Verts) >= 3 {
			n += len(f.Verts) - 2
		}
	}
	return n
}

// Validate checks that faces reference existing vertices and that every UV
// layer has one coordinate per face corner.
func (m *Mesh) Validate() error {
	for fi, f := range m.Faces {
		if len(f.Verts) < 3 {
			return fmt.Errorf("%w: face %d has %d corners", ErrInvalidMesh, fi, len(f.Verts))
		}
		for _, vi := range f.Verts {
			if vi < 0 || vi >= len(m.Vertices) {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidMesh, fi, vi, len(m.Vertices))
			}
		}
	}
	for li, layer := range m.UVLayers {
		if len(layer.UVs) != len(m.Faces) {
			return fmt.Errorf("%w: uv layer %d (%q) covers %d faces, mesh has %d",
				ErrInvalidMesh, li, layer.Name, len(layer.UVs), len(m.Faces))
		}
		for fi, uvs := range layer.UVs {
			if len(uvs) != len(m.Faces[fi].Verts) {
				return fmt.Errorf("%w: uv layer %d (%q) face %d has %d coords for %d corners",
					ErrInvalidMesh, li, layer.Name, fi, len(uvs), len(m.Faces[fi].Verts))
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Name:     m.Name,
		Vertices: append([]Vertex(nil), m.Vertices...),
		Faces:    make([]Face, len(m.Faces)),
		ActiveUV: m.ActiveUV,
	}
	for i, f := range m.Faces {
		c.Faces[i] = Face{Verts: append([]int(nil), f.Verts...)}
	}
	if m.UVLayers != nil {
		c.UVLayers = make([]UVLayer, len(m.UVLayers))
		for i, l := range m.UVLayers {
			uvs := make([][]math.Vec2, len(l.UVs))
			for j, face := range l.UVs {
				uvs[j] = append([]math.Vec2(nil), face...)
			}
			c.UVLayers[i] = UVLayer{Name: l.Name, UVs: uvs}
		}
	}
	return c
}

// RecalculateNormals sets every vertex normal to the normalized, area
// weighted sum of the normals of the faces using it.
func (m *Mesh) RecalculateNormals() {
	sums := make([]math.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		n := m.FaceNormal(f)
		for _, vi := range f.Verts {
			sums[vi] = sums[vi].Add(n)
		}
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = sums[i].Normalize()
	}
}

// FaceNormal returns the Newell normal of a face. Its length is twice the
// polygon area, so it is left unnormalized.
func (m *Mesh) FaceNormal(f Face) math.Vec3 {
	var n math.Vec3
	for i, vi := range f.Verts {
		cur := m.Vertices[vi].Position
		next := m.Vertices[f.Verts[(i+1)%len(f.Verts)]].Position
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}
