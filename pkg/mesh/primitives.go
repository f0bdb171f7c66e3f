package mesh

import "github.com/Faultbox/symexport/pkg/math"

// unitQuadUV is the UV layout given to every quad of the primitives.
var unitQuadUV = []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

// Plane returns a single quad of the given size lying on the XY plane,
// facing +Z, with one UV layer covering the unit square.
func Plane(size float32) *Mesh {
	h := size / 2
	m := &Mesh{
		Name: "Plane",
		Vertices: []Vertex{
			{Position: math.Vec3{X: -h, Y: -h}},
			{Position: math.Vec3{X: h, Y: -h}},
			{Position: math.Vec3{X: h, Y: h}},
			{Position: math.Vec3{X: -h, Y: h}},
		},
		Faces: []Face{{Verts: []int{0, 1, 2, 3}}},
	}
	m.RecalculateNormals()
	layer := m.AddUVLayer("UVMap")
	copy(layer.UVs[0], unitQuadUV)
	return m
}

// Cube returns an axis-aligned cube of the given edge length centred on the
// origin: 8 shared vertices, 6 outward-facing quads, and one UV layer mapping
// each quad onto the unit square.
func Cube(size float32) *Mesh {
	h := size / 2
	m := &Mesh{
		Name: "Cube",
		Vertices: []Vertex{
			{Position: math.Vec3{X: -h, Y: -h, Z: -h}},
			{Position: math.Vec3{X: h, Y: -h, Z: -h}},
			{Position: math.Vec3{X: h, Y: h, Z: -h}},
			{Position: math.Vec3{X: -h, Y: h, Z: -h}},
			{Position: math.Vec3{X: -h, Y: -h, Z: h}},
			{Position: math.Vec3{X: h, Y: -h, Z: h}},
			{Position: math.Vec3{X: h, Y: h, Z: h}},
			{Position: math.Vec3{X: -h, Y: h, Z: h}},
		},
		Faces: []Face{
			{Verts: []int{0, 3, 2, 1}}, // -Z
			{Verts: []int{4, 5, 6, 7}}, // +Z
			{Verts: []int{0, 1, 5, 4}}, // -Y
			{Verts: []int{2, 3, 7, 6}}, // +Y
			{Verts: []int{3, 0, 4, 7}}, // -X
			{Verts: []int{1, 2, 6, 5}}, // +X
		},
	}
	m.RecalculateNormals()
	layer := m.AddUVLayer("UVMap")
	for i := range layer.UVs {
		copy(layer.UVs[i], unitQuadUV)
	}
	return m
}
