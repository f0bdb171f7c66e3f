package formats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/symexport/pkg/math"
	"github.com/Faultbox/symexport/pkg/mesh"
)

// blenderCubeOBJ is the shape Blender writes for its default cube with
// "Write Normals" and "Include UVs" enabled (trimmed to two faces).
const blenderCubeOBJ = `# Blender v2.79 (sub 0) OBJ File: ''
# www.blender.org
mtllib cube.mtl
o Cube
v 1.000000 -1.000000 -1.000000
v 1.000000 -1.000000 1.000000
v -1.000000 -1.000000 1.000000
v -1.000000 -1.000000 -1.000000
v 1.000000 1.000000 -1.000000
v 0.999999 1.000000 1.000001
vt 0.000000 0.000000
vt 1.000000 0.000000
vt 1.000000 1.000000
vt 0.000000 1.000000
vn 0.0000 -1.0000 0.0000
vn 1.0000 0.0000 0.0000
usemtl Material
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
f 1/1/2 5/2/2 6/3/2 2/4/2
`

func TestParseOBJ_BlenderCube(t *testing.T) {
	scene, err := ParseOBJ(strings.NewReader(blenderCubeOBJ))
	require.NoError(t, err)
	require.Len(t, scene.Objects, 1)

	obj := scene.Objects[0]
	assert.Equal(t, "Cube", obj.Name)
	m, ok := obj.Mesh()
	require.True(t, ok)

	assert.Len(t, m.Vertices, 6)
	require.Len(t, m.Faces, 2)
	assert.Equal(t, []int{0, 1, 2, 3}, m.Faces[0].Verts)
	assert.Equal(t, []int{0, 4, 5, 1}, m.Faces[1].Verts)

	layer := m.ActiveUVLayer()
	require.NotNil(t, layer)
	assert.Equal(t, []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, layer.UVs[0])

	// Vertex 0 is used by both faces: its normal averages -Y and +X.
	n := m.Vertices[0].Normal
	assert.InDelta(t, 0.7071, n.X, 1e-4)
	assert.InDelta(t, -0.7071, n.Y, 1e-4)
	assert.InDelta(t, 0, n.Z, 1e-6)
	// Vertex 2 is only on the bottom face.
	assert.Equal(t, math.Vec3{Y: -1}, m.Vertices[2].Normal)
}

func TestParseOBJ_CornerFormats(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 1
vn 0 0 1
f 1 2 3
f 1/1 3/2 4/1
f 1//1 2//1 3//1
f -4/-2/-1 -3/-1/-1 -2/-2/-1
`
	scene, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, scene.Objects, 1)
	assert.Equal(t, "default", scene.Objects[0].Name)

	m := scene.Objects[0].Data
	require.Len(t, m.Faces, 4)
	assert.Equal(t, []int{0, 1, 2}, m.Faces[3].Verts)

	layer := m.ActiveUVLayer()
	require.NotNil(t, layer)
	// Corners without a texcoord reference get the origin.
	assert.Equal(t, math.Vec2{}, layer.UVs[0][1])
	assert.Equal(t, math.Vec2{X: 1, Y: 1}, layer.UVs[1][1])
	assert.Equal(t, math.Vec2{X: 1, Y: 1}, layer.UVs[3][1])
}

func TestParseOBJ_NoUVsNoNormals(t *testing.T) {
	src := `o Tri
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	scene, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)

	m, ok := scene.Find("Tri").Mesh()
	require.True(t, ok)
	assert.Nil(t, m.ActiveUVLayer())
	// Normals come from the face winding.
	assert.Equal(t, math.Vec3{Z: 1}, m.Vertices[0].Normal)
}

func TestParseOBJ_MultipleObjects(t *testing.T) {
	src := `o Empty
o First
v 0 0 0
v 1 0 0
v 0 1 0
v 5 5 5
f 1 2 3
o Second
f 2 4 3
`
	scene, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, scene.Objects, 3)

	assert.Equal(t, mesh.ObjectEmpty, scene.Find("Empty").Type)
	_, ok := scene.Find("Empty").Mesh()
	assert.False(t, ok)

	second := scene.Find("Second").Data
	require.NotNil(t, second)
	// Global indices 2, 4, 3 become a compact local vertex list.
	assert.Len(t, second.Vertices, 3)
	assert.Equal(t, []int{0, 1, 2}, second.Faces[0].Verts)
	assert.Equal(t, math.Vec3{X: 5, Y: 5, Z: 5}, second.Vertices[1].Position)

	assert.Nil(t, scene.Find("Missing"))
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"short vertex", "v 1 2\n", ErrInvalidOBJ},
		{"bad float", "v 1 two 3\n", ErrInvalidOBJ},
		{"two corner face", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrInvalidOBJ},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrInvalidOBJ},
		{"index past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", ErrOBJIndexRange},
		{"relative index past start", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -4 1 2\n", ErrOBJIndexRange},
		{"texcoord past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2/1 3/1\n", ErrOBJIndexRange},
		{"malformed corner", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1/1 2 3\n", ErrInvalidOBJ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.obj")
	require.NoError(t, os.WriteFile(path, []byte(blenderCubeOBJ), 0644))

	scene, err := ParseOBJFile(path)
	require.NoError(t, err)
	assert.NotNil(t, scene.Find("Cube"))

	_, err = ParseOBJFile(filepath.Join(t.TempDir(), "nope.obj"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
