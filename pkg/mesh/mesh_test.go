package mesh

import (
	"errors"
	"testing"

	"github.com/Faultbox/symexport/pkg/math"
)

func TestCubeShape(t *testing.T) {
	m := Cube(2)

	if len(m.Vertices) != 8 {
		t.Errorf("expected 8 vertices, got %d", len(m.Vertices))
	}
	if len(m.Faces) != 6 {
		t.Errorf("expected 6 faces, got %d", len(m.Faces))
	}
	if got := m.TriangleCount(); got != 12 {
		t.Errorf("expected 12 triangles, got %d", got)
	}
	if got := m.CornerCount(); got != 24 {
		t.Errorf("expected 24 corners, got %d", got)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("cube should validate: %v", err)
	}
}

func TestCubeFacesPointOutward(t *testing.T) {
	m := Cube(2)
	for i, f := range m.Faces {
		n := m.FaceNormal(f)
		var centre math.Vec3
		for _, vi := range f.Verts {
			centre = centre.Add(m.Vertices[vi].Position)
		}
		if n.Dot(centre) <= 0 {
			t.Errorf("face %d normal %v points inward", i, n)
		}
	}
}

func TestRecalculateNormals(t *testing.T) {
	m := Plane(2)
	for i, v := range m.Vertices {
		if v.Normal != (math.Vec3{Z: 1}) {
			t.Errorf("plane vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}

	c := Cube(2)
	for i, v := range c.Vertices {
		// Corner normals point along the diagonal through the vertex.
		if v.Normal.Dot(v.Position.Normalize()) < 0.999 {
			t.Errorf("cube vertex %d normal %v not along %v", i, v.Normal, v.Position)
		}
	}
}

func TestActiveUVLayer(t *testing.T) {
	m := Plane(1)
	if m.ActiveUVLayer() == nil {
		t.Fatal("plane should have an active UV layer")
	}

	second := m.AddUVLayer("Lightmap")
	second.UVs[0][0] = math.Vec2{X: 0.5, Y: 0.5}
	m.ActiveUV = 1
	if got := m.ActiveUVLayer().Name; got != "Lightmap" {
		t.Errorf("expected Lightmap active, got %s", got)
	}

	m.ActiveUV = 7
	if got := m.ActiveUVLayer().Name; got != "UVMap" {
		t.Errorf("out of range ActiveUV should fall back to first layer, got %s", got)
	}

	m.UVLayers = nil
	if m.ActiveUVLayer() != nil {
		t.Error("mesh without layers should have no active UV layer")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Mesh)
	}{
		{"vertex out of range", func(m *Mesh) { m.Faces[0].Verts[2] = 42 }},
		{"negative vertex", func(m *Mesh) { m.Faces[0].Verts[0] = -1 }},
		{"two corner face", func(m *Mesh) { m.Faces = append(m.Faces, Face{Verts: []int{0, 1}}) }},
		{"uv layer face count", func(m *Mesh) { m.UVLayers[0].UVs = m.UVLayers[0].UVs[:5] }},
		{"uv layer corner count", func(m *Mesh) { m.UVLayers[0].UVs[3] = m.UVLayers[0].UVs[3][:3] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Cube(1)
			tt.mutate(m)
			err := m.Validate()
			if !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("expected ErrInvalidMesh, got %v", err)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Cube(2)
	c := orig.Clone()

	c.Vertices[0].Position.X = 100
	c.Faces[0].Verts[0] = 7
	c.UVLayers[0].UVs[0][0].Y = 0.9
	c.UVLayers[0].Name = "Changed"

	if orig.Vertices[0].Position.X == 100 {
		t.Error("clone shares vertex storage")
	}
	if orig.Faces[0].Verts[0] == 7 {
		t.Error("clone shares face storage")
	}
	if orig.UVLayers[0].UVs[0][0].Y == 0.9 {
		t.Error("clone shares uv storage")
	}
	if orig.UVLayers[0].Name != "UVMap" {
		t.Error("clone shares uv layer headers")
	}
}

func TestObjectMesh(t *testing.T) {
	m := Plane(1)
	tests := []struct {
		name string
		obj  *Object
		ok   bool
	}{
		{"mesh object", NewMeshObject(m), true},
		{"nil object", nil, false},
		{"camera", &Object{Name: "Camera", Type: ObjectCamera}, false},
		{"mesh type without data", &Object{Name: "Broken", Type: ObjectMesh}, false},
		{"light with data", &Object{Name: "Lamp", Type: ObjectLight, Data: m}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.obj.Mesh()
			if ok != tt.ok {
				t.Fatalf("Mesh() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != m {
				t.Error("Mesh() returned a different mesh")
			}
		})
	}
}

func TestObjectTypeString(t *testing.T) {
	if ObjectMesh.String() != "MESH" {
		t.Errorf("got %s", ObjectMesh.String())
	}
	if ObjectType(99).String() != "Unknown(99)" {
		t.Errorf("got %s", ObjectType(99).String())
	}
}

func TestObjectTransformOrIdentity(t *testing.T) {
	if got := NewMeshObject(Cube(1)).TransformOrIdentity(); got != math.Identity() {
		t.Errorf("NewMeshObject: got %v, want identity", got)
	}
	if got := (&Object{Name: "Empty", Type: ObjectEmpty}).TransformOrIdentity(); got != math.Identity() {
		t.Errorf("zero transform: got %v, want identity", got)
	}
	var nilObj *Object
	if got := nilObj.TransformOrIdentity(); got != math.Identity() {
		t.Errorf("nil object: got %v, want identity", got)
	}

	tr := math.Translate(1, 2, 3)
	if got := (&Object{Type: ObjectMesh, Transform: tr}).TransformOrIdentity(); got != tr {
		t.Errorf("set transform: got %v, want %v", got, tr)
	}
}
