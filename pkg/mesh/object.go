package mesh

import (
	"fmt"

	"github.com/Faultbox/symexport/pkg/math"
)

// ObjectType identifies the kind of data a scene object carries.
type ObjectType int

const (
	ObjectMesh   ObjectType = iota // Polygonal geometry
	ObjectEmpty                    // Transform only
	ObjectCamera                   // Camera
	ObjectLight                    // Lamp
	ObjectCurve                    // Curve or text
)

// String returns a human-readable object type name.
func (t ObjectType) String() string {
	switch t {
	case ObjectMesh:
		return "MESH"
	case ObjectEmpty:
		return "EMPTY"
	case ObjectCamera:
		return "CAMERA"
	case ObjectLight:
		return "LIGHT"
	case ObjectCurve:
		return "CURVE"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Object is the handle a host passes to the exporter: the selected scene
// object and whatever data it carries.
type Object struct {
	Name string
	Type ObjectType
	Data *Mesh

	// Transform places Data in the scene, in authoring axes. It is baked
	// into the exported geometry. The zero matrix means identity.
	Transform math.Mat4
}

// NewMeshObject wraps a mesh in a mesh object named after it.
func NewMeshObject(m *Mesh) *Object {
	return &Object{Name: m.Name, Type: ObjectMesh, Data: m, Transform: math.Identity()}
}

// TransformOrIdentity returns the object transform, or identity when unset.
func (o *Object) TransformOrIdentity() math.Mat4 {
	if o == nil || o.Transform == (math.Mat4{}) {
		return math.Identity()
	}
	return o.Transform
}

// Mesh returns the object's polygon data and whether it has any.
func (o *Object) Mesh() (*Mesh, bool) {
	if o == nil || o.Type != ObjectMesh || o.Data == nil {
		return nil, false
	}
	return o.Data, true
}

// String returns "name (TYPE)".
func (o *Object) String() string {
	if o == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%s)", o.Name, o.Type)
}
