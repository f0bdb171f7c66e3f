package flatten

import "github.com/Faultbox/symexport/pkg/math"

// Convention is the fixed transform from the authoring tool's axes to the
// runtime's axes. It is applied to positions and, without translation, to
// normals.
type Convention struct {
	Name   string
	Matrix math.Mat4

	// normal is set by Apply. While zero, Matrix is a pure rotation and
	// normals are rotated as they are.
	normal math.Mat4
}

var (
	// ZUpToYUp rotates -90 degrees about X: authoring +Z becomes runtime +Y
	// and authoring +Y becomes runtime -Z. This is the convention the
	// exporter writes.
	ZUpToYUp = Convention{
		Name:   "z-up to y-up",
		Matrix: math.RotateX(math.Radians(-90)),
	}

	// ZUpToYUpFlipped additionally turns the result 180 degrees about Y.
	// Files carry no marker telling the two apart.
	ZUpToYUpFlipped = Convention{
		Name:   "z-up to y-up, turned about y",
		Matrix: math.RotateY(math.Radians(180)).Mul(math.RotateX(math.Radians(-90))),
	}

	// Identity leaves coordinates untouched.
	Identity = Convention{Name: "identity", Matrix: math.Identity()}
)

// Apply returns the convention preceded by an object transform, so that
// emitted geometry is the object's placed geometry in runtime axes. Normals
// then go through the inverse transpose and are renormalized.
func (c Convention) Apply(object math.Mat4) Convention {
	if object == math.Identity() {
		return c
	}
	m := c.Matrix.Mul(object)
	return Convention{Name: c.Name, Matrix: m, normal: m.NormalMatrix()}
}

// Position converts a position.
func (c Convention) Position(p math.Vec3) math.Vec3 {
	return c.Matrix.TransformVec3(p)
}

// Normal converts a normal.
func (c Convention) Normal(n math.Vec3) math.Vec3 {
	if c.normal == (math.Mat4{}) {
		return c.Matrix.TransformDirection(n)
	}
	return c.normal.TransformDirection(n).Normalize()
}
