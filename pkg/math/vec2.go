// Package math provides the float32 vector and matrix types used by the
// export pipeline.
package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector. Its memory layout matches a pair of little-endian
// float32 values so it can be written directly with encoding/binary.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Cross returns the z component of the 3D cross product of v and other.
func (v Vec2) Cross(other Vec2) float32 {
	return v.X*other.Y - v.Y*other.X
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// FlipV converts a texture coordinate between bottom-left and top-left
// origin conventions. Applying it twice yields the original value.
func (v Vec2) FlipV() Vec2 {
	return Vec2{v.X, 1.0 - v.Y}
}
