// Package math provides the vector type shared by mesh documents and their parsers.
package math

import (
	"fmt"
	"math"
)

// NormalizeEpsilon is the length below which Normalize leaves a vector untouched.
const NormalizeEpsilon = 1e-4

// Vec3 is a 3D vector. It doubles as a point, a normal, a texture coordinate
// (Z unused) and an RGB color.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// FromPoints returns the vector going from a to b.
func FromPoints(a, b Vec3) Vec3 {
	return b.Sub(a)
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector. Vectors shorter than NormalizeEpsilon are
// returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l <= NormalizeEpsilon {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Component returns the coordinate on axis 0 (X), 1 (Y) or 2 (Z).
func (v Vec3) Component(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// String returns "(x, y, z)".
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
