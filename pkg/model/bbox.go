package model

import (
	"fmt"
	stdmath "math"

	"github.com/Faultbox/modelconv/pkg/math"
)

// BoundingBox accumulates per-axis extrema over the vertices added to it.
type BoundingBox struct {
	Min math.Vec3
	Max math.Vec3
}

// NewBoundingBox returns an empty box (Min = +Inf, Max = -Inf).
func NewBoundingBox() BoundingBox {
	inf := stdmath.Inf(1)
	return BoundingBox{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Add widens the box so it contains v.
func (b *BoundingBox) Add(v math.Vec3) {
	b.Min.X = stdmath.Min(b.Min.X, v.X)
	b.Min.Y = stdmath.Min(b.Min.Y, v.Y)
	b.Min.Z = stdmath.Min(b.Min.Z, v.Z)

	b.Max.X = stdmath.Max(b.Max.X, v.X)
	b.Max.Y = stdmath.Max(b.Max.Y, v.Y)
	b.Max.Z = stdmath.Max(b.Max.Z, v.Z)
}

// Empty returns true if no vertex has been added.
func (b BoundingBox) Empty() bool {
	return b.Min.X > b.Max.X
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Scale returns the largest extent over the three axes.
func (b BoundingBox) Scale() float64 {
	return stdmath.Max(
		stdmath.Abs(b.Max.X-b.Min.X),
		stdmath.Max(stdmath.Abs(b.Max.Y-b.Min.Y), stdmath.Abs(b.Max.Z-b.Min.Z)),
	)
}

// String returns "[minx,maxx],[miny,maxy],[minz,maxz]".
func (b BoundingBox) String() string {
	return fmt.Sprintf("[%g,%g],[%g,%g],[%g,%g]",
		b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z)
}
