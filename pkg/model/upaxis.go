package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/modelconv/pkg/math"
)

// ErrUnsupportedUpConversion is returned for axis pairs without a defined mapping.
var ErrUnsupportedUpConversion = errors.New("unsupported up-axis conversion")

// Axis names a coordinate axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns "x", "y" or "z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis parses an axis name (case-insensitive).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}

// UpConversion permutes vertex coordinates to move the "up" axis.
type UpConversion struct {
	From Axis
	To   Axis
}

// String returns "from->to".
func (c UpConversion) String() string {
	return c.From.String() + "->" + c.To.String()
}

// Matrix returns the permutation matrix for the conversion.
// Identity when From == To, (x,y,z)->(y,z,x) for y->z and (x,y,z)->(z,x,y) for z->y.
func (c UpConversion) Matrix() (mgl64.Mat3, error) {
	switch {
	case c.From == c.To:
		return mgl64.Ident3(), nil
	case c.From == AxisY && c.To == AxisZ:
		return mgl64.Mat3FromRows(
			mgl64.Vec3{0, 1, 0},
			mgl64.Vec3{0, 0, 1},
			mgl64.Vec3{1, 0, 0},
		), nil
	case c.From == AxisZ && c.To == AxisY:
		return mgl64.Mat3FromRows(
			mgl64.Vec3{0, 0, 1},
			mgl64.Vec3{1, 0, 0},
			mgl64.Vec3{0, 1, 0},
		), nil
	default:
		return mgl64.Mat3{}, fmt.Errorf("%w: %s", ErrUnsupportedUpConversion, c)
	}
}

// Apply converts a single vector.
func (c UpConversion) Apply(v math.Vec3) (math.Vec3, error) {
	m, err := c.Matrix()
	if err != nil {
		return v, err
	}
	return applyMatrix(m, v), nil
}

func applyMatrix(m mgl64.Mat3, v math.Vec3) math.Vec3 {
	r := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return math.Vec3{X: r[0], Y: r[1], Z: r[2]}
}
