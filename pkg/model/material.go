package model

import (
	"sync"

	"github.com/Faultbox/modelconv/pkg/math"
)

// Texture references a texture image on disk. Only its header is inspected;
// pixel decoding belongs to the renderer.
type Texture struct {
	Path   string // Absolute or model-relative path of the image
	Format string // Decoder name ("png", "tga", ...)
	Width  int
	Height int
}

// Material holds the color attributes faces can refer to.
type Material struct {
	Name     string
	Ambient  math.Vec3 // Ka
	Diffuse  math.Vec3 // Kd
	Specular math.Vec3 // Ks
	Texture  *Texture  // map_Kd, nil when absent or unreadable
}

// NewMaterial returns a named material with zero colors.
func NewMaterial(name string) *Material {
	return &Material{Name: name}
}

// HasTexture returns true if a texture image is attached.
func (m *Material) HasTexture() bool {
	return m != nil && m.Texture != nil
}

var defaultMaterial = sync.OnceValue(func() *Material {
	return &Material{
		Name:     "",
		Ambient:  math.Vec3{X: 1, Y: 1, Z: 1},
		Diffuse:  math.Vec3{},
		Specular: math.Vec3{},
		Texture:  &Texture{Format: "builtin", Width: 1, Height: 1},
	}
})

// DefaultMaterial returns the shared white material used for faces that do not
// declare one. The returned value is shared and must not be modified.
func DefaultMaterial() *Material {
	return defaultMaterial()
}

// IsDefault returns true if m is the shared default material.
func (m *Material) IsDefault() bool {
	return m == DefaultMaterial()
}
