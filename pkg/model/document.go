// Package model holds the format-agnostic mesh document that parsers fill in
// and exporters read.
package model

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/modelconv/pkg/math"
)

// Document errors.
var (
	ErrIndexOutOfRange    = errors.New("face index out of range")
	ErrNormalModeConflict = errors.New("vertex and face normals cannot be mixed")
)

// NormalMode describes how the normals array relates to the rest of the document.
type NormalMode int

const (
	NormalsNone      NormalMode = iota // No normals
	NormalsExplicit                    // Normals read from the source file
	NormalsPerVertex                   // One generated normal per vertex
	NormalsPerFace                     // One generated normal per face
)

// String returns a human-readable mode name.
func (m NormalMode) String() string {
	switch m {
	case NormalsNone:
		return "None"
	case NormalsExplicit:
		return "Explicit"
	case NormalsPerVertex:
		return "PerVertex"
	case NormalsPerFace:
		return "PerFace"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Document is an in-memory mesh. It is filled through AddVertex, AddNormal,
// AddTexCoord, AddColor and AddFace; the accessors return slices that callers
// must treat as read-only.
type Document struct {
	sourcePath string
	up         *UpConversion
	upMatrix   *mgl64.Mat3

	vertices  []math.Vec3
	normals   []math.Vec3
	texCoords []math.Vec3
	colors    []math.Vec3
	parts     []*MeshPart

	bbox       BoundingBox
	normalMode NormalMode
}

// NewDocument creates an empty document. up may be nil.
func NewDocument(sourcePath string, up *UpConversion) (*Document, error) {
	doc := &Document{
		sourcePath: sourcePath,
		bbox:       NewBoundingBox(),
	}

	if up != nil {
		m, err := up.Matrix()
		if err != nil {
			return nil, err
		}
		conv := *up
		doc.up = &conv
		if conv.From != conv.To {
			doc.upMatrix = &m
		}
	}

	return doc, nil
}

// SourcePath returns the path the document was loaded from.
func (d *Document) SourcePath() string { return d.sourcePath }

// UpConversion returns the conversion applied on ingestion, or nil.
func (d *Document) UpConversion() *UpConversion { return d.up }

// Vertices returns the vertex positions.
func (d *Document) Vertices() []math.Vec3 { return d.vertices }

// Normals returns the normals.
func (d *Document) Normals() []math.Vec3 { return d.normals }

// TexCoords returns the texture coordinates (Z unused).
func (d *Document) TexCoords() []math.Vec3 { return d.texCoords }

// Colors returns the colors.
func (d *Document) Colors() []math.Vec3 { return d.colors }

// Parts returns the mesh parts in face order.
func (d *Document) Parts() []*MeshPart { return d.parts }

// BoundingBox returns the box over all vertices added so far.
func (d *Document) BoundingBox() BoundingBox { return d.bbox }

// NormalMode returns how the normals array is organized.
func (d *Document) NormalMode() NormalMode { return d.normalMode }

func (d *Document) convert(v math.Vec3) math.Vec3 {
	if d.upMatrix == nil {
		return v
	}
	return applyMatrix(*d.upMatrix, v)
}

// AddVertex appends a vertex after up-axis conversion and returns its index.
func (d *Document) AddVertex(v math.Vec3) int {
	v = d.convert(v)
	d.vertices = append(d.vertices, v)
	d.bbox.Add(v)
	return len(d.vertices) - 1
}

// AddNormal appends a source normal after up-axis conversion and returns its index.
func (d *Document) AddNormal(n math.Vec3) int {
	if d.normalMode == NormalsNone {
		d.normalMode = NormalsExplicit
	}
	d.normals = append(d.normals, d.convert(n))
	return len(d.normals) - 1
}

// AddTexCoord appends a texture coordinate and returns its index.
func (d *Document) AddTexCoord(t math.Vec3) int {
	d.texCoords = append(d.texCoords, t)
	return len(d.texCoords) - 1
}

// AddColor appends a color and returns its index.
func (d *Document) AddColor(c math.Vec3) int {
	d.colors = append(d.colors, c)
	return len(d.colors) - 1
}

// AddFace validates the face indices and appends it to the current mesh part.
// A new part is started when the face declares a material different from the
// material the current part already has.
func (d *Document) AddFace(f Face) error {
	for i, c := range f.Corners() {
		if err := d.checkCorner(c); err != nil {
			return fmt.Errorf("corner %d: %w", i, err)
		}
	}

	if len(d.parts) == 0 {
		d.parts = append(d.parts, &MeshPart{})
	}
	part := d.parts[len(d.parts)-1]

	if f.Material != nil {
		switch {
		case part.Material == nil:
			part.Material = f.Material
		case part.Material != f.Material:
			part = &MeshPart{Material: f.Material}
			d.parts = append(d.parts, part)
		}
	}

	part.Faces = append(part.Faces, f)
	return nil
}

func (d *Document) checkCorner(c FaceVertex) error {
	if c.Vertex < 0 || c.Vertex >= len(d.vertices) {
		return fmt.Errorf("%w: vertex %d (have %d)", ErrIndexOutOfRange, c.Vertex, len(d.vertices))
	}
	if c.TexCoord != NoIndex && (c.TexCoord < 0 || c.TexCoord >= len(d.texCoords)) {
		return fmt.Errorf("%w: tex coord %d (have %d)", ErrIndexOutOfRange, c.TexCoord, len(d.texCoords))
	}
	if c.Normal != NoIndex && (c.Normal < 0 || c.Normal >= len(d.normals)) {
		return fmt.Errorf("%w: normal %d (have %d)", ErrIndexOutOfRange, c.Normal, len(d.normals))
	}
	if c.Color != NoIndex && (c.Color < 0 || c.Color >= len(d.colors)) {
		return fmt.Errorf("%w: color %d (have %d)", ErrIndexOutOfRange, c.Color, len(d.colors))
	}
	return nil
}

// Faces returns all faces across parts, in order.
func (d *Document) Faces() []Face {
	faces := make([]Face, 0, d.FaceCount())
	for _, p := range d.parts {
		faces = append(faces, p.Faces...)
	}
	return faces
}

// FaceCount returns the total number of faces.
func (d *Document) FaceCount() int {
	total := 0
	for _, p := range d.parts {
		total += len(p.Faces)
	}
	return total
}

// Materials returns the distinct materials referenced by parts, in first-use order.
func (d *Document) Materials() []*Material {
	var mats []*Material
	seen := make(map[*Material]bool)
	for _, p := range d.parts {
		if p.Material != nil && !seen[p.Material] {
			seen[p.Material] = true
			mats = append(mats, p.Material)
		}
	}
	return mats
}

// Stats summarizes the document contents.
type Stats struct {
	Vertices  int
	Normals   int
	TexCoords int
	Colors    int
	Faces     int
	Parts     int
	Materials int
}

// Stats returns element counts.
func (d *Document) Stats() Stats {
	return Stats{
		Vertices:  len(d.vertices),
		Normals:   len(d.normals),
		TexCoords: len(d.texCoords),
		Colors:    len(d.colors),
		Faces:     d.FaceCount(),
		Parts:     len(d.parts),
		Materials: len(d.Materials()),
	}
}
