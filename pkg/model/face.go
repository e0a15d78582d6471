package model

// NoIndex marks an attribute a face corner does not reference.
const NoIndex = -1

// FaceVertex is one face corner: indices into a Document's arrays.
type FaceVertex struct {
	Vertex   int
	TexCoord int // NoIndex if absent
	Normal   int // NoIndex if absent
	Color    int // NoIndex if absent
}

// Corner returns a corner referencing only a vertex.
func Corner(vertex int) FaceVertex {
	return FaceVertex{Vertex: vertex, TexCoord: NoIndex, Normal: NoIndex, Color: NoIndex}
}

// HasTexCoord reports whether the corner references a texture coordinate.
func (fv FaceVertex) HasTexCoord() bool { return fv.TexCoord != NoIndex }

// HasNormal reports whether the corner references a normal.
func (fv FaceVertex) HasNormal() bool { return fv.Normal != NoIndex }

// HasColor reports whether the corner references a color.
func (fv FaceVertex) HasColor() bool { return fv.Color != NoIndex }

// Face is a triangle with an optional material.
type Face struct {
	A, B, C  FaceVertex
	Material *Material // nil: inherit the current mesh part
}

// Triangle returns a material-less face over three vertex indices.
func Triangle(a, b, c int) Face {
	return Face{A: Corner(a), B: Corner(b), C: Corner(c)}
}

// Corners returns the three corners in winding order.
func (f Face) Corners() [3]FaceVertex {
	return [3]FaceVertex{f.A, f.B, f.C}
}

// MeshPart is a run of consecutive faces sharing one material.
type MeshPart struct {
	Material *Material // nil until a face declares one
	Faces    []Face
}

// EffectiveMaterial returns the part's material, or the default material.
func (p *MeshPart) EffectiveMaterial() *Material {
	if p.Material == nil {
		return DefaultMaterial()
	}
	return p.Material
}
