package model

import (
	"fmt"

	"github.com/Faultbox/modelconv/pkg/math"
)

func (d *Document) faceCross(f Face) math.Vec3 {
	a := d.vertices[f.A.Vertex]
	e1 := math.FromPoints(a, d.vertices[f.B.Vertex])
	e2 := math.FromPoints(a, d.vertices[f.C.Vertex])
	return e1.Cross(e2)
}

// GenerateVertexNormals replaces the normals with one area-weighted normal per
// vertex and points every face corner at the normal of its own vertex.
func (d *Document) GenerateVertexNormals() error {
	if d.normalMode == NormalsPerFace {
		return fmt.Errorf("%w: document already has face normals", ErrNormalModeConflict)
	}

	normals := make([]math.Vec3, len(d.vertices))
	for _, p := range d.parts {
		for _, f := range p.Faces {
			cross := d.faceCross(f)
			normals[f.A.Vertex] = normals[f.A.Vertex].Add(cross)
			normals[f.B.Vertex] = normals[f.B.Vertex].Add(cross)
			normals[f.C.Vertex] = normals[f.C.Vertex].Add(cross)
		}
	}

	for i := range normals {
		normals[i] = normals[i].Normalize()
	}

	for _, p := range d.parts {
		for i := range p.Faces {
			f := &p.Faces[i]
			f.A.Normal = f.A.Vertex
			f.B.Normal = f.B.Vertex
			f.C.Normal = f.C.Vertex
		}
	}

	d.normals = normals
	d.normalMode = NormalsPerVertex
	return nil
}

// GenerateFaceNormals replaces the normals with one unit normal per face
// (flat shading).
func (d *Document) GenerateFaceNormals() error {
	if d.normalMode == NormalsPerVertex {
		return fmt.Errorf("%w: document already has vertex normals", ErrNormalModeConflict)
	}

	normals := make([]math.Vec3, 0, d.FaceCount())
	for _, p := range d.parts {
		for i := range p.Faces {
			f := &p.Faces[i]
			index := len(normals)
			normals = append(normals, d.faceCross(*f).Normalize())
			f.A.Normal = index
			f.B.Normal = index
			f.C.Normal = index
		}
	}

	d.normals = normals
	d.normalMode = NormalsPerFace
	return nil
}
