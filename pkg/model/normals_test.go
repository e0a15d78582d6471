package model

import (
	"errors"
	stdmath "math"
	"testing"

	"github.com/Faultbox/modelconv/pkg/math"
)

// makeTetra builds a closed tetrahedron with outward (counter-clockwise) winding.
func makeTetra(t *testing.T) *Document {
	t.Helper()
	doc := newDoc(t, nil)
	doc.AddVertex(math.Vec3{X: 0, Y: 0, Z: 0})
	doc.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})
	doc.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0})
	doc.AddVertex(math.Vec3{X: 0, Y: 0, Z: 1})

	for _, f := range []Face{
		Triangle(0, 2, 1),
		Triangle(0, 1, 3),
		Triangle(0, 3, 2),
		Triangle(1, 2, 3),
	} {
		if err := doc.AddFace(f); err != nil {
			t.Fatal(err)
		}
	}
	return doc
}

func TestGenerateVertexNormals(t *testing.T) {
	doc := makeTetra(t)
	doc.AddVertex(math.Vec3{X: 5, Y: 5, Z: 5}) // isolated vertex

	if err := doc.GenerateVertexNormals(); err != nil {
		t.Fatalf("GenerateVertexNormals failed: %v", err)
	}

	normals := doc.Normals()
	if len(normals) != len(doc.Vertices()) {
		t.Fatalf("expected %d normals, got %d", len(doc.Vertices()), len(normals))
	}

	for i := 0; i < 4; i++ {
		if l := normals[i].Length(); stdmath.Abs(l-1) > 1e-6 {
			t.Errorf("normal %d length = %v, want 1", i, l)
		}
	}
	if normals[4] != (math.Vec3{}) {
		t.Errorf("isolated vertex normal = %v, want zero", normals[4])
	}

	// Vertex 0 sits at the corner opposite the slanted face; its normal points away.
	n0 := normals[0]
	if n0.X >= 0 || n0.Y >= 0 || n0.Z >= 0 {
		t.Errorf("vertex 0 normal %v should point towards negative octant", n0)
	}

	for _, f := range doc.Faces() {
		for _, c := range f.Corners() {
			if c.Normal != c.Vertex {
				t.Errorf("corner normal %d != vertex %d", c.Normal, c.Vertex)
			}
		}
	}
	if doc.NormalMode() != NormalsPerVertex {
		t.Errorf("NormalMode() = %v", doc.NormalMode())
	}
}

func TestGenerateFaceNormals(t *testing.T) {
	doc := makeTetra(t)

	if err := doc.GenerateFaceNormals(); err != nil {
		t.Fatalf("GenerateFaceNormals failed: %v", err)
	}

	normals := doc.Normals()
	if len(normals) != doc.FaceCount() {
		t.Fatalf("expected %d normals, got %d", doc.FaceCount(), len(normals))
	}

	want := []math.Vec3{
		{X: 0, Y: 0, Z: -1},
		{X: 0, Y: -1, Z: 0},
		{X: -1, Y: 0, Z: 0},
	}
	for i, w := range want {
		if normals[i] != w {
			t.Errorf("face %d normal = %v, want %v", i, normals[i], w)
		}
	}
	s := 1 / stdmath.Sqrt(3)
	if d := normals[3].Sub(math.Vec3{X: s, Y: s, Z: s}).Length(); d > 1e-9 {
		t.Errorf("slanted face normal = %v", normals[3])
	}

	for i, f := range doc.Faces() {
		for _, c := range f.Corners() {
			if c.Normal != i {
				t.Errorf("face %d corner normal = %d", i, c.Normal)
			}
		}
	}
}

func TestGenerateNormals_ModeConflict(t *testing.T) {
	doc := makeTetra(t)
	if err := doc.GenerateFaceNormals(); err != nil {
		t.Fatal(err)
	}
	if err := doc.GenerateVertexNormals(); !errors.Is(err, ErrNormalModeConflict) {
		t.Errorf("expected ErrNormalModeConflict, got %v", err)
	}

	doc = makeTetra(t)
	if err := doc.GenerateVertexNormals(); err != nil {
		t.Fatal(err)
	}
	if err := doc.GenerateVertexNormals(); err != nil {
		t.Errorf("regenerating vertex normals failed: %v", err)
	}
	if err := doc.GenerateFaceNormals(); !errors.Is(err, ErrNormalModeConflict) {
		t.Errorf("expected ErrNormalModeConflict, got %v", err)
	}
}

func TestGenerateVertexNormals_ReplacesExplicit(t *testing.T) {
	doc := makeTetra(t)
	doc.AddNormal(math.Vec3{Z: 1})
	if doc.NormalMode() != NormalsExplicit {
		t.Fatalf("NormalMode() = %v", doc.NormalMode())
	}
	if err := doc.GenerateVertexNormals(); err != nil {
		t.Fatal(err)
	}
	if len(doc.Normals()) != 4 {
		t.Errorf("expected 4 normals, got %d", len(doc.Normals()))
	}
}
