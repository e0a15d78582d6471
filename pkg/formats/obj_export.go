package formats

import (
	"bufio"
	"io"
	"strconv"

	"github.com/Faultbox/modelconv/pkg/model"
)

// OBJExporter writes a document as Wavefront OBJ text with 1-based indices.
type OBJExporter struct {
	doc *model.Document
}

// NewOBJExporter returns an exporter for doc.
func NewOBJExporter(doc *model.Document) Exporter {
	return &OBJExporter{doc: doc}
}

// Export implements Exporter.
func (e *OBJExporter) Export(w io.Writer) error {
	bw := bufio.NewWriter(w)
	doc := e.doc

	colors := doc.Colors()
	withColors := len(colors) > 0 && len(colors) == len(doc.Vertices())
	for i, v := range doc.Vertices() {
		bw.WriteString("v " + formatFloat(v.X) + " " + formatFloat(v.Y) + " " + formatFloat(v.Z))
		if withColors {
			c := colors[i]
			bw.WriteString(" " + formatFloat(c.X) + " " + formatFloat(c.Y) + " " + formatFloat(c.Z))
		}
		bw.WriteString("\n")
	}
	bw.WriteString("\n")

	if tcs := doc.TexCoords(); len(tcs) > 0 {
		for _, t := range tcs {
			bw.WriteString("vt " + formatFloat(t.X) + " " + formatFloat(t.Y) + "\n")
		}
		bw.WriteString("\n")
	}

	if ns := doc.Normals(); len(ns) > 0 {
		for _, n := range ns {
			bw.WriteString("vn " + formatFloat(n.X) + " " + formatFloat(n.Y) + " " + formatFloat(n.Z) + "\n")
		}
		bw.WriteString("\n")
	}

	// usemtl follows each face's own material, not its part's
	emitted := ""
	for _, f := range doc.Faces() {
		if mat := f.Material; mat != nil && mat.Name != emitted {
			emitted = mat.Name
			bw.WriteString("usemtl " + emitted + "\n")
		}
		bw.WriteString("f " + objCorner(f.A) + " " + objCorner(f.B) + " " + objCorner(f.C) + "\n")
	}

	return bw.Flush()
}

func objCorner(c model.FaceVertex) string {
	s := strconv.Itoa(c.Vertex + 1)
	switch {
	case c.HasTexCoord() && c.HasNormal():
		s += "/" + strconv.Itoa(c.TexCoord+1) + "/" + strconv.Itoa(c.Normal+1)
	case c.HasTexCoord():
		s += "/" + strconv.Itoa(c.TexCoord+1)
	case c.HasNormal():
		s += "//" + strconv.Itoa(c.Normal+1)
	}
	return s
}
