package formats

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/modelconv/pkg/model"
)

// PLYExporter writes a document as an ASCII PLY triangle mesh. Only positions
// and vertex indices are written.
type PLYExporter struct {
	doc *model.Document
}

// NewPLYExporter returns an exporter for doc.
func NewPLYExporter(doc *model.Document) Exporter {
	return &PLYExporter{doc: doc}
}

// Export implements Exporter.
func (e *PLYExporter) Export(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("ply\nformat ascii 1.0\ncomment generated by modelconv\n")
	fmt.Fprintf(bw, "element vertex %d\n", len(e.doc.Vertices()))
	bw.WriteString("property float32 x\nproperty float32 y\nproperty float32 z\n")
	fmt.Fprintf(bw, "element face %d\n", e.doc.FaceCount())
	bw.WriteString("property list uint8 int32 vertex_indices\n")
	bw.WriteString("end_header\n")

	writeVertexLines(bw, e.doc)
	writeTriangleLines(bw, e.doc)

	return bw.Flush()
}
