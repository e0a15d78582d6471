package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/modelconv/internal/logger"
	"github.com/Faultbox/modelconv/pkg/math"
	"github.com/Faultbox/modelconv/pkg/model"
)

type offState int

const (
	offExpectHeader offState = iota
	offExpectCounts
	offVertices
	offFaces
)

// OFFParser reads Object File Format text.
type OFFParser struct {
	textParser
	doc   *model.Document
	log   *zap.Logger
	state offState

	vertexCount int
	faceCount   int
	vertices    int
	faces       int
}

// NewOFFParser returns a parser filling doc.
func NewOFFParser(doc *model.Document) Parser {
	p := &OFFParser{doc: doc, log: logger.Named("off")}
	p.handle = p.parseLine
	return p
}

func (p *OFFParser) parseLine(line string) error {
	line = stripComment(line)
	if line == "" {
		return nil
	}
	fields := strings.Fields(line)

	switch p.state {
	case offExpectHeader:
		if fields[0] != "OFF" {
			// Some writers omit the magic line and start with the counts
			return p.parseCounts(fields)
		}
		p.state = offExpectCounts
		if len(fields) > 1 {
			return p.parseCounts(fields[1:])
		}
		return nil

	case offExpectCounts:
		return p.parseCounts(fields)

	case offVertices:
		vals, err := parseFloatsN(fields, 3)
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		p.doc.AddVertex(math.Vec3{X: vals[0], Y: vals[1], Z: vals[2]})
		p.vertices++
		if p.vertices == p.vertexCount {
			p.state = offFaces
		}
		return nil

	default:
		return p.parseFace(fields)
	}
}

func (p *OFFParser) parseCounts(fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("%w: expected vertex and face counts", ErrMalformedHeader)
	}
	counts := make([]int, 2)
	for i := range counts {
		n, err := strconv.Atoi(fields[i])
		if err != nil || n < 0 {
			return fmt.Errorf("%w: bad count %q", ErrMalformedHeader, fields[i])
		}
		counts[i] = n
	}

	p.vertexCount, p.faceCount = counts[0], counts[1]
	p.state = offVertices
	if p.vertexCount == 0 {
		p.state = offFaces
	}
	return nil
}

func (p *OFFParser) parseFace(fields []string) error {
	idx := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return fmt.Errorf("face: %w: %q", ErrMalformedRecord, f)
		}
		idx[i] = n
	}

	p.faces++
	n := idx[0]
	if n != 3 || len(idx) < 4 {
		p.log.Warn("dropping face: only triangles are supported",
			zap.Int("corners", n),
			zap.Int("line", p.lineNo))
		return nil
	}
	return p.doc.AddFace(model.Triangle(idx[1], idx[2], idx[3]))
}

// Finish implements Parser.
func (p *OFFParser) Finish() error {
	if err := p.textParser.Finish(); err != nil {
		return err
	}
	switch p.state {
	case offExpectHeader, offExpectCounts:
		return fmt.Errorf("%w: missing counts line", ErrMalformedHeader)
	case offVertices:
		return fmt.Errorf("%w: %d of %d vertices", ErrTruncatedContent, p.vertices, p.vertexCount)
	}
	if p.faces < p.faceCount {
		p.log.Warn("fewer faces than declared",
			zap.Int("declared", p.faceCount),
			zap.Int("read", p.faces))
	}
	return nil
}

// OFFExporter writes a document as OFF text.
type OFFExporter struct {
	doc *model.Document
}

// NewOFFExporter returns an exporter for doc.
func NewOFFExporter(doc *model.Document) Exporter {
	return &OFFExporter{doc: doc}
}

// Export implements Exporter.
func (e *OFFExporter) Export(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "OFF\n%d %d 0\n", len(e.doc.Vertices()), e.doc.FaceCount())
	writeVertexLines(bw, e.doc)
	writeTriangleLines(bw, e.doc)
	return bw.Flush()
}

func writeVertexLines(bw *bufio.Writer, doc *model.Document) {
	for _, v := range doc.Vertices() {
		bw.WriteString(formatFloat(v.X) + " " + formatFloat(v.Y) + " " + formatFloat(v.Z) + "\n")
	}
}

func writeTriangleLines(bw *bufio.Writer, doc *model.Document) {
	for _, part := range doc.Parts() {
		for _, f := range part.Faces {
			fmt.Fprintf(bw, "3 %d %d %d\n", f.A.Vertex, f.B.Vertex, f.C.Vertex)
		}
	}
}
