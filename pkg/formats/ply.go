package formats

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/Faultbox/modelconv/internal/logger"
	"github.com/Faultbox/modelconv/pkg/charset"
	"github.com/Faultbox/modelconv/pkg/model"
)

// plyContext is the state shared by the header phase and whichever content
// decoder the header installs.
type plyContext struct {
	doc *model.Document
	dir string
	log *zap.Logger

	encoding   Encoding
	seenFormat bool
	elements   []*Element
	materials  []*model.Material

	// Per-vertex normals and colors are shared by index with the vertices,
	// so face corners reference them through their vertex index.
	cornerNormals bool
	cornerColors  bool

	current int // Index of the element being decoded
	counter int // Records of the current element committed so far
}

// vertexLayout holds the property positions used to build a vertex record.
type vertexLayout struct {
	pos    [3]int
	normal [3]int // Valid when hasNormal
	color  [3]int // Valid when hasColor
	scale  [3]float64

	hasNormal bool
	hasColor  bool
}

// faceLayout holds the property positions used to build face records.
// Optional properties are -1 when absent.
type faceLayout struct {
	indices   int
	texcoord  int
	texnumber int
}

// PLYParser reads PLY files in ASCII or binary encoding. The header is read
// line by line; end_header installs the content decoder for the declared
// encoding and everything after it is handed to that decoder.
type PLYParser struct {
	ctx      plyContext
	header   lineBuffer
	lineNo   int
	sawMagic bool
	decoder  contentDecoder
	charset  encoding.Encoding
}

// NewPLYParser returns a parser filling doc.
func NewPLYParser(doc *model.Document) Parser {
	return &PLYParser{
		ctx: plyContext{
			doc: doc,
			dir: filepath.Dir(doc.SourcePath()),
			log: logger.Named("ply"),
		},
	}
}

// Encoding returns the declared content encoding. It is meaningful once the
// format line has been read.
func (p *PLYParser) Encoding() Encoding {
	return p.ctx.encoding
}

// Elements returns the elements declared so far.
func (p *PLYParser) Elements() []*Element {
	return p.ctx.elements
}

// SetCharset makes the parser decode header lines from enc. Binary content
// is not affected.
func (p *PLYParser) SetCharset(enc encoding.Encoding) {
	p.charset = enc
}

// Feed implements Parser.
func (p *PLYParser) Feed(chunk []byte) error {
	if p.decoder != nil {
		return p.decoder.feed(&p.ctx, chunk)
	}

	p.header.write(chunk)
	for {
		line, ok := p.header.next()
		if !ok {
			return nil
		}
		p.lineNo++

		done, err := p.headerLine(line)
		if err != nil {
			return fmt.Errorf("header line %d: %w", p.lineNo, err)
		}
		if done {
			p.decoder = newContentDecoder(p.ctx.encoding)
			p.ctx.start()
			return p.decoder.feed(&p.ctx, p.header.rest())
		}
	}
}

// Finish implements Parser.
func (p *PLYParser) Finish() error {
	if p.decoder == nil {
		return fmt.Errorf("%w: header ended before end_header", ErrTruncatedContent)
	}
	if err := p.decoder.finish(&p.ctx); err != nil {
		return err
	}
	if !p.ctx.done() {
		el := p.ctx.elements[p.ctx.current]
		return fmt.Errorf("%w: element %s has %d of %d records",
			ErrTruncatedContent, el.Name, p.ctx.counter, el.Count)
	}
	return nil
}

// headerLine handles one header line and reports whether it was end_header.
func (p *PLYParser) headerLine(line string) (bool, error) {
	line = strings.TrimSpace(charset.Decode(p.charset, line))
	if !p.sawMagic {
		if line != "ply" {
			return false, fmt.Errorf("%w: expected \"ply\", got %q", ErrMalformedHeader, line)
		}
		p.sawMagic = true
		return false, nil
	}
	if line == "" {
		return false, nil
	}

	fields := strings.Fields(line)
	ctx := &p.ctx

	switch fields[0] {
	case "format":
		return false, ctx.setFormat(fields[1:])
	case "element":
		return false, ctx.addElement(fields[1:])
	case "property":
		return false, ctx.addProperty(fields[1:])
	case "comment":
		if len(fields) > 2 && fields[1] == "TextureFile" {
			ctx.addTextureFile(strings.Join(fields[2:], " "))
		}
		return false, nil
	case "obj_info":
		return false, nil
	case "end_header":
		return true, ctx.validate()
	default:
		return false, fmt.Errorf("%w: unknown keyword %q", ErrMalformedHeader, fields[0])
	}
}

func (c *plyContext) setFormat(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: format needs an encoding and a version", ErrMalformedHeader)
	}
	enc, err := ParseEncoding(args[0])
	if err != nil {
		return err
	}
	if args[1] != "1.0" {
		return fmt.Errorf("%w: version %q", ErrUnsupportedEncoding, args[1])
	}
	c.encoding = enc
	c.seenFormat = true
	return nil
}

func (c *plyContext) addElement(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: element needs a name and a count", ErrMalformedHeader)
	}
	count, err := strconv.Atoi(args[1])
	if err != nil || count < 0 {
		return fmt.Errorf("%w: element count %q", ErrMalformedHeader, args[1])
	}
	c.elements = append(c.elements, &Element{Name: args[0], Count: count})
	return nil
}

func (c *plyContext) addProperty(args []string) error {
	if len(c.elements) == 0 {
		return fmt.Errorf("%w: property before any element", ErrMalformedHeader)
	}
	el := c.elements[len(c.elements)-1]

	if len(args) > 0 && args[0] == "list" {
		if len(args) != 4 {
			return fmt.Errorf("%w: property list needs count type, value type and name", ErrMalformedHeader)
		}
		countType, err := ParseScalarType(args[1])
		if err != nil {
			return err
		}
		if !countType.IsInteger() {
			return fmt.Errorf("%w: list count type %s is not an integer", ErrMalformedHeader, countType)
		}
		valueType, err := ParseScalarType(args[2])
		if err != nil {
			return err
		}
		el.Properties = append(el.Properties, Property{
			Name:      args[3],
			Type:      valueType,
			List:      true,
			CountType: countType,
		})
		return nil
	}

	if len(args) != 2 {
		return fmt.Errorf("%w: property needs a type and a name", ErrMalformedHeader)
	}
	t, err := ParseScalarType(args[0])
	if err != nil {
		return err
	}
	el.Properties = append(el.Properties, Property{Name: args[1], Type: t})
	return nil
}

// addTextureFile registers a material for a texture path relative to the
// model. The material is kept even when the image cannot be read, so
// texnumber indices stay aligned with the header.
func (c *plyContext) addTextureFile(rel string) {
	mat := model.NewMaterial(rel)
	mat.Ambient = model.DefaultMaterial().Ambient
	mat.Texture = loadTexture(filepath.Join(c.dir, rel), rel)
	c.materials = append(c.materials, mat)
}

// validate checks the completed header and precomputes record layouts.
func (c *plyContext) validate() error {
	if !c.seenFormat {
		return fmt.Errorf("%w: missing format line", ErrMalformedHeader)
	}

	for _, el := range c.elements {
		switch el.Name {
		case "vertex":
			layout, err := newVertexLayout(el)
			if err != nil {
				return err
			}
			el.vertex = layout
			c.cornerNormals = c.cornerNormals || layout.hasNormal
			c.cornerColors = c.cornerColors || layout.hasColor
		case "face":
			layout, err := newFaceLayout(el)
			if err != nil {
				return err
			}
			el.face = layout
		}
	}
	return nil
}

func scalarIndex(el *Element, name string) int {
	i := el.PropertyIndex(name)
	if i >= 0 && el.Properties[i].List {
		return -1
	}
	return i
}

func newVertexLayout(el *Element) (*vertexLayout, error) {
	l := &vertexLayout{}

	for i, name := range []string{"x", "y", "z"} {
		if l.pos[i] = scalarIndex(el, name); l.pos[i] < 0 {
			return nil, fmt.Errorf("%w: vertex element has no scalar %s property", ErrMalformedHeader, name)
		}
	}

	l.hasNormal = true
	for i, name := range []string{"nx", "ny", "nz"} {
		if l.normal[i] = scalarIndex(el, name); l.normal[i] < 0 {
			l.hasNormal = false
		}
	}

	l.hasColor = true
	for i, name := range []string{"red", "green", "blue"} {
		l.color[i] = scalarIndex(el, name)
		if l.color[i] < 0 {
			l.hasColor = false
			continue
		}
		l.scale[i] = 1
		if el.Properties[l.color[i]].Type.IsInteger() {
			l.scale[i] = 1.0 / 255
		}
	}

	return l, nil
}

func newFaceLayout(el *Element) (*faceLayout, error) {
	l := &faceLayout{texcoord: -1, texnumber: -1}

	l.indices = el.PropertyIndex("vertex_indices")
	if l.indices < 0 {
		l.indices = el.PropertyIndex("vertex_index")
	}
	if l.indices < 0 || !el.Properties[l.indices].List {
		return nil, fmt.Errorf("%w: face element has no vertex_indices list", ErrMalformedHeader)
	}

	if i := el.PropertyIndex("texcoord"); i >= 0 && el.Properties[i].List {
		l.texcoord = i
	}
	l.texnumber = scalarIndex(el, "texnumber")

	return l, nil
}
