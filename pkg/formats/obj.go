package formats

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/modelconv/internal/logger"
	"github.com/Faultbox/modelconv/pkg/math"
	"github.com/Faultbox/modelconv/pkg/model"
)

// OBJParser reads Wavefront OBJ text. Materials come from the companion
// library named by mtllib, resolved relative to the model file.
type OBJParser struct {
	textParser
	doc       *model.Document
	dir       string
	materials map[string]*model.Material
	current   *model.Material
	log       *zap.Logger
}

// NewOBJParser returns a parser filling doc.
func NewOBJParser(doc *model.Document) Parser {
	p := &OBJParser{
		doc: doc,
		dir: filepath.Dir(doc.SourcePath()),
		log: logger.Named("obj"),
	}
	p.handle = p.parseLine
	return p
}

func (p *OBJParser) parseLine(line string) error {
	line = stripComment(line)
	if line == "" {
		return nil
	}

	fields := strings.Fields(line)
	args := fields[1:]

	switch fields[0] {
	case "v":
		return p.parseVertex(args)
	case "vn":
		vals, err := parseFloatsN(args, 3)
		if err != nil {
			return fmt.Errorf("vn: %w", err)
		}
		p.doc.AddNormal(math.Vec3{X: vals[0], Y: vals[1], Z: vals[2]})
	case "vt":
		vals, err := parseFloatsN(args, 2)
		if err != nil {
			return fmt.Errorf("vt: %w", err)
		}
		tc := math.Vec3{X: vals[0], Y: vals[1]}
		if len(vals) > 2 {
			tc.Z = vals[2]
		}
		p.doc.AddTexCoord(tc)
	case "f":
		return p.parseFace(args)
	case "usemtl":
		p.useMaterial(strings.Join(args, " "))
	case "mtllib":
		p.loadLibrary(strings.Join(args, " "))
	case "o", "g", "s":
		// Object, group and smoothing names carry no geometry
	default:
		p.log.Debug("ignoring directive", zap.String("directive", fields[0]), zap.Int("line", p.lineNo))
	}
	return nil
}

func (p *OBJParser) parseVertex(args []string) error {
	vals, err := parseFloatsN(args, 3)
	if err != nil {
		return fmt.Errorf("v: %w", err)
	}

	index := p.doc.AddVertex(math.Vec3{X: vals[0], Y: vals[1], Z: vals[2]})

	// Optional "v x y z r g b" colors stay index-aligned with vertices
	if len(vals) >= 6 && len(p.doc.Colors()) == index {
		p.doc.AddColor(math.Vec3{X: vals[3], Y: vals[4], Z: vals[5]})
	}
	return nil
}

func (p *OBJParser) parseFace(args []string) error {
	corners := make([]model.FaceVertex, len(args))
	for i, tok := range args {
		c, err := p.parseCorner(tok)
		if err != nil {
			return fmt.Errorf("f: %w", err)
		}
		corners[i] = c
	}

	switch len(corners) {
	case 3:
		return p.addFace(corners[0], corners[1], corners[2])
	case 4:
		if err := p.addFace(corners[0], corners[1], corners[2]); err != nil {
			return err
		}
		return p.addFace(corners[0], corners[2], corners[3])
	default:
		p.log.Warn("dropping face: only triangles and quads are supported",
			zap.Int("corners", len(corners)),
			zap.Int("line", p.lineNo))
		return nil
	}
}

func (p *OBJParser) addFace(a, b, c model.FaceVertex) error {
	return p.doc.AddFace(model.Face{A: a, B: b, C: c, Material: p.current})
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func (p *OBJParser) parseCorner(tok string) (model.FaceVertex, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return model.FaceVertex{}, fmt.Errorf("%w: corner %q", ErrMalformedRecord, tok)
	}

	v, err := parseIndex(parts[0], len(p.doc.Vertices()))
	if err != nil {
		return model.FaceVertex{}, err
	}
	c := model.Corner(v)

	if len(parts) > 1 && parts[1] != "" {
		if c.TexCoord, err = parseIndex(parts[1], len(p.doc.TexCoords())); err != nil {
			return model.FaceVertex{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.Normal, err = parseIndex(parts[2], len(p.doc.Normals())); err != nil {
			return model.FaceVertex{}, err
		}
	}
	if v >= 0 && v < len(p.doc.Colors()) {
		c.Color = v
	}
	return c, nil
}

// parseIndex converts a 1-based (or negative, end-relative) OBJ index to a
// 0-based index.
func parseIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrMalformedRecord, s)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		return count + n, nil
	default:
		return 0, fmt.Errorf("%w: index 0 is not valid", ErrMalformedRecord)
	}
}

func (p *OBJParser) useMaterial(name string) {
	p.current = p.materials[name]
	if p.current == nil {
		p.log.Warn("unknown material", zap.String("material", name), zap.Int("line", p.lineNo))
	}
}

func (p *OBJParser) loadLibrary(rel string) {
	path := filepath.Join(p.dir, rel)
	mats, err := loadMaterialLibrary(path, p.dir, p.charset)
	if err != nil {
		p.log.Warn("material library not loaded, continuing without it",
			zap.String("path", path),
			zap.Error(err))
		return
	}

	if p.materials == nil {
		p.materials = make(map[string]*model.Material)
	}
	for _, m := range mats {
		p.materials[m.Name] = m
	}
}

// parseFloatsN parses fields as numbers, requiring at least want of them.
func parseFloatsN(fields []string, want int) ([]float64, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrMalformedRecord, want, len(fields))
	}
	return parseFloats(fields)
}
