package formats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/Faultbox/modelconv/internal/logger"
	"github.com/Faultbox/modelconv/internal/texture"
	"github.com/Faultbox/modelconv/pkg/math"
	"github.com/Faultbox/modelconv/pkg/model"
)

// mtlParser reads a Wavefront material library.
type mtlParser struct {
	textParser
	texDir    string
	materials []*model.Material
	current   *model.Material
}

// loadMaterialLibrary parses the .mtl file at path. Texture maps are resolved
// against texDir. enc may be nil.
func loadMaterialLibrary(path, texDir string, enc encoding.Encoding) ([]*model.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := &mtlParser{texDir: texDir}
	p.handle = p.parseLine
	p.SetCharset(enc)
	if err := Parse(p, f, DefaultChunkSize); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return p.materials, nil
}

func (p *mtlParser) parseLine(line string) error {
	line = stripComment(line)
	if line == "" {
		return nil
	}

	fields := strings.Fields(line)
	args := fields[1:]

	if fields[0] == "newmtl" {
		p.current = model.NewMaterial(strings.Join(args, " "))
		p.materials = append(p.materials, p.current)
		return nil
	}

	if p.current == nil {
		return fmt.Errorf("%w: %s before newmtl", ErrMalformedRecord, fields[0])
	}

	switch fields[0] {
	case "Ka":
		return parseColor(args, &p.current.Ambient)
	case "Kd":
		return parseColor(args, &p.current.Diffuse)
	case "Ks":
		return parseColor(args, &p.current.Specular)
	case "map_Kd":
		if len(args) == 0 {
			return fmt.Errorf("%w: map_Kd without a path", ErrMalformedRecord)
		}
		// Options such as -s or -o precede the file name, which comes last
		p.current.Texture = loadTexture(filepath.Join(p.texDir, args[len(args)-1]), p.current.Name)
	}
	return nil
}

func parseColor(args []string, dst *math.Vec3) error {
	vals, err := parseFloatsN(args, 1)
	if err != nil {
		return err
	}
	// A single value stands for a gray level
	if len(vals) < 3 {
		*dst = math.Vec3{X: vals[0], Y: vals[0], Z: vals[0]}
		return nil
	}
	*dst = math.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}
	return nil
}

// loadTexture probes a texture image. Failures are logged and yield nil so the
// material is kept without its texture.
func loadTexture(path, material string) *model.Texture {
	tex, err := texture.Probe(path)
	if err != nil {
		logger.Named("texture").Warn("texture not loaded",
			zap.String("path", path),
			zap.String("material", material),
			zap.Error(err))
		return nil
	}
	return tex
}
