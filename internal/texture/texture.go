// Package texture inspects texture images referenced by model materials.
// Only image headers are read; pixel data stays on disk for the renderer.
package texture

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF header registration
	_ "image/jpeg" // JPEG header registration
	_ "image/png"  // PNG header registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/Faultbox/modelconv/pkg/model"
)

// Probe opens the image at path and returns a texture reference describing it.
// TGA files are recognized by extension since the format has no magic number.
func Probe(path string) (*model.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture: %w", err)
	}
	defer f.Close()

	var cfg image.Config
	var format string
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		cfg, err = DecodeTGAConfig(f)
		format = "tga"
	} else {
		cfg, format, err = image.DecodeConfig(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}

	return &model.Texture{
		Path:   path,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
