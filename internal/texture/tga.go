package texture

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// DecodeTGAConfig reads a TGA header and returns the image dimensions.
// Only uncompressed and RLE true-color images with 24 or 32 bits per pixel are
// accepted.
func DecodeTGAConfig(r io.Reader) (image.Config, error) {
	var header [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return image.Config{}, fmt.Errorf("TGA header truncated: %w", err)
	}

	colorMapType := header[1]
	imageType := header[2]
	width := int(binary.LittleEndian.Uint16(header[12:14]))
	height := int(binary.LittleEndian.Uint16(header[14:16]))
	bpp := int(header[16])

	if colorMapType != 0 {
		return image.Config{}, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return image.Config{}, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return image.Config{}, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}
	if width == 0 || height == 0 {
		return image.Config{}, fmt.Errorf("TGA has empty dimensions %dx%d", width, height)
	}

	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      width,
		Height:     height,
	}, nil
}
