// Package formats provides parsers and exporters for OBJ, PLY and OFF models.
//
// Parsers consume a file's bytes chunk by chunk, in order, and fill a
// model.Document. Chunks may split lines, scalars and records anywhere.
package formats

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Format errors.
var (
	ErrUnsupportedFormat   = errors.New("unsupported model format")
	ErrUnsupportedEncoding = errors.New("unsupported PLY encoding")
	ErrUnknownType         = errors.New("unknown PLY property type")
	ErrMalformedHeader     = errors.New("malformed header")
	ErrMalformedRecord     = errors.New("malformed record")
	ErrTruncatedContent    = errors.New("truncated content")
)

// Format identifies a model file format.
type Format int

const (
	FormatOBJ Format = iota
	FormatPLY
	FormatOFF
)

// String returns the format's usual file extension without the dot.
func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "obj"
	case FormatPLY:
		return "ply"
	case FormatOFF:
		return "off"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Parser consumes the bytes of one model file in order.
// A Parser is bound to a single stream and is not safe for concurrent use.
type Parser interface {
	// Feed hands the next chunk to the parser. The parser does not retain chunk.
	Feed(chunk []byte) error
	// Finish signals the end of the stream and flushes buffered input.
	Finish() error
}

// Exporter serializes a document to the textual form of one format.
type Exporter interface {
	Export(w io.Writer) error
}

// Parse drives p over src, reading chunkSize bytes at a time.
func Parse(p Parser, src io.Reader, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	buf := make([]byte, chunkSize)

	for {
		n, err := src.Read(buf)
		if n > 0 {
			if ferr := p.Feed(buf[:n]); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading model: %w", err)
		}
	}

	return p.Finish()
}

// formatFloat writes the shortest representation that parses back to v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrMalformedRecord, f)
		}
		out[i] = v
	}
	return out, nil
}
