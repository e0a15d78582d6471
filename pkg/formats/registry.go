package formats

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/Faultbox/modelconv/internal/logger"
	"github.com/Faultbox/modelconv/pkg/model"
)

// DefaultChunkSize is the number of bytes read per Feed call when loading files.
const DefaultChunkSize = 64 * 1024

// Entry binds a format to its file predicate, parser and exporter.
type Entry struct {
	Format      Format
	Extensions  []string                           // Lower-case, with the dot
	Match       func(path string) bool             // Overrides Extensions when set
	NewParser   func(doc *model.Document) Parser   // Parser factory
	NewExporter func(doc *model.Document) Exporter // Exporter factory
}

func (e Entry) matches(path string) bool {
	if e.Match != nil {
		return e.Match(path)
	}
	return slices.Contains(e.Extensions, strings.ToLower(filepath.Ext(path)))
}

// Registry maps file paths to format entries. Later registrations take
// precedence. Register is not safe for concurrent use; lookups are.
type Registry struct {
	entries []Entry

	// ChunkSize is the read size used by Load; zero means DefaultChunkSize.
	ChunkSize int

	// Charset decodes text lines of parsers that support it; nil means UTF-8.
	Charset encoding.Encoding
}

// charsetParser is implemented by parsers that can decode legacy text.
type charsetParser interface {
	SetCharset(enc encoding.Encoding)
}

// NewRegistry returns a registry holding the built-in OBJ, PLY and OFF entries.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(Entry{
		Format:      FormatOBJ,
		Extensions:  []string{".obj"},
		NewParser:   NewOBJParser,
		NewExporter: NewOBJExporter,
	})
	r.Register(Entry{
		Format:      FormatPLY,
		Extensions:  []string{".ply"},
		NewParser:   NewPLYParser,
		NewExporter: NewPLYExporter,
	})
	r.Register(Entry{
		Format:      FormatOFF,
		Extensions:  []string{".off"},
		NewParser:   NewOFFParser,
		NewExporter: NewOFFExporter,
	})
	return r
}

// Register adds an entry.
func (r *Registry) Register(e Entry) {
	r.entries = append(r.entries, e)
}

// Entries returns the registered entries in registration order.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Find returns the entry whose predicate matches path.
func (r *Registry) Find(path string) (Entry, bool) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].matches(path) {
			return r.entries[i], true
		}
	}
	return Entry{}, false
}

// Load parses the model at path. up may be nil.
func (r *Registry) Load(path string, up *model.UpConversion) (*model.Document, error) {
	entry, ok := r.Find(path)
	if !ok || entry.NewParser == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	doc, err := model.NewDocument(path, up)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model: %w", err)
	}
	defer f.Close()

	logger.Debug("loading model", zap.String("path", path), zap.Stringer("format", entry.Format))

	p := entry.NewParser(doc)
	if cp, ok := p.(charsetParser); ok && r.Charset != nil {
		cp.SetCharset(r.Charset)
	}

	if err := Parse(p, f, r.ChunkSize); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	stats := doc.Stats()
	logger.Debug("model loaded",
		zap.String("path", path),
		zap.Int("vertices", stats.Vertices),
		zap.Int("faces", stats.Faces),
		zap.Int("parts", stats.Parts))

	return doc, nil
}

// Export serializes doc in the format selected by path's extension.
func (r *Registry) Export(doc *model.Document, path string) (string, error) {
	var sb strings.Builder
	if err := r.ExportTo(&sb, doc, path); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ExportTo writes doc to w in the format selected by path's extension.
func (r *Registry) ExportTo(w io.Writer, doc *model.Document, path string) error {
	entry, ok := r.Find(path)
	if !ok || entry.NewExporter == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return entry.NewExporter(doc).Export(w)
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// FindFormat returns the format of path in the default registry.
func FindFormat(path string) (Format, bool) {
	e, ok := defaultRegistry.Find(path)
	return e.Format, ok
}

// Load parses the model at path using the default registry.
func Load(path string, up *model.UpConversion) (*model.Document, error) {
	return defaultRegistry.Load(path, up)
}

// Export serializes doc using the default registry.
func Export(doc *model.Document, path string) (string, error) {
	return defaultRegistry.Export(doc, path)
}
