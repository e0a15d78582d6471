package formats

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/Faultbox/modelconv/pkg/charset"
)

// lineBuffer accumulates bytes and hands out complete lines. An incomplete
// trailing fragment stays buffered until the next write completes it.
type lineBuffer struct {
	buf []byte
	off int
}

func (b *lineBuffer) write(p []byte) {
	if b.off > 0 {
		n := copy(b.buf, b.buf[b.off:])
		b.buf = b.buf[:n]
		b.off = 0
	}
	b.buf = append(b.buf, p...)
}

// next returns the next complete line without its terminator.
func (b *lineBuffer) next() (string, bool) {
	i := bytes.IndexByte(b.buf[b.off:], '\n')
	if i < 0 {
		return "", false
	}
	line := string(b.buf[b.off : b.off+i])
	b.off += i + 1
	return strings.TrimSuffix(line, "\r"), true
}

// rest removes and returns whatever has not been consumed as a line.
func (b *lineBuffer) rest() []byte {
	rest := b.buf[b.off:]
	b.buf = nil
	b.off = 0
	return rest
}

// textParser drives a line handler over a byte stream. Format parsers embed
// it and set handle.
type textParser struct {
	lines   lineBuffer
	lineNo  int
	handle  func(line string) error
	charset encoding.Encoding // nil for UTF-8 input
}

// SetCharset makes the parser decode every line from enc before handling it.
func (p *textParser) SetCharset(enc encoding.Encoding) {
	p.charset = enc
}

// Feed implements Parser.
func (p *textParser) Feed(chunk []byte) error {
	p.lines.write(chunk)
	for {
		line, ok := p.lines.next()
		if !ok {
			return nil
		}
		if err := p.line(line); err != nil {
			return err
		}
	}
}

// Finish implements Parser. A final line without a newline is still handled.
func (p *textParser) Finish() error {
	if rest := p.lines.rest(); len(rest) > 0 {
		return p.line(strings.TrimSuffix(string(rest), "\r"))
	}
	return nil
}

func (p *textParser) line(s string) error {
	p.lineNo++
	if p.charset != nil {
		s = charset.Decode(p.charset, s)
	}
	if err := p.handle(s); err != nil {
		return fmt.Errorf("line %d: %w", p.lineNo, err)
	}
	return nil
}

// stripComment drops everything from the first '#' and trims whitespace.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}
