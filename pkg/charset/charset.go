// Package charset decodes model text written in legacy encodings.
//
// Older exporters write material names and texture paths in the system code
// page (EUC-KR, Shift_JIS, windows-1252, ...). Model files carry no charset
// marker, so the encoding is chosen by the user.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset is returned by Lookup for names without a registered encoding.
var ErrUnknownCharset = errors.New("unknown charset")

// Lookup returns the encoding for a WHATWG label such as "euc-kr",
// "shift_jis" or "latin1". Empty and UTF-8 labels return nil, meaning text is
// used as is. Encodings that are not ASCII-compatible, such as UTF-16, are
// rejected.
func Lookup(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	canonical, _ := htmlindex.Name(enc)
	switch canonical {
	case "utf-8":
		return nil, nil
	case "utf-16le", "utf-16be", "replacement":
		// Lines are split on the '\n' byte before decoding
		return nil, fmt.Errorf("%w: %q does not keep ASCII bytes as is", ErrUnknownCharset, name)
	}
	return enc, nil
}

// Decode converts s from enc to UTF-8.
// Returns s unchanged if enc is nil or the text cannot be decoded.
func Decode(enc encoding.Encoding, s string) string {
	if enc == nil {
		return s
	}
	result, _, err := transform.String(enc.NewDecoder(), s)
	if err != nil {
		return s
	}
	return result
}
