package formats

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// Encoding is the PLY content encoding declared by the format line.
type Encoding int

const (
	EncodingASCII Encoding = iota
	EncodingBinaryLittleEndian
	EncodingBinaryBigEndian
)

// String returns the keyword used in the PLY header.
func (e Encoding) String() string {
	switch e {
	case EncodingASCII:
		return "ascii"
	case EncodingBinaryLittleEndian:
		return "binary_little_endian"
	case EncodingBinaryBigEndian:
		return "binary_big_endian"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding parses a PLY format keyword.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "ascii":
		return EncodingASCII, nil
	case "binary_little_endian":
		return EncodingBinaryLittleEndian, nil
	case "binary_big_endian":
		return EncodingBinaryBigEndian, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, s)
	}
}

// ByteOrder returns the scalar byte order of a binary encoding, or nil for ASCII.
func (e Encoding) ByteOrder() binary.ByteOrder {
	switch e {
	case EncodingBinaryLittleEndian:
		return binary.LittleEndian
	case EncodingBinaryBigEndian:
		return binary.BigEndian
	default:
		return nil
	}
}

// ScalarType is a PLY property value type.
type ScalarType int

const (
	TypeInt8 ScalarType = iota
	TypeUint8
	TypeInt16
	TypeUint16
	TypeInt32
	TypeUint32
	TypeFloat32
	TypeFloat64
)

var scalarTypeNames = map[string]ScalarType{
	"char":    TypeInt8,
	"int8":    TypeInt8,
	"uchar":   TypeUint8,
	"uint8":   TypeUint8,
	"short":   TypeInt16,
	"int16":   TypeInt16,
	"ushort":  TypeUint16,
	"uint16":  TypeUint16,
	"int":     TypeInt32,
	"int32":   TypeInt32,
	"uint":    TypeUint32,
	"uint32":  TypeUint32,
	"float":   TypeFloat32,
	"float32": TypeFloat32,
	"double":  TypeFloat64,
	"float64": TypeFloat64,
}

// ParseScalarType parses a PLY type name, accepting both the classic names
// (char, uchar, ...) and the sized aliases (int8, uint8, ...).
func ParseScalarType(s string) (ScalarType, error) {
	t, ok := scalarTypeNames[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// String returns the sized type name.
func (t ScalarType) String() string {
	switch t {
	case TypeInt8:
		return "int8"
	case TypeUint8:
		return "uint8"
	case TypeInt16:
		return "int16"
	case TypeUint16:
		return "uint16"
	case TypeInt32:
		return "int32"
	case TypeUint32:
		return "uint32"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	default:
		return fmt.Sprintf("ScalarType(%d)", int(t))
	}
}

// Size returns the encoded width in bytes.
func (t ScalarType) Size() int {
	switch t {
	case TypeInt8, TypeUint8:
		return 1
	case TypeInt16, TypeUint16:
		return 2
	case TypeInt32, TypeUint32, TypeFloat32:
		return 4
	default:
		return 8
	}
}

// IsInteger returns true for the integer types.
func (t ScalarType) IsInteger() bool {
	return t != TypeFloat32 && t != TypeFloat64
}

// maxValue returns the largest value an integer type can hold.
func (t ScalarType) maxValue() float64 {
	switch t {
	case TypeInt8:
		return math.MaxInt8
	case TypeUint8:
		return math.MaxUint8
	case TypeInt16:
		return math.MaxInt16
	case TypeUint16:
		return math.MaxUint16
	case TypeInt32:
		return math.MaxInt32
	case TypeUint32:
		return math.MaxUint32
	default:
		return math.MaxFloat64
	}
}

// decode reads one value from the front of b, which must hold at least Size bytes.
func (t ScalarType) decode(order binary.ByteOrder, b []byte) float64 {
	switch t {
	case TypeInt8:
		return float64(int8(b[0]))
	case TypeUint8:
		return float64(b[0])
	case TypeInt16:
		return float64(int16(order.Uint16(b)))
	case TypeUint16:
		return float64(order.Uint16(b))
	case TypeInt32:
		return float64(int32(order.Uint32(b)))
	case TypeUint32:
		return float64(order.Uint32(b))
	case TypeFloat32:
		return float64(math.Float32frombits(order.Uint32(b)))
	default:
		return math.Float64frombits(order.Uint64(b))
	}
}

// parse reads one value from an ASCII token.
func (t ScalarType) parse(s string) (float64, error) {
	if t.IsInteger() {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an %s", ErrMalformedRecord, s, t)
		}
		return float64(n), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a %s", ErrMalformedRecord, s, t)
	}
	return v, nil
}

// Property is one declared field of a PLY element.
type Property struct {
	Name      string
	Type      ScalarType // Value type (list items for list properties)
	List      bool
	CountType ScalarType // List length type, only meaningful when List is set
}

// Element is a named, counted group of records sharing a property schema.
type Element struct {
	Name       string
	Count      int
	Properties []Property

	vertex *vertexLayout
	face   *faceLayout
}

// PropertyIndex returns the position of the named property, or -1.
func (e *Element) PropertyIndex(name string) int {
	for i, p := range e.Properties {
		if p.Name == name {
			return i
		}
	}
	return -1
}
