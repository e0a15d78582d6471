package formats

import (
	"encoding/binary"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/modelconv/pkg/math"
	"github.com/Faultbox/modelconv/pkg/model"
)

// contentDecoder turns the bytes after end_header into committed records.
type contentDecoder interface {
	feed(ctx *plyContext, chunk []byte) error
	finish(ctx *plyContext) error
}

func newContentDecoder(enc Encoding) contentDecoder {
	if order := enc.ByteOrder(); order != nil {
		return &binaryDecoder{order: order}
	}
	return &asciiDecoder{}
}

// start positions the context on the first element with records.
func (c *plyContext) start() {
	c.current = 0
	c.counter = 0
	c.skipExhausted()
}

func (c *plyContext) skipExhausted() {
	for c.current < len(c.elements) && c.counter >= c.elements[c.current].Count {
		c.current++
		c.counter = 0
	}
}

// done returns true once every declared record has been committed.
func (c *plyContext) done() bool {
	return c.current >= len(c.elements)
}

func (c *plyContext) element() *Element {
	return c.elements[c.current]
}

// commit applies one fully decoded record of the current element and advances.
// values holds one slice per declared property: a single value for scalars,
// the items for lists.
func (c *plyContext) commit(values [][]float64) error {
	el := c.element()

	var err error
	switch {
	case el.vertex != nil:
		c.commitVertex(el.vertex, values)
	case el.face != nil:
		err = c.commitFace(el.face, values)
	}
	if err != nil {
		return fmt.Errorf("%s %d: %w", el.Name, c.counter, err)
	}

	c.counter++
	c.skipExhausted()
	return nil
}

func (c *plyContext) commitVertex(l *vertexLayout, values [][]float64) {
	c.doc.AddVertex(math.Vec3{
		X: values[l.pos[0]][0],
		Y: values[l.pos[1]][0],
		Z: values[l.pos[2]][0],
	})
	if l.hasNormal {
		c.doc.AddNormal(math.Vec3{
			X: values[l.normal[0]][0],
			Y: values[l.normal[1]][0],
			Z: values[l.normal[2]][0],
		})
	}
	if l.hasColor {
		c.doc.AddColor(math.Vec3{
			X: values[l.color[0]][0] * l.scale[0],
			Y: values[l.color[1]][0] * l.scale[1],
			Z: values[l.color[2]][0] * l.scale[2],
		})
	}
}

func (c *plyContext) commitFace(l *faceLayout, values [][]float64) error {
	indices := values[l.indices]
	n := len(indices)
	if n != 3 && n != 4 {
		c.log.Warn("dropping face: only triangles and quads are supported",
			zap.Int("corners", n),
			zap.Int("face", c.counter))
		return nil
	}

	corners := make([]model.FaceVertex, n)
	for i, v := range indices {
		fv := model.Corner(int(v))
		if c.cornerNormals {
			fv.Normal = fv.Vertex
		}
		if c.cornerColors {
			fv.Color = fv.Vertex
		}
		corners[i] = fv
	}

	if l.texcoord >= 0 {
		uv := values[l.texcoord]
		switch len(uv) {
		case 2 * n:
			for i := range corners {
				corners[i].TexCoord = c.doc.AddTexCoord(math.Vec3{X: uv[2*i], Y: uv[2*i+1]})
			}
		case 0:
		default:
			c.log.Warn("ignoring texcoord list of unexpected length",
				zap.Int("values", len(uv)),
				zap.Int("corners", n),
				zap.Int("face", c.counter))
		}
	}

	var mat *model.Material
	if l.texnumber >= 0 {
		k := int(values[l.texnumber][0])
		if k >= 0 && k < len(c.materials) {
			mat = c.materials[k]
		} else {
			c.log.Warn("texnumber out of range",
				zap.Int("texnumber", k),
				zap.Int("materials", len(c.materials)),
				zap.Int("face", c.counter))
		}
	}

	if err := c.doc.AddFace(model.Face{A: corners[0], B: corners[1], C: corners[2], Material: mat}); err != nil {
		return err
	}
	if n == 4 {
		return c.doc.AddFace(model.Face{A: corners[0], B: corners[2], C: corners[3], Material: mat})
	}
	return nil
}

// asciiDecoder reads one record per line.
type asciiDecoder struct {
	lines lineBuffer
}

func (d *asciiDecoder) feed(ctx *plyContext, chunk []byte) error {
	d.lines.write(chunk)
	for {
		line, ok := d.lines.next()
		if !ok {
			return nil
		}
		if err := d.record(ctx, line); err != nil {
			return err
		}
	}
}

func (d *asciiDecoder) finish(ctx *plyContext) error {
	if rest := d.lines.rest(); len(rest) > 0 {
		return d.record(ctx, strings.TrimSuffix(string(rest), "\r"))
	}
	return nil
}

func (d *asciiDecoder) record(ctx *plyContext, line string) error {
	if ctx.done() {
		return nil
	}
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}

	el := ctx.element()
	values, err := parseASCIIRecord(el, tokens)
	if err != nil {
		return fmt.Errorf("%s %d: %w", el.Name, ctx.counter, err)
	}
	return ctx.commit(values)
}

func parseASCIIRecord(el *Element, tokens []string) ([][]float64, error) {
	values := make([][]float64, len(el.Properties))
	next := 0

	take := func(t ScalarType) (float64, error) {
		if next >= len(tokens) {
			return 0, fmt.Errorf("%w: record has too few values", ErrMalformedRecord)
		}
		v, err := t.parse(tokens[next])
		next++
		return v, err
	}

	for i, prop := range el.Properties {
		if !prop.List {
			v, err := take(prop.Type)
			if err != nil {
				return nil, err
			}
			values[i] = []float64{v}
			continue
		}

		count, err := take(prop.CountType)
		if err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, fmt.Errorf("%w: negative list length", ErrMalformedRecord)
		}
		if count > prop.CountType.maxValue() {
			return nil, fmt.Errorf("%w: list length %.0f overflows %s", ErrMalformedRecord, count, prop.CountType)
		}
		// Every list item needs its own token.
		if count > float64(len(tokens)-next) {
			return nil, fmt.Errorf("%w: list of %.0f values has only %d on the line", ErrMalformedRecord, count, len(tokens)-next)
		}
		list := make([]float64, int(count))
		for j := range list {
			if list[j], err = take(prop.Type); err != nil {
				return nil, err
			}
		}
		values[i] = list
	}
	return values, nil
}

// binaryDecoder accumulates bytes and commits whole records only. A record
// whose bytes are not all buffered yet is retried from its first byte on the
// next feed.
type binaryDecoder struct {
	order binary.ByteOrder
	buf   []byte
}

func (d *binaryDecoder) feed(ctx *plyContext, chunk []byte) error {
	if ctx.done() {
		return nil
	}
	d.buf = append(d.buf, chunk...)

	off := 0
	for !ctx.done() {
		el := ctx.element()
		values, n, ok, err := decodeBinaryRecord(el, d.order, d.buf[off:])
		if err != nil {
			return fmt.Errorf("%s %d: %w", el.Name, ctx.counter, err)
		}
		if !ok {
			break
		}
		if err := ctx.commit(values); err != nil {
			return err
		}
		off += n
	}

	if ctx.done() {
		// Bytes past the last declared record are ignored
		d.buf = nil
		return nil
	}
	d.buf = d.buf[:copy(d.buf, d.buf[off:])]
	return nil
}

func (d *binaryDecoder) finish(*plyContext) error {
	return nil
}

// decodeBinaryRecord decodes one record of el from the front of buf. It
// returns ok=false without consuming anything when buf ends inside the record.
func decodeBinaryRecord(el *Element, order binary.ByteOrder, buf []byte) (values [][]float64, n int, ok bool, err error) {
	values = make([][]float64, len(el.Properties))
	off := 0

	for i, prop := range el.Properties {
		if !prop.List {
			size := prop.Type.Size()
			if len(buf)-off < size {
				return nil, 0, false, nil
			}
			values[i] = []float64{prop.Type.decode(order, buf[off:])}
			off += size
			continue
		}

		countSize := prop.CountType.Size()
		if len(buf)-off < countSize {
			return nil, 0, false, nil
		}
		count := prop.CountType.decode(order, buf[off:])
		off += countSize
		if count < 0 {
			return nil, 0, false, fmt.Errorf("%w: negative list length", ErrMalformedRecord)
		}

		size := prop.Type.Size()
		if len(buf)-off < int(count)*size {
			return nil, 0, false, nil
		}
		list := make([]float64, int(count))
		for j := range list {
			list[j] = prop.Type.decode(order, buf[off:])
			off += size
		}
		values[i] = list
	}

	return values, off, true, nil
}
