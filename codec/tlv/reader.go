package tlv

import (
	"unicode/utf8"

	"github.com/golangsnmp/goasn1/codec"
	"github.com/golangsnmp/goasn1/codec/internal/wire"
	"github.com/golangsnmp/goasn1/tag"
)

// Reader is a codec.Reader over tag/length/value input.
type Reader struct {
	data   []byte
	pos    int
	base   int
	frames []*frame
}

var _ codec.Reader = (*Reader)(nil)

// NewReader returns a Reader positioned at the start of p.
func NewReader(p []byte) *Reader {
	return &Reader{data: p}
}

// Pos returns the current offset from the start of the input.
func (r *Reader) Pos() int { return r.base + r.pos }

// Remaining returns the number of unread octets in the current element.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

func (r *Reader) top() *frame {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

// do runs one construct, restoring the position and field state when fn
// fails.
func (r *Reader) do(op string, def tag.Tag, element bool, fn func(t tag.Tag, atField bool) error) error {
	data, pos, base := r.data, r.pos, r.base
	frames := len(r.frames)
	f := r.top()
	var snap frame
	atField := false
	if f != nil {
		snap = *f
		atField = f.begin()
	}
	t := def
	if element {
		t = elementTag(f, def)
	}

	// An absent extension addition reads as the zero value.
	var err error
	if !atField || !f.isAddition() || r.atTag(tag.ContextSpecific(uint64(f.index))) {
		err = fn(t, atField)
	}

	r.frames = r.frames[:frames]
	if err != nil {
		r.data, r.pos, r.base = data, pos, base
		if f != nil {
			*f = snap
		}
		return wrap("read "+op, uint64(base+pos), err)
	}
	if f != nil {
		f.depth--
	}
	return nil
}

// next reads the header of the next element and checks its tag and form.
func (r *Reader) next(want tag.Tag, constructed bool) (header, error) {
	h, err := parseHeader(r.data[r.pos:])
	if err != nil {
		return h, err
	}
	if h.tag != want {
		return h, codec.Malformed("expected tag %s, found %s", want, h.tag)
	}
	if h.constructed != constructed {
		return h, codec.Malformed("tag %s has the wrong form", want)
	}
	return h, nil
}

// atTag reports whether the next element carries tag t.
func (r *Reader) atTag(t tag.Tag) bool {
	if r.pos >= len(r.data) {
		return false
	}
	h, err := parseHeader(r.data[r.pos:])
	return err == nil && h.tag == t
}

// primitive returns the content of the next primitive element.
func (r *Reader) primitive(want tag.Tag) ([]byte, error) {
	h, err := r.next(want, false)
	if err != nil {
		return nil, err
	}
	start := r.pos + h.size
	r.pos = start + h.length
	return r.data[start:r.pos:r.pos], nil
}

// constructed runs content with the reader scoped to the next
// constructed element, then moves past it. Unread content is skipped.
func (r *Reader) constructed(want tag.Tag, content func() error) error {
	h, err := r.next(want, true)
	if err != nil {
		return err
	}
	data, base := r.data, r.base
	start := r.pos + h.size
	end := start + h.length
	r.data, r.pos, r.base = data[start:end], 0, base+start
	if err := content(); err != nil {
		return err
	}
	r.data, r.pos, r.base = data, end, base
	return nil
}

// rawContent returns the content of the next constructed element.
func (r *Reader) rawContent(want tag.Tag) ([]byte, error) {
	h, err := r.next(want, true)
	if err != nil {
		return nil, err
	}
	start := r.pos + h.size
	r.pos = start + h.length
	return r.data[start:r.pos], nil
}

func (r *Reader) readComponents(op string, c codec.SequenceConstraint, fields func(codec.Reader) error) error {
	return r.do(op, c.Tag(), true, func(t tag.Tag, _ bool) error {
		return r.constructed(t, func() error {
			f := &frame{index: -1}
			f.extAfter, f.ext = c.ExtendedAfterField()
			r.frames = append(r.frames, f)
			if err := fields(r); err != nil {
				return err
			}
			r.frames = r.frames[:len(r.frames)-1]
			if r.pos < len(r.data) {
				if _, ext := c.ExtendedAfterField(); !ext {
					return codec.Malformed("%s: %d trailing octets", c.Name(), len(r.data)-r.pos)
				}
			}
			return nil
		})
	})
}

func (r *Reader) ReadSequence(c codec.SequenceConstraint, fields func(codec.Reader) error) error {
	return r.readComponents("sequence "+c.Name(), c, fields)
}

func (r *Reader) ReadSet(c codec.SetConstraint, fields func(codec.Reader) error) error {
	return r.readComponents("set "+c.Name(), c, fields)
}

func (r *Reader) readList(op string, c codec.SizeConstraint, element func(codec.Reader) error) error {
	return r.do(op, c.Tag(), true, func(t tag.Tag, _ bool) error {
		return r.constructed(t, func() error {
			var n uint64
			for r.pos < len(r.data) {
				if err := element(r); err != nil {
					return err
				}
				n++
			}
			return codec.CheckSize(c.SizeBounds(), n)
		})
	})
}

func (r *Reader) ReadSequenceOf(c codec.SizeConstraint, element func(codec.Reader) error) error {
	return r.readList("sequence of", c, element)
}

func (r *Reader) ReadSetOf(c codec.SizeConstraint, element func(codec.Reader) error) error {
	return r.readList("set of", c, element)
}

func (r *Reader) ReadEnumerated(c codec.EnumeratedConstraint) (uint64, error) {
	var index uint64
	err := r.do("enumerated "+c.Name(), c.Tag(), true, func(t tag.Tag, _ bool) error {
		p, err := r.primitive(t)
		if err != nil {
			return err
		}
		v, err := wire.ParseInt(p)
		if err != nil || v < 0 {
			return codec.Malformed("bad enumerated content % x", p)
		}
		if uint64(v) >= c.VariantCount() {
			return codec.ErrUnknownVariant
		}
		index = uint64(v)
		return nil
	})
	return index, err
}

func (r *Reader) ReadChoice(c codec.ChoiceConstraint, v codec.ChoiceReader) (bool, error) {
	var known bool
	err := r.do("choice "+c.Name(), c.Tag(), true, func(t tag.Tag, _ bool) error {
		return r.constructed(t, func() error {
			h, err := parseHeader(r.data[r.pos:])
			if err != nil {
				return err
			}
			if h.tag.Class != tag.ClassContextSpecific || !h.constructed {
				return codec.Malformed("choice index element has tag %s", h.tag)
			}
			content, err := r.rawContent(h.tag)
			if err != nil {
				return err
			}
			index := h.tag.Number
			if index >= c.VariantCount() {
				if !c.Extensible() {
					return codec.ErrUnknownVariant
				}
				return nil
			}
			sub := NewReader(content)
			ok, err := v.ReadContent(index, sub)
			if err != nil {
				return err
			}
			if !ok {
				return codec.ErrUnknownVariant
			}
			known = true
			return sub.checkConsumed()
		})
	})
	return known, err
}

func (r *Reader) ReadOpenType(c codec.OpenTypeConstraint, v codec.OpenTypeReader, key uint64) (bool, error) {
	var known bool
	err := r.do("open type "+c.Name(), c.Tag(), true, func(t tag.Tag, _ bool) error {
		content, err := r.rawContent(t)
		if err != nil {
			return err
		}
		if key < c.VariantCount() {
			sub := NewReader(content)
			if known, err = v.ReadContent(key, sub); err != nil {
				return err
			}
			if known {
				return sub.checkConsumed()
			}
		}
		if !c.Extensible() {
			return codec.ErrUnknownVariant
		}
		return nil
	})
	return known, err
}

// checkConsumed fails when a variant left part of its element unread.
func (r *Reader) checkConsumed() error {
	if n := r.Remaining(); n > 0 {
		return codec.Malformed("%d octets of variant content unread", n)
	}
	return nil
}

// ReadOptional treats a field as present when the next element carries
// the field's tag.
func (r *Reader) ReadOptional(inner func(codec.Reader) error) (bool, error) {
	var present bool
	err := r.do("optional", tag.DefaultSequence, false, func(t tag.Tag, atField bool) error {
		if atField {
			f := r.top()
			if r.pos >= len(r.data) {
				return nil
			}
			h, err := parseHeader(r.data[r.pos:])
			if err != nil {
				return err
			}
			if h.tag != tag.ContextSpecific(uint64(f.index)) {
				return nil
			}
			present = true
			return inner(r)
		}
		return r.constructed(t, func() error {
			if r.pos >= len(r.data) {
				return nil
			}
			present = true
			return inner(r)
		})
	})
	return present, err
}

func (r *Reader) ReadDefault(inner func(codec.Reader) error) (bool, error) {
	return r.ReadOptional(inner)
}

func (r *Reader) ReadInteger(c codec.IntegerConstraint) (int64, error) {
	var v int64
	err := r.do("integer", c.Tag(), true, func(t tag.Tag, _ bool) error {
		p, err := r.primitive(t)
		if err != nil {
			return err
		}
		if v, err = wire.ParseInt(p); err != nil {
			return codec.Malformed("%v", err)
		}
		return codec.CheckInteger(c, v)
	})
	return v, err
}

func (r *Reader) readString(cs codec.Charset, c codec.SizeConstraint) (string, error) {
	var s string
	err := r.do(cs.String(), c.Tag(), true, func(t tag.Tag, _ bool) error {
		p, err := r.primitive(t)
		if err != nil {
			return err
		}
		if !utf8.Valid(p) {
			return codec.Malformed("invalid UTF-8")
		}
		s = string(p)
		for _, ch := range s {
			if !cs.Permits(ch) {
				return codec.Malformed("%s does not permit %q", cs, ch)
			}
		}
		return codec.CheckString(cs, c, s)
	})
	return s, err
}

func (r *Reader) ReadUTF8String(c codec.SizeConstraint) (string, error) {
	return r.readString(codec.CharsetUTF8, c)
}

func (r *Reader) ReadIA5String(c codec.SizeConstraint) (string, error) {
	return r.readString(codec.CharsetIA5, c)
}

func (r *Reader) ReadNumericString(c codec.SizeConstraint) (string, error) {
	return r.readString(codec.CharsetNumeric, c)
}

func (r *Reader) ReadPrintableString(c codec.SizeConstraint) (string, error) {
	return r.readString(codec.CharsetPrintable, c)
}

func (r *Reader) ReadVisibleString(c codec.SizeConstraint) (string, error) {
	return r.readString(codec.CharsetVisible, c)
}

func (r *Reader) ReadOctetString(c codec.SizeConstraint) ([]byte, error) {
	var out []byte
	err := r.do("OCTET STRING", c.Tag(), true, func(t tag.Tag, _ bool) error {
		p, err := r.primitive(t)
		if err != nil {
			return err
		}
		out = append([]byte{}, p...)
		return codec.CheckSize(c.SizeBounds(), uint64(len(out)))
	})
	return out, err
}

func (r *Reader) ReadBitString(c codec.SizeConstraint) (codec.Bits, error) {
	var b codec.Bits
	err := r.do("BIT STRING", c.Tag(), true, func(t tag.Tag, _ bool) error {
		p, err := r.primitive(t)
		if err != nil {
			return err
		}
		if len(p) == 0 || p[0] > 7 || (len(p) == 1 && p[0] != 0) {
			return codec.Malformed("bad bit string content % x", p)
		}
		b = codec.Bits{
			Data: append([]byte{}, p[1:]...),
			Len:  8*uint64(len(p)-1) - uint64(p[0]),
		}
		return codec.CheckSize(c.SizeBounds(), b.Len)
	})
	return b, err
}

func (r *Reader) ReadBoolean(c codec.Constraint) (bool, error) {
	var v bool
	err := r.do("BOOLEAN", c.Tag(), true, func(t tag.Tag, _ bool) error {
		p, err := r.primitive(t)
		if err != nil {
			return err
		}
		if len(p) != 1 {
			return codec.Malformed("boolean of %d octets", len(p))
		}
		v = p[0] != 0
		return nil
	})
	return v, err
}

func (r *Reader) ReadNull(c codec.Constraint) error {
	return r.do("NULL", c.Tag(), true, func(t tag.Tag, _ bool) error {
		p, err := r.primitive(t)
		if err != nil {
			return err
		}
		if len(p) != 0 {
			return codec.Malformed("null of %d octets", len(p))
		}
		return nil
	})
}
