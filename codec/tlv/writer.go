package tlv

import (
	"errors"

	"github.com/golangsnmp/goasn1/codec"
	"github.com/golangsnmp/goasn1/codec/internal/wire"
	"github.com/golangsnmp/goasn1/tag"
)

// frame tracks the fields of a SEQUENCE or SET. The first element of
// each field is tagged with the field index.
type frame struct {
	depth    int
	index    int
	override bool

	ext      bool
	extAfter uint64
}

func (f *frame) isAddition() bool {
	return f.ext && uint64(f.index) > f.extAfter
}

func (f *frame) begin() bool {
	atField := f.depth == 0
	if atField {
		f.index++
		f.override = true
	}
	f.depth++
	return atField
}

// elementTag returns the tag of the element about to be written or read.
func elementTag(f *frame, def tag.Tag) tag.Tag {
	if f != nil && f.override {
		f.override = false
		return tag.ContextSpecific(uint64(f.index))
	}
	return def
}

// Writer is a codec.Writer producing tag/length/value output. The zero
// value is ready to use.
type Writer struct {
	buf    []byte
	frames []*frame
}

var _ codec.Writer = (*Writer)(nil)

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the encoding.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of octets written.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) top() *frame {
	if len(w.frames) == 0 {
		return nil
	}
	return w.frames[len(w.frames)-1]
}

// do runs one construct, dropping its output when fn fails. Element
// constructs receive their tag; wrappers pass element false and receive
// whether they start a field.
func (w *Writer) do(op string, def tag.Tag, element bool, fn func(t tag.Tag, atField bool) error) error {
	mark := len(w.buf)
	frames := len(w.frames)
	f := w.top()
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

	err := fn(t, atField)

	w.frames = w.frames[:frames]
	if err != nil {
		w.buf = w.buf[:mark]
		if f != nil {
			*f = snap
		}
		return wrap("write "+op, uint64(mark), err)
	}
	if f != nil {
		f.depth--
	}
	return nil
}

func wrap(op string, pos uint64, err error) error {
	var ce *codec.Error
	if errors.As(err, &ce) {
		return err
	}
	return &codec.Error{Format: "tlv", Op: op, Pos: pos, Err: err}
}

// constructed writes an element whose content is produced by content.
func (w *Writer) constructed(t tag.Tag, content func() error) error {
	mark := len(w.buf)
	if err := content(); err != nil {
		return err
	}
	body := append([]byte(nil), w.buf[mark:]...)
	w.buf = appendHeader(w.buf[:mark], t, true, len(body))
	w.buf = append(w.buf, body...)
	return nil
}

func (w *Writer) primitive(t tag.Tag, p []byte) {
	w.buf = appendHeader(w.buf, t, false, len(p))
	w.buf = append(w.buf, p...)
}

func (w *Writer) writeComponents(op string, c codec.SequenceConstraint, fields func(codec.Writer) error) error {
	return w.do(op, c.Tag(), true, func(t tag.Tag, _ bool) error {
		return w.constructed(t, func() error {
			f := &frame{index: -1}
			w.frames = append(w.frames, f)
			if err := fields(w); err != nil {
				return err
			}
			w.frames = w.frames[:len(w.frames)-1]
			if uint64(f.index+1) > c.FieldCount() {
				return codec.ConstraintViolation("%s: %d fields written, %d declared", c.Name(), f.index+1, c.FieldCount())
			}
			return nil
		})
	})
}

func (w *Writer) WriteSequence(c codec.SequenceConstraint, fields func(codec.Writer) error) error {
	return w.writeComponents("sequence "+c.Name(), c, fields)
}

func (w *Writer) WriteSet(c codec.SetConstraint, fields func(codec.Writer) error) error {
	return w.writeComponents("set "+c.Name(), c, fields)
}

func (w *Writer) writeList(op string, c codec.SizeConstraint, n int, element func(codec.Writer, int) error) error {
	return w.do(op, c.Tag(), true, func(t tag.Tag, _ bool) error {
		if err := codec.CheckSize(c.SizeBounds(), uint64(n)); err != nil {
			return err
		}
		return w.constructed(t, func() error {
			for i := 0; i < n; i++ {
				if err := element(w, i); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func (w *Writer) WriteSequenceOf(c codec.SizeConstraint, n int, element func(codec.Writer, int) error) error {
	return w.writeList("sequence of", c, n, element)
}

func (w *Writer) WriteSetOf(c codec.SizeConstraint, n int, element func(codec.Writer, int) error) error {
	return w.writeList("set of", c, n, element)
}

func (w *Writer) WriteEnumerated(c codec.EnumeratedConstraint, index uint64) error {
	return w.do("enumerated "+c.Name(), c.Tag(), true, func(t tag.Tag, _ bool) error {
		if err := codec.CheckIndex(c.Name(), c.VariantCount(), index); err != nil {
			return err
		}
		w.primitive(t, wire.AppendInt(nil, int64(index)))
		return nil
	})
}

func (w *Writer) WriteChoice(c codec.ChoiceConstraint, v codec.Choice) error {
	return w.do("choice "+c.Name(), c.Tag(), true, func(t tag.Tag, _ bool) error {
		index, ok := v.ChoiceIndex()
		if !ok {
			return codec.ErrNoVariant
		}
		if err := codec.CheckIndex(c.Name(), c.VariantCount(), index); err != nil {
			return err
		}
		return w.constructed(t, func() error {
			return w.constructed(tag.ContextSpecific(index), func() error {
				return v.WriteContent(w)
			})
		})
	})
}

func (w *Writer) WriteOpenType(c codec.OpenTypeConstraint, v codec.OpenType) error {
	return w.do("open type "+c.Name(), c.Tag(), true, func(t tag.Tag, _ bool) error {
		index, ok := v.ChoiceIndex()
		if !ok {
			return codec.ErrNoVariant
		}
		if err := codec.CheckIndex(c.Name(), c.VariantCount(), index); err != nil {
			return err
		}
		return w.constructed(t, func() error {
			return v.WriteContent(w)
		})
	})
}

// WriteOptional omits an absent field. Outside a SEQUENCE or SET the
// value is wrapped in a SEQUENCE of zero or one element.
func (w *Writer) WriteOptional(present bool, inner func(codec.Writer) error) error {
	return w.do("optional", tag.DefaultSequence, false, func(t tag.Tag, atField bool) error {
		if atField {
			if !present {
				return nil
			}
			return inner(w)
		}
		return w.constructed(t, func() error {
			if !present {
				return nil
			}
			return inner(w)
		})
	})
}

func (w *Writer) WriteDefault(isDefault bool, inner func(codec.Writer) error) error {
	return w.WriteOptional(!isDefault, inner)
}

func (w *Writer) WriteInteger(c codec.IntegerConstraint, v int64) error {
	return w.do("integer", c.Tag(), true, func(t tag.Tag, _ bool) error {
		if err := codec.CheckInteger(c, v); err != nil {
			return err
		}
		w.primitive(t, wire.AppendInt(nil, v))
		return nil
	})
}

func (w *Writer) writeString(cs codec.Charset, c codec.SizeConstraint, v string) error {
	return w.do(cs.String(), c.Tag(), true, func(t tag.Tag, _ bool) error {
		if err := codec.CheckString(cs, c, v); err != nil {
			return err
		}
		w.primitive(t, []byte(v))
		return nil
	})
}

func (w *Writer) WriteUTF8String(c codec.SizeConstraint, v string) error {
	return w.writeString(codec.CharsetUTF8, c, v)
}

func (w *Writer) WriteIA5String(c codec.SizeConstraint, v string) error {
	return w.writeString(codec.CharsetIA5, c, v)
}

func (w *Writer) WriteNumericString(c codec.SizeConstraint, v string) error {
	return w.writeString(codec.CharsetNumeric, c, v)
}

func (w *Writer) WritePrintableString(c codec.SizeConstraint, v string) error {
	return w.writeString(codec.CharsetPrintable, c, v)
}

func (w *Writer) WriteVisibleString(c codec.SizeConstraint, v string) error {
	return w.writeString(codec.CharsetVisible, c, v)
}

func (w *Writer) WriteOctetString(c codec.SizeConstraint, v []byte) error {
	return w.do("OCTET STRING", c.Tag(), true, func(t tag.Tag, _ bool) error {
		if err := codec.CheckSize(c.SizeBounds(), uint64(len(v))); err != nil {
			return err
		}
		w.primitive(t, v)
		return nil
	})
}

// WriteBitString writes the count of unused bits in the last octet
// followed by the data.
func (w *Writer) WriteBitString(c codec.SizeConstraint, v codec.Bits) error {
	return w.do("BIT STRING", c.Tag(), true, func(t tag.Tag, _ bool) error {
		if v.Len > 8*uint64(len(v.Data)) {
			return codec.ConstraintViolation("bit length %d exceeds %d data octets", v.Len, len(v.Data))
		}
		if err := codec.CheckSize(c.SizeBounds(), v.Len); err != nil {
			return err
		}
		n := (v.Len + 7) / 8
		unused := byte(8*n - v.Len)
		p := make([]byte, 1+n)
		p[0] = unused
		copy(p[1:], v.Data[:n])
		if n > 0 {
			p[n] &^= byte(1)<<unused - 1
		}
		w.primitive(t, p)
		return nil
	})
}

func (w *Writer) WriteBoolean(c codec.Constraint, v bool) error {
	return w.do("BOOLEAN", c.Tag(), true, func(t tag.Tag, _ bool) error {
		b := byte(0x00)
		if v {
			b = 0xff
		}
		w.primitive(t, []byte{b})
		return nil
	})
}

func (w *Writer) WriteNull(c codec.Constraint) error {
	return w.do("NULL", c.Tag(), true, func(t tag.Tag, _ bool) error {
		w.primitive(t, nil)
		return nil
	})
}
