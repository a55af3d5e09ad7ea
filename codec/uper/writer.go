package uper

import (
	"errors"

	"github.com/golangsnmp/goasn1/codec"
)

// field is one SEQUENCE or SET field being written.
type field struct {
	optional bool
	present  bool
	bits     bitBuffer
}

// frame collects the fields of a SEQUENCE or SET until the preamble can
// be written.
type frame struct {
	depth  int
	fields []*field
}

// Writer is a codec.Writer producing unaligned PER style output. The
// zero value is ready to use.
type Writer struct {
	root   bitBuffer
	frames []*frame
}

var _ codec.Writer = (*Writer)(nil)

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the encoding padded to whole octets. An empty encoding
// is one zero octet.
func (w *Writer) Bytes() []byte {
	if w.root.n == 0 {
		return []byte{0}
	}
	return w.root.octets()
}

// BitLen returns the number of bits written.
func (w *Writer) BitLen() uint64 { return w.root.n }

func (w *Writer) top() *frame {
	if len(w.frames) == 0 {
		return nil
	}
	return w.frames[len(w.frames)-1]
}

// out returns the buffer the current construct writes into.
func (w *Writer) out() *bitBuffer {
	if f := w.top(); f != nil {
		return &f.fields[len(f.fields)-1].bits
	}
	return &w.root
}

// do runs one construct. A construct directly inside a SEQUENCE or SET
// starts a new field, which fn receives.
func (w *Writer) do(op string, fn func(b *bitBuffer, fld *field) error) error {
	f := w.top()
	var fld *field
	if f != nil {
		if f.depth == 0 {
			fld = &field{present: true}
			f.fields = append(f.fields, fld)
		}
		f.depth++
	}
	b := w.out()
	mark := b.n
	frames := len(w.frames)

	err := fn(b, fld)

	w.frames = w.frames[:frames]
	if f != nil {
		f.depth--
	}
	if err == nil {
		return nil
	}
	b.truncate(mark)
	if fld != nil {
		f.fields = f.fields[:len(f.fields)-1]
	}
	return wrap("write "+op, mark, err)
}

func wrap(op string, pos uint64, err error) error {
	var ce *codec.Error
	if errors.As(err, &ce) {
		return err
	}
	return &codec.Error{Format: "uper", Op: op, Pos: pos, Err: err}
}

func (w *Writer) writeComponents(op string, c codec.SequenceConstraint, fields func(codec.Writer) error) error {
	return w.do(op, func(b *bitBuffer, _ *field) error {
		f := &frame{}
		w.frames = append(w.frames, f)
		if err := fields(w); err != nil {
			return err
		}
		w.frames = w.frames[:len(w.frames)-1]
		return encodeComponents(b, c, f.fields)
	})
}

// encodeComponents writes the extension bit, the presence bitmap of root
// OPTIONAL and DEFAULT fields, the root fields, then extension additions
// as open fields.
func encodeComponents(b *bitBuffer, c codec.SequenceConstraint, fields []*field) error {
	if uint64(len(fields)) > c.FieldCount() {
		return codec.ConstraintViolation("%s: %d fields written, %d declared", c.Name(), len(fields), c.FieldCount())
	}
	root, adds := fields, []*field(nil)
	extAfter, ext := c.ExtendedAfterField()
	if ext && extAfter+1 < uint64(len(fields)) {
		root, adds = fields[:extAfter+1], fields[extAfter+1:]
	}

	anyAdded := false
	for _, f := range adds {
		anyAdded = anyAdded || f.present
	}
	if ext {
		b.writeBit(anyAdded)
	}

	var optional uint64
	for _, f := range root {
		if f.optional {
			optional++
		}
	}
	if optional != c.StdOptionalFields() {
		return codec.ConstraintViolation("%s: %d optional fields written, %d declared", c.Name(), optional, c.StdOptionalFields())
	}
	for _, f := range root {
		if f.optional {
			b.writeBit(f.present)
		}
	}
	for _, f := range root {
		b.appendBits(&f.bits)
	}

	if !anyAdded {
		return nil
	}
	if err := writeNormallySmall(b, uint64(len(adds)-1)); err != nil {
		return err
	}
	for _, f := range adds {
		b.writeBit(f.present)
	}
	for _, f := range adds {
		if f.present {
			if err := writeOpen(b, &f.bits); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) WriteSequence(c codec.SequenceConstraint, fields func(codec.Writer) error) error {
	return w.writeComponents("sequence "+c.Name(), c, fields)
}

func (w *Writer) WriteSet(c codec.SetConstraint, fields func(codec.Writer) error) error {
	return w.writeComponents("set "+c.Name(), c, fields)
}

func (w *Writer) writeList(op string, c codec.SizeConstraint, n int, element func(codec.Writer, int) error) error {
	return w.do(op, func(b *bitBuffer, _ *field) error {
		if err := writeSize(b, c.SizeBounds(), uint64(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := element(w, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *Writer) WriteSequenceOf(c codec.SizeConstraint, n int, element func(codec.Writer, int) error) error {
	return w.writeList("sequence of", c, n, element)
}

func (w *Writer) WriteSetOf(c codec.SizeConstraint, n int, element func(codec.Writer, int) error) error {
	return w.writeList("set of", c, n, element)
}

func (w *Writer) WriteEnumerated(c codec.EnumeratedConstraint, index uint64) error {
	return w.do("enumerated "+c.Name(), func(b *bitBuffer, _ *field) error {
		if err := codec.CheckIndex(c.Name(), c.VariantCount(), index); err != nil {
			return err
		}
		return writeIndex(b, c.StdVariantCount(), c.Extensible(), index)
	})
}

func (w *Writer) WriteChoice(c codec.ChoiceConstraint, v codec.Choice) error {
	return w.do("choice "+c.Name(), func(b *bitBuffer, _ *field) error {
		index, ok := v.ChoiceIndex()
		if !ok {
			return codec.ErrNoVariant
		}
		if err := codec.CheckIndex(c.Name(), c.VariantCount(), index); err != nil {
			return err
		}
		if err := writeIndex(b, c.StdVariantCount(), c.Extensible(), index); err != nil {
			return err
		}
		if index < c.StdVariantCount() {
			return v.WriteContent(w)
		}
		sub := NewWriter()
		if err := v.WriteContent(sub); err != nil {
			return err
		}
		return writeOpen(b, &sub.root)
	})
}

func (w *Writer) WriteOpenType(c codec.OpenTypeConstraint, v codec.OpenType) error {
	return w.do("open type "+c.Name(), func(b *bitBuffer, _ *field) error {
		index, ok := v.ChoiceIndex()
		if !ok {
			return codec.ErrNoVariant
		}
		if err := codec.CheckIndex(c.Name(), c.VariantCount(), index); err != nil {
			return err
		}
		sub := NewWriter()
		if err := v.WriteContent(sub); err != nil {
			return err
		}
		return writeOpen(b, &sub.root)
	})
}

func (w *Writer) WriteOptional(present bool, inner func(codec.Writer) error) error {
	return w.do("optional", func(b *bitBuffer, fld *field) error {
		if fld != nil {
			fld.optional, fld.present = true, present
		} else {
			b.writeBit(present)
		}
		if !present {
			return nil
		}
		return inner(w)
	})
}

func (w *Writer) WriteDefault(isDefault bool, inner func(codec.Writer) error) error {
	return w.WriteOptional(!isDefault, inner)
}

func (w *Writer) WriteInteger(c codec.IntegerConstraint, v int64) error {
	return w.do("integer", func(b *bitBuffer, _ *field) error {
		return writeInteger(b, c.Bounds(), v)
	})
}

func (w *Writer) WriteUTF8String(c codec.SizeConstraint, v string) error {
	return w.do("UTF8String", func(b *bitBuffer, _ *field) error {
		if err := codec.CheckString(codec.CharsetUTF8, c, v); err != nil {
			return err
		}
		return writeOctets(b, []byte(v))
	})
}

func (w *Writer) writeKnown(cs codec.Charset, c codec.SizeConstraint, v string) error {
	return w.do(cs.String(), func(b *bitBuffer, _ *field) error {
		if err := codec.CheckString(cs, c, v); err != nil {
			return err
		}
		if err := writeSize(b, c.SizeBounds(), uint64(len(v))); err != nil {
			return err
		}
		cw := charWidth(cs)
		for i := 0; i < len(v); i++ {
			b.writeBits(encodeChar(cs, v[i]), cw)
		}
		return nil
	})
}

func (w *Writer) WriteIA5String(c codec.SizeConstraint, v string) error {
	return w.writeKnown(codec.CharsetIA5, c, v)
}

func (w *Writer) WriteNumericString(c codec.SizeConstraint, v string) error {
	return w.writeKnown(codec.CharsetNumeric, c, v)
}

func (w *Writer) WritePrintableString(c codec.SizeConstraint, v string) error {
	return w.writeKnown(codec.CharsetPrintable, c, v)
}

func (w *Writer) WriteVisibleString(c codec.SizeConstraint, v string) error {
	return w.writeKnown(codec.CharsetVisible, c, v)
}

func (w *Writer) WriteOctetString(c codec.SizeConstraint, v []byte) error {
	return w.do("OCTET STRING", func(b *bitBuffer, _ *field) error {
		if err := writeSize(b, c.SizeBounds(), uint64(len(v))); err != nil {
			return err
		}
		b.writeBytes(v)
		return nil
	})
}

func (w *Writer) WriteBitString(c codec.SizeConstraint, v codec.Bits) error {
	return w.do("BIT STRING", func(b *bitBuffer, _ *field) error {
		if v.Len > 8*uint64(len(v.Data)) {
			return codec.ConstraintViolation("bit length %d exceeds %d data octets", v.Len, len(v.Data))
		}
		if err := writeSize(b, c.SizeBounds(), v.Len); err != nil {
			return err
		}
		for i := uint64(0); i < v.Len; i++ {
			b.writeBit(v.Bit(i))
		}
		return nil
	})
}

func (w *Writer) WriteBoolean(_ codec.Constraint, v bool) error {
	return w.do("BOOLEAN", func(b *bitBuffer, _ *field) error {
		b.writeBit(v)
		return nil
	})
}

func (w *Writer) WriteNull(_ codec.Constraint) error {
	return w.do("NULL", func(*bitBuffer, *field) error { return nil })
}
