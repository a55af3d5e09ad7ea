package uper

import (
	"unicode/utf8"

	"github.com/golangsnmp/goasn1/codec"
)

// rframe tracks the fields of a SEQUENCE or SET being read.
type rframe struct {
	depth int
	index int

	bitmap  []bool
	nextOpt int

	ext      bool
	extAfter uint64
	extBit   bool

	// adds holds extension addition contents once the addition header
	// is read. A nil entry is an absent addition.
	adds     [][]byte
	addsRead bool

	// main is the outer input while an addition field is read from its
	// own content.
	main   *bitReader
	absent bool
}

func (f *rframe) isAddition(index int) bool {
	return f.ext && uint64(index) > f.extAfter
}

// Reader is a codec.Reader over unaligned PER style input.
type Reader struct {
	src    *bitReader
	frames []*rframe
}

var _ codec.Reader = (*Reader)(nil)

// NewReader returns a Reader positioned at the start of p.
func NewReader(p []byte) *Reader {
	return &Reader{src: newBitReader(p)}
}

// Pos returns the current bit position.
func (r *Reader) Pos() uint64 { return r.src.pos }

func (r *Reader) top() *rframe {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

// do runs one construct, restoring the position and field state when fn
// fails. atField is true when the construct starts a field of the
// enclosing SEQUENCE or SET.
func (r *Reader) do(op string, fn func(f *rframe, atField bool) error) error {
	src, pos := r.src, r.src.pos
	frames := len(r.frames)
	f := r.top()
	var snap rframe
	if f != nil {
		snap = *f
	}

	// An absent extension addition reads as the zero value.
	atField, err := r.begin(f)
	if err == nil && !(atField && f.absent) {
		err = fn(f, atField)
	}
	if err != nil {
		r.frames = r.frames[:frames]
		if f != nil {
			*f = snap
		}
		r.src = src
		r.src.pos = pos
		return wrap("read "+op, pos, err)
	}
	r.end(f)
	return nil
}

func (r *Reader) begin(f *rframe) (bool, error) {
	if f == nil {
		return false, nil
	}
	atField := f.depth == 0
	if atField {
		f.index++
		if f.isAddition(f.index) {
			if err := r.readAdditions(f); err != nil {
				return false, err
			}
			i := uint64(f.index) - f.extAfter - 1
			f.main = r.src
			if i < uint64(len(f.adds)) && f.adds[i] != nil {
				r.src, f.absent = newBitReader(f.adds[i]), false
			} else {
				r.src, f.absent = newBitReader(nil), true
			}
		}
	}
	f.depth++
	return atField, nil
}

func (r *Reader) end(f *rframe) {
	if f == nil {
		return
	}
	f.depth--
	if f.depth == 0 && f.main != nil {
		r.src, f.main = f.main, nil
	}
}

// readAdditions reads the addition count, presence bitmap and open
// field contents that follow the root fields.
func (r *Reader) readAdditions(f *rframe) error {
	if f.addsRead {
		return nil
	}
	f.addsRead = true
	if !f.extBit {
		return nil
	}
	n, err := readNormallySmall(r.src)
	if err != nil {
		return err
	}
	n++
	if n > r.src.remaining() {
		return codec.Malformed("%d extension additions exceed input", n)
	}
	present := make([]bool, n)
	for i := range present {
		if present[i], err = r.src.readBit(); err != nil {
			return err
		}
	}
	f.adds = make([][]byte, n)
	for i, ok := range present {
		if !ok {
			continue
		}
		if f.adds[i], err = readOctets(r.src); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) readComponents(op string, c codec.SequenceConstraint, fields func(codec.Reader) error) error {
	return r.do(op, func(*rframe, bool) error {
		f := &rframe{index: -1}
		f.extAfter, f.ext = c.ExtendedAfterField()
		if f.ext {
			var err error
			if f.extBit, err = r.src.readBit(); err != nil {
				return err
			}
		}
		n := c.StdOptionalFields()
		if n > r.src.remaining() {
			return codec.Malformed("%s: presence bitmap exceeds input", c.Name())
		}
		f.bitmap = make([]bool, n)
		for i := range f.bitmap {
			var err error
			if f.bitmap[i], err = r.src.readBit(); err != nil {
				return err
			}
		}

		r.frames = append(r.frames, f)
		if err := fields(r); err != nil {
			return err
		}
		r.frames = r.frames[:len(r.frames)-1]

		// Skip additions this schema does not know.
		return r.readAdditions(f)
	})
}

func (r *Reader) ReadSequence(c codec.SequenceConstraint, fields func(codec.Reader) error) error {
	return r.readComponents("sequence "+c.Name(), c, fields)
}

func (r *Reader) ReadSet(c codec.SetConstraint, fields func(codec.Reader) error) error {
	return r.readComponents("set "+c.Name(), c, fields)
}

func (r *Reader) readList(op string, c codec.SizeConstraint, element func(codec.Reader) error) error {
	return r.do(op, func(*rframe, bool) error {
		n, err := readSize(r.src, c.SizeBounds())
		if err != nil {
			return err
		}
		for i := uint64(0); i < n; i++ {
			if err := element(r); err != nil {
				return err
			}
		}
		return nil
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
	err := r.do("enumerated "+c.Name(), func(*rframe, bool) error {
		var err error
		if index, _, err = readIndex(r.src, c.StdVariantCount(), c.Extensible()); err != nil {
			return err
		}
		if index >= c.VariantCount() {
			return codec.ErrUnknownVariant
		}
		return nil
	})
	return index, err
}

func (r *Reader) ReadChoice(c codec.ChoiceConstraint, v codec.ChoiceReader) (bool, error) {
	var known bool
	err := r.do("choice "+c.Name(), func(*rframe, bool) error {
		index, ext, err := readIndex(r.src, c.StdVariantCount(), c.Extensible())
		if err != nil {
			return err
		}
		if !ext {
			ok, err := v.ReadContent(index, r)
			if err != nil {
				return err
			}
			if !ok {
				return codec.ErrUnknownVariant
			}
			known = true
			return nil
		}
		content, err := readOctets(r.src)
		if err != nil {
			return err
		}
		if index >= c.VariantCount() {
			return nil
		}
		sub := NewReader(content)
		if known, err = v.ReadContent(index, sub); err != nil || !known {
			return err
		}
		return sub.checkConsumed(content)
	})
	return known, err
}

func (r *Reader) ReadOpenType(c codec.OpenTypeConstraint, v codec.OpenTypeReader, key uint64) (bool, error) {
	var known bool
	err := r.do("open type "+c.Name(), func(*rframe, bool) error {
		content, err := readOctets(r.src)
		if err != nil {
			return err
		}
		if key < c.VariantCount() {
			sub := NewReader(content)
			if known, err = v.ReadContent(key, sub); err != nil {
				return err
			}
			if known {
				return sub.checkConsumed(content)
			}
		}
		if !c.Extensible() {
			return codec.ErrUnknownVariant
		}
		return nil
	})
	return known, err
}

// checkConsumed fails when a variant read from an open field left a whole
// octet or more unread. An empty variant is written as one zero octet.
func (r *Reader) checkConsumed(content []byte) error {
	left := r.src.remaining()
	if left < 8 || (r.src.pos == 0 && len(content) == 1 && content[0] == 0) {
		return nil
	}
	return codec.Malformed("%d bits of open field content unread", left)
}

func (r *Reader) ReadOptional(inner func(codec.Reader) error) (bool, error) {
	var present bool
	err := r.do("optional", func(f *rframe, atField bool) error {
		switch {
		case atField && f.isAddition(f.index):
			present = !f.absent
		case atField:
			if f.nextOpt >= len(f.bitmap) {
				return codec.Malformed("more optional fields than the presence bitmap holds")
			}
			present = f.bitmap[f.nextOpt]
			f.nextOpt++
		default:
			var err error
			if present, err = r.src.readBit(); err != nil {
				return err
			}
		}
		if !present {
			return nil
		}
		return inner(r)
	})
	return present, err
}

func (r *Reader) ReadDefault(inner func(codec.Reader) error) (bool, error) {
	return r.ReadOptional(inner)
}

func (r *Reader) ReadInteger(c codec.IntegerConstraint) (int64, error) {
	var v int64
	err := r.do("integer", func(*rframe, bool) error {
		var err error
		v, err = readInteger(r.src, c.Bounds())
		return err
	})
	return v, err
}

func (r *Reader) ReadUTF8String(c codec.SizeConstraint) (string, error) {
	var s string
	err := r.do("UTF8String", func(*rframe, bool) error {
		p, err := readOctets(r.src)
		if err != nil {
			return err
		}
		if !utf8.Valid(p) {
			return codec.Malformed("invalid UTF-8")
		}
		s = string(p)
		return codec.CheckString(codec.CharsetUTF8, c, s)
	})
	return s, err
}

func (r *Reader) readKnown(cs codec.Charset, c codec.SizeConstraint) (string, error) {
	var s string
	err := r.do(cs.String(), func(*rframe, bool) error {
		n, err := readSize(r.src, c.SizeBounds())
		if err != nil {
			return err
		}
		cw := charWidth(cs)
		if n*uint64(cw) > r.src.remaining() {
			return codec.Malformed("%d characters exceed input", n)
		}
		buf := make([]byte, n)
		for i := range buf {
			v, err := r.src.readBits(cw)
			if err != nil {
				return err
			}
			if buf[i], err = decodeChar(cs, v); err != nil {
				return err
			}
		}
		s = string(buf)
		return nil
	})
	return s, err
}

func (r *Reader) ReadIA5String(c codec.SizeConstraint) (string, error) {
	return r.readKnown(codec.CharsetIA5, c)
}

func (r *Reader) ReadNumericString(c codec.SizeConstraint) (string, error) {
	return r.readKnown(codec.CharsetNumeric, c)
}

func (r *Reader) ReadPrintableString(c codec.SizeConstraint) (string, error) {
	return r.readKnown(codec.CharsetPrintable, c)
}

func (r *Reader) ReadVisibleString(c codec.SizeConstraint) (string, error) {
	return r.readKnown(codec.CharsetVisible, c)
}

func (r *Reader) ReadOctetString(c codec.SizeConstraint) ([]byte, error) {
	var p []byte
	err := r.do("OCTET STRING", func(*rframe, bool) error {
		n, err := readSize(r.src, c.SizeBounds())
		if err != nil {
			return err
		}
		p, err = r.src.readBytes(n)
		return err
	})
	return p, err
}

func (r *Reader) ReadBitString(c codec.SizeConstraint) (codec.Bits, error) {
	var b codec.Bits
	err := r.do("BIT STRING", func(*rframe, bool) error {
		n, err := readSize(r.src, c.SizeBounds())
		if err != nil {
			return err
		}
		if err := r.src.need(n); err != nil {
			return err
		}
		b = codec.NewBits(n)
		for i := uint64(0); i < n; i++ {
			bit, _ := r.src.readBit()
			b.Set(i, bit)
		}
		return nil
	})
	return b, err
}

func (r *Reader) ReadBoolean(_ codec.Constraint) (bool, error) {
	var v bool
	err := r.do("BOOLEAN", func(*rframe, bool) error {
		var err error
		v, err = r.src.readBit()
		return err
	})
	return v, err
}

func (r *Reader) ReadNull(_ codec.Constraint) error {
	return r.do("NULL", func(*rframe, bool) error { return nil })
}
