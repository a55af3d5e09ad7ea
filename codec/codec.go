// Package codec defines the format-independent encode/decode protocol
// between generated ASN.1 types and wire formats.
//
// Generated code describes a value through Reader and Writer calls, one
// per ASN.1 construct. A wire format (see the uper and tlv packages)
// implements both interfaces and decides how each construct is laid out.
// Generated types never know which format is in use.
//
// Composite operations take callbacks that the format invokes at the
// point in the encoding where nested content belongs:
//
//	func (p *Person) ReadASN1(r codec.Reader) error {
//		return r.ReadSequence(personMeta, func(r codec.Reader) error {
//			var err error
//			p.Name, err = personName.ReadValue(r)
//			return err
//		})
//	}
//
// A failed read leaves the reader where the operation started. A failed
// write leaves no partial output.
package codec

// Reader decodes one value at a time from a format-specific input.
type Reader interface {
	// ReadSequence reads a SEQUENCE, calling fields once to read every
	// field in declaration order.
	ReadSequence(c SequenceConstraint, fields func(Reader) error) error
	// ReadSet reads a SET, with fields in declaration order.
	ReadSet(c SetConstraint, fields func(Reader) error) error
	// ReadSequenceOf reads a SEQUENCE OF, calling element once per
	// element.
	ReadSequenceOf(c SizeConstraint, element func(Reader) error) error
	// ReadSetOf reads a SET OF, calling element once per element.
	ReadSetOf(c SizeConstraint, element func(Reader) error) error
	// ReadEnumerated returns the declaration index of the encoded item.
	ReadEnumerated(c EnumeratedConstraint) (uint64, error)
	// ReadChoice reads a CHOICE into v. It returns false when the value
	// is an extension the schema does not know.
	ReadChoice(c ChoiceConstraint, v ChoiceReader) (bool, error)
	// ReadOpenType reads an open type whose variant is selected by key,
	// the discriminant taken from a sibling field. It returns false,
	// after skipping the content, when key names no variant and the type
	// is extensible.
	ReadOpenType(c OpenTypeConstraint, v OpenTypeReader, key uint64) (bool, error)
	// ReadOptional reads an OPTIONAL value. inner is called only when the
	// value is present.
	ReadOptional(inner func(Reader) error) (bool, error)
	// ReadDefault reads a value with a DEFAULT. inner is called only when
	// the value is encoded; false means the default applies.
	ReadDefault(inner func(Reader) error) (bool, error)

	ReadInteger(c IntegerConstraint) (int64, error)
	ReadUTF8String(c SizeConstraint) (string, error)
	ReadIA5String(c SizeConstraint) (string, error)
	ReadNumericString(c SizeConstraint) (string, error)
	ReadPrintableString(c SizeConstraint) (string, error)
	ReadVisibleString(c SizeConstraint) (string, error)
	ReadOctetString(c SizeConstraint) ([]byte, error)
	ReadBitString(c SizeConstraint) (Bits, error)
	ReadBoolean(c Constraint) (bool, error)
	ReadNull(c Constraint) error
}

// Writer encodes one value at a time into a format-specific output.
type Writer interface {
	WriteSequence(c SequenceConstraint, fields func(Writer) error) error
	WriteSet(c SetConstraint, fields func(Writer) error) error
	// WriteSequenceOf writes n elements, calling element with each index.
	WriteSequenceOf(c SizeConstraint, n int, element func(Writer, int) error) error
	WriteSetOf(c SizeConstraint, n int, element func(Writer, int) error) error
	WriteEnumerated(c EnumeratedConstraint, index uint64) error
	WriteChoice(c ChoiceConstraint, v Choice) error
	// WriteOpenType writes the variant v holds. The discriminant is
	// written separately, by the sibling field that carries it.
	WriteOpenType(c OpenTypeConstraint, v OpenType) error
	// WriteOptional writes the presence of an OPTIONAL value and, when
	// present, calls inner.
	WriteOptional(present bool, inner func(Writer) error) error
	// WriteDefault calls inner unless the value equals its default.
	WriteDefault(isDefault bool, inner func(Writer) error) error

	WriteInteger(c IntegerConstraint, v int64) error
	WriteUTF8String(c SizeConstraint, v string) error
	WriteIA5String(c SizeConstraint, v string) error
	WriteNumericString(c SizeConstraint, v string) error
	WritePrintableString(c SizeConstraint, v string) error
	WriteVisibleString(c SizeConstraint, v string) error
	WriteOctetString(c SizeConstraint, v []byte) error
	WriteBitString(c SizeConstraint, v Bits) error
	WriteBoolean(c Constraint, v bool) error
	WriteNull(c Constraint) error
}

// Readable is a generated type that decodes itself.
type Readable interface {
	ReadASN1(r Reader) error
}

// Writable is a generated type that encodes itself.
type Writable interface {
	WriteASN1(w Writer) error
}

// Choice is the write side of a CHOICE value.
type Choice interface {
	// ChoiceIndex returns the declaration index of the held variant, or
	// false when the value holds nothing.
	ChoiceIndex() (uint64, bool)
	// WriteContent writes the held variant.
	WriteContent(w Writer) error
}

// ChoiceReader is the read side of a CHOICE value.
type ChoiceReader interface {
	// ReadContent reads the variant at index. It returns false when index
	// names no variant.
	ReadContent(index uint64, r Reader) (bool, error)
}

// OpenType is the write side of an open type value. Indexes are
// variant keys.
type OpenType interface {
	ChoiceIndex() (uint64, bool)
	WriteContent(w Writer) error
}

// OpenTypeReader is the read side of an open type value.
type OpenTypeReader interface {
	ReadContent(index uint64, r Reader) (bool, error)
}

// Bits is a BIT STRING value of Len bits, most significant bit first.
type Bits struct {
	Data []byte
	Len  uint64
}

// NewBits returns a zeroed BIT STRING of n bits.
func NewBits(n uint64) Bits {
	return Bits{Data: make([]byte, (n+7)/8), Len: n}
}

// Bit reports whether bit i is set. Bits past Len are clear.
func (b Bits) Bit(i uint64) bool {
	if i >= b.Len {
		return false
	}
	return b.Data[i/8]&(0x80>>(i%8)) != 0
}

// Set sets bit i, which must be below Len.
func (b Bits) Set(i uint64, v bool) {
	if v {
		b.Data[i/8] |= 0x80 >> (i % 8)
	} else {
		b.Data[i/8] &^= 0x80 >> (i % 8)
	}
}
