package codec

// ReadableType reads values of T. Descriptors are stateless and hold only
// constraint metadata.
type ReadableType[T any] interface {
	ReadValue(r Reader) (T, error)
}

// WritableType writes values of T.
type WritableType[T any] interface {
	WriteValue(w Writer, v T) error
}

// Type reads and writes values of T.
type Type[T any] interface {
	ReadableType[T]
	WritableType[T]
}

// KeyedReadableType reads values of T whose variant is selected by an
// external key. Only open type descriptors provide it; ok is false for
// an extension variant the schema does not know.
type KeyedReadableType[T any] interface {
	ReadValueByKey(r Reader, key uint64) (v T, ok bool, err error)
}

// Number is an integer type a generated INTEGER may use.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32
}

type Boolean struct{ C Constraint }

func (d Boolean) ReadValue(r Reader) (bool, error)   { return r.ReadBoolean(d.C) }
func (d Boolean) WriteValue(w Writer, v bool) error { return w.WriteBoolean(d.C, v) }

type Null struct{ C Constraint }

func (d Null) ReadValue(r Reader) (struct{}, error)  { return struct{}{}, r.ReadNull(d.C) }
func (d Null) WriteValue(w Writer, _ struct{}) error { return w.WriteNull(d.C) }

// Integer converts between N and the int64 the formats use. Values that
// do not fit N are a constraint violation.
type Integer[N Number] struct{ C IntegerConstraint }

func (d Integer[N]) ReadValue(r Reader) (N, error) {
	v, err := r.ReadInteger(d.C)
	if err != nil {
		return 0, err
	}
	n := N(v)
	if int64(n) != v {
		return 0, ConstraintViolation("value %d does not fit %T", v, n)
	}
	return n, nil
}

func (d Integer[N]) WriteValue(w Writer, v N) error {
	return w.WriteInteger(d.C, int64(v))
}

type UTF8String struct{ C SizeConstraint }

func (d UTF8String) ReadValue(r Reader) (string, error)   { return r.ReadUTF8String(d.C) }
func (d UTF8String) WriteValue(w Writer, v string) error { return w.WriteUTF8String(d.C, v) }

type IA5String struct{ C SizeConstraint }

func (d IA5String) ReadValue(r Reader) (string, error)   { return r.ReadIA5String(d.C) }
func (d IA5String) WriteValue(w Writer, v string) error { return w.WriteIA5String(d.C, v) }

type NumericString struct{ C SizeConstraint }

func (d NumericString) ReadValue(r Reader) (string, error) { return r.ReadNumericString(d.C) }
func (d NumericString) WriteValue(w Writer, v string) error {
	return w.WriteNumericString(d.C, v)
}

type PrintableString struct{ C SizeConstraint }

func (d PrintableString) ReadValue(r Reader) (string, error) { return r.ReadPrintableString(d.C) }
func (d PrintableString) WriteValue(w Writer, v string) error {
	return w.WritePrintableString(d.C, v)
}

type VisibleString struct{ C SizeConstraint }

func (d VisibleString) ReadValue(r Reader) (string, error) { return r.ReadVisibleString(d.C) }
func (d VisibleString) WriteValue(w Writer, v string) error {
	return w.WriteVisibleString(d.C, v)
}

type OctetString struct{ C SizeConstraint }

func (d OctetString) ReadValue(r Reader) ([]byte, error)   { return r.ReadOctetString(d.C) }
func (d OctetString) WriteValue(w Writer, v []byte) error { return w.WriteOctetString(d.C, v) }

type BitString struct{ C SizeConstraint }

func (d BitString) ReadValue(r Reader) (Bits, error)   { return r.ReadBitString(d.C) }
func (d BitString) WriteValue(w Writer, v Bits) error { return w.WriteBitString(d.C, v) }

// SequenceOf reads into a non-nil slice, so an empty list reads back
// equal to []T{}.
type SequenceOf[T any] struct {
	C    SizeConstraint
	Elem Type[T]
}

func (d SequenceOf[T]) ReadValue(r Reader) ([]T, error) {
	out := []T{}
	err := r.ReadSequenceOf(d.C, func(r Reader) error {
		v, err := d.Elem.ReadValue(r)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (d SequenceOf[T]) WriteValue(w Writer, v []T) error {
	return w.WriteSequenceOf(d.C, len(v), func(w Writer, i int) error {
		return d.Elem.WriteValue(w, v[i])
	})
}

// SetOf keeps element order as written.
type SetOf[T any] struct {
	C    SizeConstraint
	Elem Type[T]
}

func (d SetOf[T]) ReadValue(r Reader) ([]T, error) {
	out := []T{}
	err := r.ReadSetOf(d.C, func(r Reader) error {
		v, err := d.Elem.ReadValue(r)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (d SetOf[T]) WriteValue(w Writer, v []T) error {
	return w.WriteSetOf(d.C, len(v), func(w Writer, i int) error {
		return d.Elem.WriteValue(w, v[i])
	})
}

// Optional maps an absent value to nil.
type Optional[T any] struct {
	Elem Type[T]
}

func (d Optional[T]) ReadValue(r Reader) (*T, error) {
	var v T
	present, err := r.ReadOptional(func(r Reader) error {
		var err error
		v, err = d.Elem.ReadValue(r)
		return err
	})
	if err != nil || !present {
		return nil, err
	}
	return &v, nil
}

func (d Optional[T]) WriteValue(w Writer, v *T) error {
	return w.WriteOptional(v != nil, func(w Writer) error {
		return d.Elem.WriteValue(w, *v)
	})
}

// Default omits a value equal to Value when writing and returns Value
// when the encoding omits it.
type Default[T comparable] struct {
	Elem  Type[T]
	Value T
}

func (d Default[T]) ReadValue(r Reader) (T, error) {
	var v T
	present, err := r.ReadDefault(func(r Reader) error {
		var err error
		v, err = d.Elem.ReadValue(r)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if !present {
		return d.Value, nil
	}
	return v, nil
}

func (d Default[T]) WriteValue(w Writer, v T) error {
	return w.WriteDefault(v == d.Value, func(w Writer) error {
		return d.Elem.WriteValue(w, v)
	})
}

// Complex is the descriptor of a generated type that reads and writes
// itself.
type Complex[T any, PT interface {
	*T
	Readable
	Writable
}] struct{}

func (Complex[T, PT]) ReadValue(r Reader) (T, error) {
	var v T
	if err := PT(&v).ReadASN1(r); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (Complex[T, PT]) WriteValue(w Writer, v T) error {
	return PT(&v).WriteASN1(w)
}

// OpenTypeField is the descriptor of a generated open type.
type OpenTypeField[T any, PT interface {
	*T
	OpenType
	OpenTypeReader
}] struct {
	C OpenTypeConstraint
}

func (d OpenTypeField[T, PT]) ReadValueByKey(r Reader, key uint64) (T, bool, error) {
	var v T
	ok, err := r.ReadOpenType(d.C, PT(&v), key)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v, ok, nil
}

func (d OpenTypeField[T, PT]) WriteValue(w Writer, v T) error {
	return w.WriteOpenType(d.C, PT(&v))
}

// WriteValueByKey writes v after checking that key, the value of the
// field selecting the variant, matches the variant v holds.
func (d OpenTypeField[T, PT]) WriteValueByKey(w Writer, v T, key uint64) error {
	if index, ok := PT(&v).ChoiceIndex(); ok && index != key {
		return ConstraintViolation("%s holds variant %d but its key selects %d", d.C.Name(), index, key)
	}
	return d.WriteValue(w, v)
}

var (
	_ Type[bool]     = Boolean{}
	_ Type[struct{}] = Null{}
	_ Type[int64]    = Integer[int64]{}
	_ Type[[]string] = SequenceOf[string]{}
	_ Type[*string]  = Optional[string]{}
	_ Type[Bits]     = BitString{}
)
