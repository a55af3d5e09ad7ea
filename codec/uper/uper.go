// Package uper implements a bit-packed codec format in the style of
// ASN.1 unaligned PER.
//
// Constrained integers, sizes and indexes use the fewest bits their
// range allows. IA5String, VisibleString and PrintableString use 7 bits
// per character, NumericString 4. Extensible types carry an extension
// bit, and extension content travels in length-prefixed open fields so
// that a reader with an older schema can skip it.
//
// Lengths above 16383 are not supported and fail with
// codec.ErrConstraint.
package uper

import "github.com/golangsnmp/goasn1/codec"

// Marshal encodes v.
func Marshal(v codec.Writable) ([]byte, error) {
	w := NewWriter()
	if err := v.WriteASN1(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Unmarshal decodes data into v. Trailing padding is ignored.
func Unmarshal(data []byte, v codec.Readable) error {
	return v.ReadASN1(NewReader(data))
}

// MarshalValue encodes v with the descriptor t.
func MarshalValue[T any](t codec.WritableType[T], v T) ([]byte, error) {
	w := NewWriter()
	if err := t.WriteValue(w, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// UnmarshalValue decodes data with the descriptor t.
func UnmarshalValue[T any](t codec.ReadableType[T], data []byte) (T, error) {
	return t.ReadValue(NewReader(data))
}
