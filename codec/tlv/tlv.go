// Package tlv implements a tag/length/value codec format in the style of
// ASN.1 BER with definite lengths.
//
// Fields of a SEQUENCE or SET are tagged with their index as
// context-specific tags, so absent OPTIONAL and DEFAULT fields are
// omitted and fields added by a newer schema can be skipped. A CHOICE
// wraps its variant in an element tagged with the variant index. An open
// type wraps the bare variant; the variant is selected by a key the
// reader is given.
package tlv

import "github.com/golangsnmp/goasn1/codec"

// Marshal encodes v.
func Marshal(v codec.Writable) ([]byte, error) {
	w := NewWriter()
	if err := v.WriteASN1(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Unmarshal decodes data into v. Trailing octets are malformed.
func Unmarshal(data []byte, v codec.Readable) error {
	r := NewReader(data)
	if err := v.ReadASN1(r); err != nil {
		return err
	}
	return checkTrailing(r)
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
	r := NewReader(data)
	v, err := t.ReadValue(r)
	if err != nil {
		return v, err
	}
	return v, checkTrailing(r)
}

func checkTrailing(r *Reader) error {
	if n := r.Remaining(); n > 0 {
		return &codec.Error{Format: "tlv", Op: "read", Pos: uint64(r.Pos()), Err: codec.Malformed("%d trailing octets", n)}
	}
	return nil
}
