// Package wire holds integer octet forms shared by the codec formats.
package wire

import "errors"

// ErrLength reports an integer encoding that is empty or wider than
// 64 bits.
var ErrLength = errors.New("integer length out of range")

// AppendInt appends the shortest two's complement form of v, at least
// one octet.
func AppendInt(b []byte, v int64) []byte {
	n := 1
	for n < 8 {
		shift := uint(8*n - 1)
		if hi := v >> shift; hi == 0 || hi == -1 {
			break
		}
		n++
	}
	for i := n - 1; i >= 0; i-- {
		b = append(b, byte(v>>(8*uint(i))))
	}
	return b
}

// AppendUint appends the shortest unsigned form of v, at least one
// octet.
func AppendUint(b []byte, v uint64) []byte {
	n := 1
	for n < 8 && v>>(8*uint(n)) != 0 {
		n++
	}
	for i := n - 1; i >= 0; i-- {
		b = append(b, byte(v>>(8*uint(i))))
	}
	return b
}

// ParseInt decodes a two's complement integer of one to eight octets.
func ParseInt(p []byte) (int64, error) {
	if len(p) == 0 || len(p) > 8 {
		return 0, ErrLength
	}
	v := int64(int8(p[0]))
	for _, c := range p[1:] {
		v = v<<8 | int64(c)
	}
	return v, nil
}

// ParseUint decodes an unsigned integer of one to eight octets.
func ParseUint(p []byte) (uint64, error) {
	if len(p) == 0 || len(p) > 8 {
		return 0, ErrLength
	}
	var v uint64
	for _, c := range p {
		v = v<<8 | uint64(c)
	}
	return v, nil
}
