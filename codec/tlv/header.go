package tlv

import (
	"github.com/golangsnmp/goasn1/codec"
	"github.com/golangsnmp/goasn1/tag"
)

const (
	constructedBit = 0x20
	highTagNumber  = 0x1f
	maxContentLen  = 1<<31 - 1
)

// appendHeader appends identifier and definite length octets.
func appendHeader(b []byte, t tag.Tag, constructed bool, n int) []byte {
	id := byte(t.Class) << 6
	if constructed {
		id |= constructedBit
	}
	if t.Number < highTagNumber {
		b = append(b, id|byte(t.Number))
	} else {
		b = append(b, id|highTagNumber)
		b = appendBase128(b, t.Number)
	}
	return appendLength(b, n)
}

func appendBase128(b []byte, v uint64) []byte {
	n := 1
	for v>>(7*uint(n)) != 0 {
		n++
	}
	for i := n - 1; i >= 0; i-- {
		c := byte(v>>(7*uint(i))) & 0x7f
		if i > 0 {
			c |= 0x80
		}
		b = append(b, c)
	}
	return b
}

func appendLength(b []byte, n int) []byte {
	if n < 0x80 {
		return append(b, byte(n))
	}
	var tmp [8]byte
	k := 0
	for v := n; v > 0; v >>= 8 {
		k++
	}
	for i := 0; i < k; i++ {
		tmp[i] = byte(n >> (8 * uint(k-1-i)))
	}
	b = append(b, 0x80|byte(k))
	return append(b, tmp[:k]...)
}

type header struct {
	tag         tag.Tag
	constructed bool
	// size is the length of the identifier and length octets.
	size int
	// length is the content length.
	length int
}

// parseHeader decodes the identifier and length at the start of p and
// checks that the content fits.
func parseHeader(p []byte) (header, error) {
	var h header
	if len(p) == 0 {
		return h, codec.Malformed("missing identifier")
	}
	id := p[0]
	h.tag.Class = tag.Class(id >> 6)
	h.constructed = id&constructedBit != 0
	i := 1
	if n := id & highTagNumber; n != highTagNumber {
		h.tag.Number = uint64(n)
	} else {
		var v uint64
		for {
			if i >= len(p) {
				return h, codec.Malformed("truncated tag number")
			}
			if v > (1<<57)-1 {
				return h, codec.Malformed("tag number overflows")
			}
			c := p[i]
			i++
			v = v<<7 | uint64(c&0x7f)
			if c&0x80 == 0 {
				break
			}
		}
		h.tag.Number = v
	}

	if i >= len(p) {
		return h, codec.Malformed("missing length")
	}
	first := p[i]
	i++
	switch {
	case first < 0x80:
		h.length = int(first)
	case first == 0x80:
		return h, codec.Malformed("indefinite length")
	default:
		k := int(first & 0x7f)
		if k > 4 || i+k > len(p) {
			return h, codec.Malformed("bad long length of %d octets", k)
		}
		v := 0
		for _, c := range p[i : i+k] {
			v = v<<8 | int(c)
		}
		if v > maxContentLen {
			return h, codec.Malformed("length %d too large", v)
		}
		h.length = v
		i += k
	}
	h.size = i
	if h.length > len(p)-i {
		return h, codec.Malformed("length %d exceeds %d remaining octets", h.length, len(p)-i)
	}
	return h, nil
}
