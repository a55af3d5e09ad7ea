package uper

import (
	"math/bits"

	"github.com/golangsnmp/goasn1/codec"
	"github.com/golangsnmp/goasn1/codec/internal/wire"
)

// maxLength is the largest length determinant without fragmentation.
const maxLength = 16383

// maxConstrainedSize is the largest upper bound of a size constraint
// encoded as a constrained whole number.
const maxConstrainedSize = 65535

func width(span uint64) int { return bits.Len64(span) }

func writeLength(b *bitBuffer, n uint64) error {
	switch {
	case n < 128:
		b.writeBits(n, 8)
	case n <= maxLength:
		b.writeBits(0b10, 2)
		b.writeBits(n, 14)
	default:
		return codec.ConstraintViolation("length %d exceeds %d", n, maxLength)
	}
	return nil
}

func readLength(r *bitReader) (uint64, error) {
	first, err := r.readBit()
	if err != nil {
		return 0, err
	}
	if !first {
		return r.readBits(7)
	}
	second, err := r.readBit()
	if err != nil {
		return 0, err
	}
	if second {
		return 0, codec.Malformed("fragmented length")
	}
	return r.readBits(14)
}

// writeNormallySmall writes a count or index that is usually below 64.
func writeNormallySmall(b *bitBuffer, n uint64) error {
	if n < 64 {
		b.writeBit(false)
		b.writeBits(n, 6)
		return nil
	}
	b.writeBit(true)
	return writeOctets(b, wire.AppendUint(nil, n))
}

func readNormallySmall(r *bitReader) (uint64, error) {
	large, err := r.readBit()
	if err != nil {
		return 0, err
	}
	if !large {
		return r.readBits(6)
	}
	p, err := readOctets(r)
	if err != nil {
		return 0, err
	}
	return parseUint(p)
}

// writeOctets writes a length determinant followed by p.
func writeOctets(b *bitBuffer, p []byte) error {
	if err := writeLength(b, uint64(len(p))); err != nil {
		return err
	}
	b.writeBytes(p)
	return nil
}

func readOctets(r *bitReader) ([]byte, error) {
	n, err := readLength(r)
	if err != nil {
		return nil, err
	}
	return r.readBytes(n)
}

// writeOpen writes content as an open field: padded to octets, at least
// one octet, length prefixed.
func writeOpen(b *bitBuffer, content *bitBuffer) error {
	p := content.octets()
	if len(p) == 0 {
		p = []byte{0}
	}
	return writeOctets(b, p)
}

func writeSize(b *bitBuffer, bounds codec.Bounds[uint64], n uint64) error {
	if bounds.Extensible {
		outside := !bounds.Contains(n)
		b.writeBit(outside)
		if outside {
			return writeLength(b, n)
		}
	} else if !bounds.Contains(n) {
		return codec.CheckSize(bounds, n)
	}
	if bounds.Constrained() && bounds.Max <= maxConstrainedSize {
		b.writeBits(n-bounds.Min, width(bounds.Max-bounds.Min))
		return nil
	}
	return writeLength(b, n)
}

func readSize(r *bitReader, bounds codec.Bounds[uint64]) (uint64, error) {
	if bounds.Extensible {
		outside, err := r.readBit()
		if err != nil {
			return 0, err
		}
		if outside {
			return readLength(r)
		}
	}
	var n uint64
	if bounds.Constrained() && bounds.Max <= maxConstrainedSize {
		off, err := r.readBits(width(bounds.Max - bounds.Min))
		if err != nil {
			return 0, err
		}
		n = bounds.Min + off
	} else {
		var err error
		if n, err = readLength(r); err != nil {
			return 0, err
		}
	}
	if !bounds.Contains(n) {
		return 0, codec.Malformed("size %d outside its constraint", n)
	}
	return n, nil
}

func writeInteger(b *bitBuffer, bounds codec.Bounds[int64], v int64) error {
	if bounds.Extensible {
		outside := !bounds.Contains(v)
		b.writeBit(outside)
		if outside {
			return writeOctets(b, wire.AppendInt(nil, v))
		}
	} else if !bounds.Contains(v) {
		return codec.ConstraintViolation("value %d outside its constraint", v)
	}
	switch {
	case bounds.Constrained():
		span := uint64(bounds.Max) - uint64(bounds.Min)
		b.writeBits(uint64(v)-uint64(bounds.Min), width(span))
		return nil
	case bounds.HasMin:
		return writeOctets(b, wire.AppendUint(nil, uint64(v)-uint64(bounds.Min)))
	default:
		return writeOctets(b, wire.AppendInt(nil, v))
	}
}

func readInteger(r *bitReader, bounds codec.Bounds[int64]) (int64, error) {
	if bounds.Extensible {
		outside, err := r.readBit()
		if err != nil {
			return 0, err
		}
		if outside {
			return readUnconstrained(r)
		}
	}
	switch {
	case bounds.Constrained():
		span := uint64(bounds.Max) - uint64(bounds.Min)
		off, err := r.readBits(width(span))
		if err != nil {
			return 0, err
		}
		if off > span {
			return 0, codec.Malformed("offset %d exceeds range %d", off, span)
		}
		return int64(uint64(bounds.Min) + off), nil
	case bounds.HasMin:
		p, err := readOctets(r)
		if err != nil {
			return 0, err
		}
		off, err := parseUint(p)
		if err != nil {
			return 0, err
		}
		v := int64(uint64(bounds.Min) + off)
		if v < bounds.Min {
			return 0, codec.Malformed("offset %d overflows", off)
		}
		return v, nil
	default:
		return readUnconstrained(r)
	}
}

func readUnconstrained(r *bitReader) (int64, error) {
	p, err := readOctets(r)
	if err != nil {
		return 0, err
	}
	v, err := wire.ParseInt(p)
	if err != nil {
		return 0, codec.Malformed("%v", err)
	}
	return v, nil
}

func parseUint(p []byte) (uint64, error) {
	v, err := wire.ParseUint(p)
	if err != nil {
		return 0, codec.Malformed("%v", err)
	}
	return v, nil
}

// writeIndex writes a CHOICE or ENUMERATED index. Indexes at or past std
// are extensions.
func writeIndex(b *bitBuffer, std uint64, extensible bool, index uint64) error {
	if extensible {
		ext := index >= std
		b.writeBit(ext)
		if ext {
			return writeNormallySmall(b, index-std)
		}
	} else if index >= std {
		return codec.ConstraintViolation("index %d outside %d root variants", index, std)
	}
	if std > 1 {
		b.writeBits(index, width(std-1))
	}
	return nil
}

func readIndex(r *bitReader, std uint64, extensible bool) (index uint64, ext bool, err error) {
	if extensible {
		if ext, err = r.readBit(); err != nil {
			return 0, false, err
		}
		if ext {
			n, err := readNormallySmall(r)
			if err != nil {
				return 0, false, err
			}
			return std + n, true, nil
		}
	}
	if std == 0 {
		return 0, false, codec.Malformed("no root variants")
	}
	if std > 1 {
		if index, err = r.readBits(width(std - 1)); err != nil {
			return 0, false, err
		}
	}
	if index >= std {
		return 0, false, codec.Malformed("index %d outside %d root variants", index, std)
	}
	return index, false, nil
}

// Known-multiplier alphabets. NumericString is remapped to indexes.
const numericAlphabet = " 0123456789"

func charWidth(cs codec.Charset) int {
	if cs == codec.CharsetNumeric {
		return 4
	}
	return 7
}

func encodeChar(cs codec.Charset, c byte) uint64 {
	if cs == codec.CharsetNumeric {
		if c == ' ' {
			return 0
		}
		return uint64(c-'0') + 1
	}
	return uint64(c)
}

func decodeChar(cs codec.Charset, v uint64) (byte, error) {
	if cs == codec.CharsetNumeric {
		if v >= uint64(len(numericAlphabet)) {
			return 0, codec.Malformed("numeric character index %d", v)
		}
		return numericAlphabet[v], nil
	}
	if !cs.Permits(rune(v)) {
		return 0, codec.Malformed("%s does not permit %q", cs, rune(v))
	}
	return byte(v), nil
}
