package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Charset is the permitted alphabet of a character string type.
type Charset int

const (
	CharsetUTF8 Charset = iota
	CharsetIA5
	CharsetNumeric
	CharsetPrintable
	CharsetVisible
)

func (c Charset) String() string {
	switch c {
	case CharsetUTF8:
		return "UTF8String"
	case CharsetIA5:
		return "IA5String"
	case CharsetNumeric:
		return "NumericString"
	case CharsetPrintable:
		return "PrintableString"
	case CharsetVisible:
		return "VisibleString"
	default:
		return "unknown"
	}
}

const printableExtra = " '()+,-./:=?"

// Permits reports whether r belongs to the alphabet.
func (c Charset) Permits(r rune) bool {
	switch c {
	case CharsetUTF8:
		return r != utf8.RuneError
	case CharsetIA5:
		return r >= 0 && r <= 0x7f
	case CharsetNumeric:
		return r == ' ' || (r >= '0' && r <= '9')
	case CharsetPrintable:
		return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') ||
			strings.ContainsRune(printableExtra, r)
	case CharsetVisible:
		return r >= 0x20 && r <= 0x7e
	}
	return false
}

// CheckString validates the alphabet and character count of s.
func CheckString(cs Charset, c SizeConstraint, s string) error {
	if !utf8.ValidString(s) {
		return ConstraintViolation("%s is not valid UTF-8", cs)
	}
	n := uint64(0)
	for _, r := range s {
		if !cs.Permits(r) {
			return ConstraintViolation("%s does not permit %q", cs, r)
		}
		n++
	}
	return CheckSize(c.SizeBounds(), n)
}

// CheckSize validates a length against size bounds. An extensible
// constraint accepts any length.
func CheckSize(b Bounds[uint64], n uint64) error {
	if b.Extensible || b.Contains(n) {
		return nil
	}
	return ConstraintViolation("size %d outside %s", n, formatBounds(b))
}

// CheckInteger validates v against an integer constraint.
func CheckInteger(c IntegerConstraint, v int64) error {
	b := c.Bounds()
	if b.Extensible || b.Contains(v) {
		return nil
	}
	return ConstraintViolation("value %d outside %s", v, formatBounds(b))
}

// CheckIndex validates a variant or item index for writing.
func CheckIndex(name string, count, index uint64) error {
	if index >= count {
		return ConstraintViolation("%s has no variant %d", name, index)
	}
	return nil
}

func formatBounds[T int64 | uint64](b Bounds[T]) string {
	var sb strings.Builder
	sb.WriteByte('(')
	if b.HasMin {
		fmt.Fprint(&sb, b.Min)
	} else {
		sb.WriteString("MIN")
	}
	sb.WriteString("..")
	if b.HasMax {
		fmt.Fprint(&sb, b.Max)
	} else {
		sb.WriteString("MAX")
	}
	sb.WriteByte(')')
	return sb.String()
}
