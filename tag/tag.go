// Package tag defines ASN.1 tags and their canonical ordering.
package tag

import (
	"cmp"
	"fmt"
)

// Class is the tag class. The declaration order is the canonical order:
// UNIVERSAL < APPLICATION < context-specific < PRIVATE.
type Class uint8

const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "UNIVERSAL"
	case ClassApplication:
		return "APPLICATION"
	case ClassContextSpecific:
		return "CONTEXT"
	case ClassPrivate:
		return "PRIVATE"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// Tag is a class plus a non-negative number. Two tags are equal iff class
// and number are equal, so Tag can be compared with == and used as a map key.
type Tag struct {
	Class  Class
	Number uint64
}

// Universal returns the UNIVERSAL tag with the given number.
func Universal(n uint64) Tag { return Tag{Class: ClassUniversal, Number: n} }

// Application returns the APPLICATION tag with the given number.
func Application(n uint64) Tag { return Tag{Class: ClassApplication, Number: n} }

// ContextSpecific returns the context-specific tag with the given number.
func ContextSpecific(n uint64) Tag { return Tag{Class: ClassContextSpecific, Number: n} }

// Private returns the PRIVATE tag with the given number.
func Private(n uint64) Tag { return Tag{Class: ClassPrivate, Number: n} }

// Default tags of the built-in types.
var (
	DefaultBoolean         = Universal(1)
	DefaultInteger         = Universal(2)
	DefaultBitString       = Universal(3)
	DefaultOctetString     = Universal(4)
	DefaultNull            = Universal(5)
	DefaultEnumerated      = Universal(10)
	DefaultUTF8String      = Universal(12)
	DefaultSequence        = Universal(16)
	DefaultSequenceOf      = Universal(16)
	DefaultSet             = Universal(17)
	DefaultSetOf           = Universal(17)
	DefaultNumericString   = Universal(18)
	DefaultPrintableString = Universal(19)
	DefaultTeletexString   = Universal(20)
	DefaultVideotexString  = Universal(21)
	DefaultIA5String       = Universal(22)
	DefaultGraphicString   = Universal(25)
	DefaultVisibleString   = Universal(26)
	DefaultGeneralString   = Universal(27)
	DefaultUniversalString = Universal(28)
	DefaultBMPString       = Universal(30)
)

// Compare orders tags by class first, then by number. It returns -1, 0 or +1.
func Compare(a, b Tag) int {
	if c := cmp.Compare(a.Class, b.Class); c != 0 {
		return c
	}
	return cmp.Compare(a.Number, b.Number)
}

// Less reports whether t sorts before o.
func (t Tag) Less(o Tag) bool {
	return Compare(t, o) < 0
}

// String renders the tag the way it is written in a module,
// e.g. "[UNIVERSAL 1]", "[APPLICATION 0]", "[3]".
func (t Tag) String() string {
	if t.Class == ClassContextSpecific {
		return fmt.Sprintf("[%d]", t.Number)
	}
	return fmt.Sprintf("[%s %d]", t.Class, t.Number)
}

// GoString renders the tag as a Go expression using this package's
// constructors. The code generator relies on it.
func (t Tag) GoString() string {
	switch t.Class {
	case ClassUniversal:
		return fmt.Sprintf("tag.Universal(%d)", t.Number)
	case ClassApplication:
		return fmt.Sprintf("tag.Application(%d)", t.Number)
	case ClassContextSpecific:
		return fmt.Sprintf("tag.ContextSpecific(%d)", t.Number)
	default:
		return fmt.Sprintf("tag.Private(%d)", t.Number)
	}
}
