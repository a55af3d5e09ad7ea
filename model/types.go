package model

import (
	"github.com/golangsnmp/goasn1/tag"
)

// Type is an ASN.1 type in resolve state RS. The set of implementations is
// closed: *Boolean, *Null, *Integer, *String, *OctetString, *BitString,
// *Enumerated, *Sequence, *Set, *SequenceOf, *SetOf, *Choice, *OpenType
// and *TypeRef. Each implements Type only for its own state, so a
// Type[Resolved] can never hold an unresolved node.
type Type[RS State] interface {
	typeState() RS
}

// Boolean is the BOOLEAN type.
type Boolean[RS State] struct{}

// Null is the NULL type.
type Null[RS State] struct{}

// Integer is the INTEGER type with optional named numbers and value range.
type Integer[RS State] struct {
	Named []NamedNumber
	Range *Range[RS]
}

// NamedNumber is an entry of an INTEGER or BIT STRING named number list.
type NamedNumber struct {
	Name  string
	Value int64
}

// Range is a value range constraint. A nil bound is MIN or MAX.
type Range[RS State] struct {
	Min        *Leaf[RS, int64]
	Max        *Leaf[RS, int64]
	Extensible bool
}

// Size is a SIZE constraint. A nil Max is MAX.
type Size[RS State] struct {
	Min        *Leaf[RS, uint64]
	Max        *Leaf[RS, uint64]
	Extensible bool
}

// StringKind is a restricted character string type.
type StringKind int

const (
	UTF8String StringKind = iota
	IA5String
	NumericString
	PrintableString
	VisibleString
)

// Keyword returns the ASN.1 type name of the kind.
func (k StringKind) Keyword() string {
	switch k {
	case IA5String:
		return "IA5String"
	case NumericString:
		return "NumericString"
	case PrintableString:
		return "PrintableString"
	case VisibleString:
		return "VisibleString"
	default:
		return "UTF8String"
	}
}

// DefaultTag returns the universal tag of the string kind.
func (k StringKind) DefaultTag() tag.Tag {
	switch k {
	case IA5String:
		return tag.DefaultIA5String
	case NumericString:
		return tag.DefaultNumericString
	case PrintableString:
		return tag.DefaultPrintableString
	case VisibleString:
		return tag.DefaultVisibleString
	default:
		return tag.DefaultUTF8String
	}
}

// String is one of the restricted character string types.
type String[RS State] struct {
	Kind StringKind
	Size *Size[RS]
}

// OctetString is the OCTET STRING type.
type OctetString[RS State] struct {
	Size *Size[RS]
}

// BitString is the BIT STRING type.
type BitString[RS State] struct {
	Named []NamedNumber
	Size  *Size[RS]
}

// EnumItem is an ENUMERATED item. Number is nil unless written explicitly.
type EnumItem struct {
	Name   string
	Number *int64
}

// Enumerated is the ENUMERATED type. ExtensionAfter is the index of the
// last root item when the type carries an extension marker.
type Enumerated[RS State] struct {
	Items          []EnumItem
	ExtensionAfter *int
}

// Index returns the position of the named item.
func (e *Enumerated[RS]) Index(name string) (int, bool) {
	for i, item := range e.Items {
		if item.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Field is a component of a SEQUENCE or SET.
type Field[RS State] struct {
	Name string
	Tagging
	Type     Type[RS]
	Optional bool
	Default  *Leaf[RS, Literal]
	// Key names the sibling field whose value selects the variant of the
	// open type in this field, as written with "(@key)".
	Key string
}

// Components is the component list shared by SEQUENCE and SET.
// ExtensionAfter is the index of the last root field when the list
// carries an extension marker.
type Components[RS State] struct {
	Fields         []Field[RS]
	ExtensionAfter *int
}

// Field returns the named component.
func (c *Components[RS]) Field(name string) (*Field[RS], bool) {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i], true
		}
	}
	return nil, false
}

// Sequence is the SEQUENCE type.
type Sequence[RS State] struct {
	Components[RS]
}

// Set is the SET type.
type Set[RS State] struct {
	Components[RS]
}

// SequenceOf is the SEQUENCE OF type.
type SequenceOf[RS State] struct {
	Element Type[RS]
	Size    *Size[RS]
}

// SetOf is the SET OF type.
type SetOf[RS State] struct {
	Element Type[RS]
	Size    *Size[RS]
}

// ChoiceVariant is an alternative of a CHOICE.
type ChoiceVariant[RS State] struct {
	Name string
	Tagging
	Type Type[RS]
}

// Choice is the CHOICE type.
type Choice[RS State] struct {
	Variants       []ChoiceVariant[RS]
	ExtensionAfter *int
}

// TypeRef names a type assignment. Module is empty for local or
// imported names.
type TypeRef[RS State] struct {
	Module string
	Name   string
}

func (*Boolean[RS]) typeState() (rs RS)     { return }
func (*Null[RS]) typeState() (rs RS)        { return }
func (*Integer[RS]) typeState() (rs RS)     { return }
func (*String[RS]) typeState() (rs RS)      { return }
func (*OctetString[RS]) typeState() (rs RS) { return }
func (*BitString[RS]) typeState() (rs RS)   { return }
func (*Enumerated[RS]) typeState() (rs RS)  { return }
func (*Sequence[RS]) typeState() (rs RS)    { return }
func (*Set[RS]) typeState() (rs RS)         { return }
func (*SequenceOf[RS]) typeState() (rs RS)  { return }
func (*SetOf[RS]) typeState() (rs RS)       { return }
func (*Choice[RS]) typeState() (rs RS)      { return }
func (*OpenType[RS]) typeState() (rs RS)    { return }
func (*TypeRef[RS]) typeState() (rs RS)     { return }

// DefaultTag returns the universal tag of t, or false for types that have
// none (CHOICE, open types and references).
func DefaultTag[RS State](t Type[RS]) (tag.Tag, bool) {
	switch t := t.(type) {
	case *Boolean[RS]:
		return tag.DefaultBoolean, true
	case *Null[RS]:
		return tag.DefaultNull, true
	case *Integer[RS]:
		return tag.DefaultInteger, true
	case *String[RS]:
		return t.Kind.DefaultTag(), true
	case *OctetString[RS]:
		return tag.DefaultOctetString, true
	case *BitString[RS]:
		return tag.DefaultBitString, true
	case *Enumerated[RS]:
		return tag.DefaultEnumerated, true
	case *Sequence[RS]:
		return tag.DefaultSequence, true
	case *SequenceOf[RS]:
		return tag.DefaultSequenceOf, true
	case *Set[RS]:
		return tag.DefaultSet, true
	case *SetOf[RS]:
		return tag.DefaultSetOf, true
	default:
		return tag.Tag{}, false
	}
}
