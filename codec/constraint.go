package codec

import "github.com/golangsnmp/goasn1/tag"

// Constraint is definition-time metadata shared by every construct.
type Constraint interface {
	Tag() tag.Tag
}

// SequenceConstraint describes a SEQUENCE type.
type SequenceConstraint interface {
	Constraint
	Name() string
	// FieldCount is the number of fields known to this schema version,
	// extension additions included.
	FieldCount() uint64
	// StdOptionalFields is the number of OPTIONAL or DEFAULT fields
	// before the extension marker.
	StdOptionalFields() uint64
	// ExtendedAfterField returns the index of the last field before the
	// extension marker, and false when the type is not extensible.
	ExtendedAfterField() (uint64, bool)
}

// SetConstraint describes a SET type. Fields are encoded in declaration
// order.
type SetConstraint interface {
	Constraint
	Name() string
	FieldCount() uint64
	StdOptionalFields() uint64
	ExtendedAfterField() (uint64, bool)
}

// EnumeratedConstraint describes an ENUMERATED type. Items are addressed
// by declaration index.
type EnumeratedConstraint interface {
	Constraint
	Name() string
	VariantCount() uint64
	StdVariantCount() uint64
	Extensible() bool
}

// ChoiceConstraint describes a CHOICE type.
type ChoiceConstraint interface {
	Constraint
	Name() string
	VariantCount() uint64
	StdVariantCount() uint64
	Extensible() bool
}

// OpenTypeConstraint describes an open type. VariantCount counts every
// declared variant, StdVariantCount only those before the extension
// marker.
type OpenTypeConstraint interface {
	Constraint
	Name() string
	VariantCount() uint64
	StdVariantCount() uint64
	Extensible() bool
}

// IntegerConstraint describes an INTEGER with an optional value range.
type IntegerConstraint interface {
	Constraint
	Bounds() Bounds[int64]
}

// SizeConstraint describes a string, OCTET STRING, BIT STRING, SEQUENCE
// OF or SET OF with an optional size range.
type SizeConstraint interface {
	Constraint
	SizeBounds() Bounds[uint64]
}

// Bounds is a value or size range. A missing bound is open.
type Bounds[T int64 | uint64] struct {
	Min, Max       T
	HasMin, HasMax bool
	// Extensible marks a "..." in the constraint: values outside the
	// range are permitted but encoded out of band.
	Extensible bool
}

// Range returns closed bounds lo..hi.
func Range[T int64 | uint64](lo, hi T) Bounds[T] {
	return Bounds[T]{Min: lo, Max: hi, HasMin: true, HasMax: true}
}

// Constrained reports whether both bounds are present.
func (b Bounds[T]) Constrained() bool { return b.HasMin && b.HasMax }

// Contains reports whether v is within the root range.
func (b Bounds[T]) Contains(v T) bool {
	return (!b.HasMin || v >= b.Min) && (!b.HasMax || v <= b.Max)
}

// Meta is a ready-made leaf constraint.
type Meta struct {
	ID    tag.Tag
	Range Bounds[int64]
	Size  Bounds[uint64]
}

func (m Meta) Tag() tag.Tag               { return m.ID }
func (m Meta) Bounds() Bounds[int64]      { return m.Range }
func (m Meta) SizeBounds() Bounds[uint64] { return m.Size }

// SequenceMeta is a ready-made SequenceConstraint and SetConstraint.
type SequenceMeta struct {
	ID             tag.Tag
	TypeName       string
	Fields         uint64
	StdOptional    uint64
	Extensible     bool
	ExtensionAfter uint64
}

func (m SequenceMeta) Tag() tag.Tag              { return m.ID }
func (m SequenceMeta) Name() string              { return m.TypeName }
func (m SequenceMeta) FieldCount() uint64        { return m.Fields }
func (m SequenceMeta) StdOptionalFields() uint64 { return m.StdOptional }

func (m SequenceMeta) ExtendedAfterField() (uint64, bool) {
	return m.ExtensionAfter, m.Extensible
}

// VariantMeta is a ready-made constraint for ENUMERATED, CHOICE and open
// types.
type VariantMeta struct {
	ID           tag.Tag
	TypeName     string
	Variants     uint64
	StdVariants  uint64
	IsExtensible bool
}

func (m VariantMeta) Tag() tag.Tag            { return m.ID }
func (m VariantMeta) Name() string            { return m.TypeName }
func (m VariantMeta) VariantCount() uint64    { return m.Variants }
func (m VariantMeta) StdVariantCount() uint64 { return m.StdVariants }
func (m VariantMeta) Extensible() bool        { return m.IsExtensible }

var (
	_ IntegerConstraint    = Meta{}
	_ SizeConstraint       = Meta{}
	_ SequenceConstraint   = SequenceMeta{}
	_ SetConstraint        = SequenceMeta{}
	_ EnumeratedConstraint = VariantMeta{}
	_ ChoiceConstraint     = VariantMeta{}
	_ OpenTypeConstraint   = VariantMeta{}
)
