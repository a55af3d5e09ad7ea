package model

import "slices"

// OpenTypeVariant is one alternative of an open type. Key stays nil until
// code generation assigns the selector value that picks this variant.
type OpenTypeVariant[RS State] struct {
	Name string
	Tagging
	Type Type[RS]
	Key  *int
}

// OpenType is a field whose concrete type is selected at runtime by a key,
// among a fixed list of variants. When extensible, variants beyond
// ExtensionAfterIndex may be added by later schema versions and unknown
// keys must be tolerated.
type OpenType[RS State] struct {
	variants       []OpenTypeVariant[RS]
	extensionAfter *int
}

// NewOpenType returns a non-extensible open type with the given variants.
func NewOpenType[RS State](variants ...OpenTypeVariant[RS]) *OpenType[RS] {
	return &OpenType[RS]{variants: slices.Clone(variants)}
}

// WithExtensionAfter returns a copy of o that is extensible after the
// variant at index i. It panics unless 0 <= i < o.Len().
func (o *OpenType[RS]) WithExtensionAfter(i int) *OpenType[RS] {
	if i < 0 || i >= len(o.variants) {
		panic("model: open type extension index out of range")
	}
	c := *o
	c.extensionAfter = &i
	return &c
}

// WithMaybeExtensionAfter is WithExtensionAfter when ok, and otherwise
// returns a non-extensible copy of o.
func (o *OpenType[RS]) WithMaybeExtensionAfter(i int, ok bool) *OpenType[RS] {
	if ok {
		return o.WithExtensionAfter(i)
	}
	c := *o
	c.extensionAfter = nil
	return &c
}

// WithVariantKeys returns a copy of o whose variants carry their position
// as key. Positions are stable because extensions are only appended.
func (o *OpenType[RS]) WithVariantKeys() *OpenType[RS] {
	c := *o
	c.variants = slices.Clone(o.variants)
	for i := range c.variants {
		key := i
		c.variants[i].Key = &key
	}
	return &c
}

// Len returns the number of variants.
func (o *OpenType[RS]) Len() int { return len(o.variants) }

// IsEmpty reports whether the open type has no variants.
func (o *OpenType[RS]) IsEmpty() bool { return len(o.variants) == 0 }

// Variants returns the variants in declaration order.
func (o *OpenType[RS]) Variants() []OpenTypeVariant[RS] {
	return slices.Clone(o.variants)
}

// Variant returns the variant at index i.
func (o *OpenType[RS]) Variant(i int) OpenTypeVariant[RS] {
	return o.variants[i]
}

// IsExtensible reports whether the open type carries an extension marker.
func (o *OpenType[RS]) IsExtensible() bool { return o.extensionAfter != nil }

// ExtensionAfterIndex returns the index of the last root variant.
func (o *OpenType[RS]) ExtensionAfterIndex() (int, bool) {
	if o.extensionAfter == nil {
		return 0, false
	}
	return *o.extensionAfter, true
}

// StdVariantCount returns the number of root variants.
func (o *OpenType[RS]) StdVariantCount() int {
	if o.extensionAfter == nil {
		return len(o.variants)
	}
	return *o.extensionAfter + 1
}
