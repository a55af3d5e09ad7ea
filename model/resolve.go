package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/golangsnmp/goasn1/internal/types"
)

// SizeResolver resolves a symbolic SIZE bound.
type SizeResolver interface {
	ResolveSize(symbol string) (uint64, error)
}

// RangeResolver resolves a symbolic value range bound.
type RangeResolver interface {
	ResolveRange(symbol string) (int64, error)
}

// ConstResolver resolves a symbolic constant such as a DEFAULT value.
type ConstResolver interface {
	ResolveConst(symbol string) (Literal, error)
}

// TypeResolver resolves a type reference.
type TypeResolver interface {
	ResolveTypeRef(ref *TypeRef[Unresolved]) (Type[Resolved], error)
}

// Resolver is everything needed to take a model from Unresolved to Resolved.
// Implementations report unknown names with *ResolveError.
type Resolver interface {
	SizeResolver
	RangeResolver
	ConstResolver
	TypeResolver
}

// ResolveType resolves t. The input is not modified, and no partially
// resolved value is returned on failure.
func ResolveType(t Type[Unresolved], r Resolver) (Type[Resolved], error) {
	switch t := t.(type) {
	case *Boolean[Unresolved]:
		return &Boolean[Resolved]{}, nil
	case *Null[Unresolved]:
		return &Null[Resolved]{}, nil
	case *Integer[Unresolved]:
		rng, err := resolveRange(t.Range, r)
		if err != nil {
			return nil, err
		}
		return &Integer[Resolved]{Named: slices.Clone(t.Named), Range: rng}, nil
	case *String[Unresolved]:
		size, err := resolveSize(t.Size, r)
		if err != nil {
			return nil, err
		}
		return &String[Resolved]{Kind: t.Kind, Size: size}, nil
	case *OctetString[Unresolved]:
		size, err := resolveSize(t.Size, r)
		if err != nil {
			return nil, err
		}
		return &OctetString[Resolved]{Size: size}, nil
	case *BitString[Unresolved]:
		size, err := resolveSize(t.Size, r)
		if err != nil {
			return nil, err
		}
		return &BitString[Resolved]{Named: slices.Clone(t.Named), Size: size}, nil
	case *Enumerated[Unresolved]:
		return &Enumerated[Resolved]{Items: slices.Clone(t.Items), ExtensionAfter: clonePtr(t.ExtensionAfter)}, nil
	case *Sequence[Unresolved]:
		c, err := resolveComponents(t.Components, r)
		if err != nil {
			return nil, err
		}
		return &Sequence[Resolved]{Components: c}, nil
	case *Set[Unresolved]:
		c, err := resolveComponents(t.Components, r)
		if err != nil {
			return nil, err
		}
		return &Set[Resolved]{Components: c}, nil
	case *SequenceOf[Unresolved]:
		elem, size, err := resolveList(t.Element, t.Size, r)
		if err != nil {
			return nil, err
		}
		return &SequenceOf[Resolved]{Element: elem, Size: size}, nil
	case *SetOf[Unresolved]:
		elem, size, err := resolveList(t.Element, t.Size, r)
		if err != nil {
			return nil, err
		}
		return &SetOf[Resolved]{Element: elem, Size: size}, nil
	case *Choice[Unresolved]:
		c, err := resolveChoice(t, r)
		if err != nil {
			return nil, err
		}
		return c, nil
	case *OpenType[Unresolved]:
		o, err := ResolveOpenType(t, r)
		if err != nil {
			return nil, err
		}
		return o, nil
	case *TypeRef[Unresolved]:
		return r.ResolveTypeRef(t)
	case nil:
		return nil, errors.New("model: nil type")
	default:
		return nil, fmt.Errorf("model: unsupported type node %T", t)
	}
}

// ResolveOpenType resolves every variant of o in order, stopping at the
// first failure. The extension index is carried over; variant keys are
// not, since they are assigned later by code generation.
func ResolveOpenType(o *OpenType[Unresolved], r Resolver) (*OpenType[Resolved], error) {
	variants := make([]OpenTypeVariant[Resolved], 0, len(o.variants))
	for _, v := range o.variants {
		typ, err := ResolveType(v.Type, r)
		if err != nil {
			return nil, fmt.Errorf("open type variant %s: %w", v.Name, err)
		}
		variants = append(variants, OpenTypeVariant[Resolved]{
			Name:    v.Name,
			Tagging: v.Tagging,
			Type:    typ,
		})
	}
	return &OpenType[Resolved]{variants: variants, extensionAfter: clonePtr(o.extensionAfter)}, nil
}

// ResolveDefinition resolves one type assignment.
func ResolveDefinition(d Definition[Unresolved], r Resolver) (Definition[Resolved], error) {
	typ, err := ResolveType(d.Type, r)
	if err != nil {
		return Definition[Resolved]{}, err
	}
	return Definition[Resolved]{Name: d.Name, Tagging: d.Tagging, Type: typ}, nil
}

// ResolveValue resolves one value assignment.
func ResolveValue(v ValueAssignment[Unresolved], r Resolver) (ValueAssignment[Resolved], error) {
	typ, err := ResolveType(v.Type, r)
	if err != nil {
		return ValueAssignment[Resolved]{}, err
	}
	val, err := resolveLeaf(v.Value, r.ResolveConst)
	if err != nil {
		return ValueAssignment[Resolved]{}, err
	}
	return ValueAssignment[Resolved]{Name: v.Name, Type: typ, Value: val}, nil
}

// ResolveModel resolves every assignment of m independently. A failing
// assignment is left out of the result and its error, prefixed with the
// module and assignment name, is joined into the returned error. The
// result is never nil.
func ResolveModel(m *Model[Unresolved], r Resolver) (*Model[Resolved], error) {
	out := &Model[Resolved]{
		Name:                 m.Name,
		OID:                  slices.Clone(m.OID),
		TagDefault:           m.TagDefault,
		ExtensibilityImplied: m.ExtensibilityImplied,
		Imports:              slices.Clone(m.Imports),
	}
	var errs []error
	for _, v := range m.Values {
		rv, err := ResolveValue(v, r)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", m.Name, v.Name, err))
			continue
		}
		out.Values = append(out.Values, rv)
	}
	for _, d := range m.Definitions {
		rd, err := ResolveDefinition(d, r)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", m.Name, d.Name, err))
			continue
		}
		out.Definitions = append(out.Definitions, rd)
	}
	return out, errors.Join(errs...)
}

func resolveRange(rng *Range[Unresolved], r Resolver) (*Range[Resolved], error) {
	if rng == nil {
		return nil, nil
	}
	lo, err := resolveLeafPtr(rng.Min, r.ResolveRange)
	if err != nil {
		return nil, err
	}
	hi, err := resolveLeafPtr(rng.Max, r.ResolveRange)
	if err != nil {
		return nil, err
	}
	if lo != nil && hi != nil && Value(*lo) > Value(*hi) {
		return nil, &ResolveError{
			Code:   types.CodeEmptyRange,
			Name:   fmt.Sprintf("%d..%d", Value(*lo), Value(*hi)),
			Detail: "lower bound exceeds upper bound",
		}
	}
	return &Range[Resolved]{Min: lo, Max: hi, Extensible: rng.Extensible}, nil
}

func resolveSize(size *Size[Unresolved], r Resolver) (*Size[Resolved], error) {
	if size == nil {
		return nil, nil
	}
	lo, err := resolveLeafPtr(size.Min, r.ResolveSize)
	if err != nil {
		return nil, err
	}
	hi, err := resolveLeafPtr(size.Max, r.ResolveSize)
	if err != nil {
		return nil, err
	}
	if lo != nil && hi != nil && Value(*lo) > Value(*hi) {
		return nil, &ResolveError{
			Code:   types.CodeEmptyRange,
			Name:   fmt.Sprintf("SIZE(%d..%d)", Value(*lo), Value(*hi)),
			Detail: "lower bound exceeds upper bound",
		}
	}
	return &Size[Resolved]{Min: lo, Max: hi, Extensible: size.Extensible}, nil
}

func resolveList(elem Type[Unresolved], size *Size[Unresolved], r Resolver) (Type[Resolved], *Size[Resolved], error) {
	re, err := ResolveType(elem, r)
	if err != nil {
		return nil, nil, err
	}
	rs, err := resolveSize(size, r)
	if err != nil {
		return nil, nil, err
	}
	return re, rs, nil
}

func resolveComponents(c Components[Unresolved], r Resolver) (Components[Resolved], error) {
	fields := make([]Field[Resolved], 0, len(c.Fields))
	for _, f := range c.Fields {
		typ, err := ResolveType(f.Type, r)
		if err != nil {
			return Components[Resolved]{}, fmt.Errorf("field %s: %w", f.Name, err)
		}
		def, err := resolveDefault(f, r)
		if err != nil {
			return Components[Resolved]{}, fmt.Errorf("field %s: %w", f.Name, err)
		}
		fields = append(fields, Field[Resolved]{
			Name:     f.Name,
			Tagging:  f.Tagging,
			Type:     typ,
			Optional: f.Optional,
			Default:  def,
			Key:      f.Key,
		})
	}
	return Components[Resolved]{Fields: fields, ExtensionAfter: clonePtr(c.ExtensionAfter)}, nil
}

// resolveDefault resolves a DEFAULT value. Identifiers naming an item of
// the field's own ENUMERATED or INTEGER type resolve locally; anything
// else goes to the resolver.
func resolveDefault(f Field[Unresolved], r Resolver) (*Leaf[Resolved, Literal], error) {
	return resolveLeafPtr(f.Default, func(sym string) (Literal, error) {
		switch t := f.Type.(type) {
		case *Enumerated[Unresolved]:
			if _, ok := t.Index(sym); ok {
				return IdentifierLiteral(sym), nil
			}
		case *Integer[Unresolved]:
			for _, n := range t.Named {
				if n.Name == sym {
					return IntegerLiteral(n.Value), nil
				}
			}
		}
		return r.ResolveConst(sym)
	})
}

func resolveChoice(c *Choice[Unresolved], r Resolver) (*Choice[Resolved], error) {
	variants := make([]ChoiceVariant[Resolved], 0, len(c.Variants))
	for _, v := range c.Variants {
		typ, err := ResolveType(v.Type, r)
		if err != nil {
			return nil, fmt.Errorf("choice variant %s: %w", v.Name, err)
		}
		variants = append(variants, ChoiceVariant[Resolved]{Name: v.Name, Tagging: v.Tagging, Type: typ})
	}
	return &Choice[Resolved]{Variants: variants, ExtensionAfter: clonePtr(c.ExtensionAfter)}, nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
