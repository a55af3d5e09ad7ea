package codegen

import (
	"fmt"
	"strings"

	"github.com/golangsnmp/goasn1/internal/graph"
	"github.com/golangsnmp/goasn1/model"
	"github.com/golangsnmp/goasn1/tag"
)

// maxAliasDepth bounds "A ::= B" chains, which may be cyclic.
const maxAliasDepth = 64

// goType returns the Go type of t. Inline constructed types are named
// hint and queued for declaration.
func (g *generator) goType(t model.Type[resolved], hint string) (string, error) {
	switch t := t.(type) {
	case *model.Boolean[resolved]:
		return "bool", nil
	case *model.Null[resolved]:
		return "struct{}", nil
	case *model.Integer[resolved]:
		return "int64", nil
	case *model.String[resolved]:
		return "string", nil
	case *model.OctetString[resolved]:
		return "[]byte", nil
	case *model.BitString[resolved]:
		return "codec.Bits", nil
	case *model.SequenceOf[resolved]:
		elem, err := g.goType(t.Element, hint+"Item")
		return "[]" + elem, err
	case *model.SetOf[resolved]:
		elem, err := g.goType(t.Element, hint+"Item")
		return "[]" + elem, err
	case *model.TypeRef[resolved]:
		name, _, _, err := g.follow(t)
		return name, err
	case *model.Sequence[resolved], *model.Set[resolved], *model.Choice[resolved],
		*model.Enumerated[resolved], *model.OpenType[resolved]:
		return g.inline(hint, t), nil
	default:
		return "", fmt.Errorf("%w: type %T", ErrUnsupported, t)
	}
}

// descriptor returns the codec descriptor expression for t. tg is the
// tag of leaf types; constructed types carry their own.
func (g *generator) descriptor(t model.Type[resolved], hint string, tg tag.Tag) (string, error) {
	switch t := t.(type) {
	case *model.Boolean[resolved]:
		return "codec.Boolean{C: " + metaExpr(tagExpr(tg), nil, nil) + "}", nil
	case *model.Null[resolved]:
		return "codec.Null{C: " + metaExpr(tagExpr(tg), nil, nil) + "}", nil
	case *model.Integer[resolved]:
		return "codec.Integer[int64]{C: " + metaExpr(tagExpr(tg), t.Range, nil) + "}", nil
	case *model.String[resolved]:
		return "codec." + t.Kind.Keyword() + "{C: " + metaExpr(tagExpr(tg), nil, t.Size) + "}", nil
	case *model.OctetString[resolved]:
		return "codec.OctetString{C: " + metaExpr(tagExpr(tg), nil, t.Size) + "}", nil
	case *model.BitString[resolved]:
		return "codec.BitString{C: " + metaExpr(tagExpr(tg), nil, t.Size) + "}", nil
	case *model.SequenceOf[resolved]:
		return g.list("SequenceOf", t.Element, t.Size, hint, tg)
	case *model.SetOf[resolved]:
		return g.list("SetOf", t.Element, t.Size, hint, tg)
	case *model.TypeRef[resolved]:
		name, final, finalName, err := g.follow(t)
		if err != nil {
			return "", err
		}
		if _, ok := final.(*model.OpenType[resolved]); ok {
			return fmt.Sprintf("codec.OpenTypeField[%s, *%s]{C: %sMeta}", name, name, lowerFirst(finalName)), nil
		}
		return fmt.Sprintf("codec.Complex[%s, *%s]{}", name, name), nil
	case *model.OpenType[resolved]:
		name := g.inline(hint, t)
		return fmt.Sprintf("codec.OpenTypeField[%s, *%s]{C: %sMeta}", name, name, lowerFirst(name)), nil
	case *model.Sequence[resolved], *model.Set[resolved], *model.Choice[resolved], *model.Enumerated[resolved]:
		name := g.inline(hint, t)
		return fmt.Sprintf("codec.Complex[%s, *%s]{}", name, name), nil
	default:
		return "", fmt.Errorf("%w: type %T", ErrUnsupported, t)
	}
}

func (g *generator) list(kind string, elem model.Type[resolved], size *model.Size[resolved], hint string, tg tag.Tag) (string, error) {
	if open, err := g.isOpen(elem); err != nil {
		return "", err
	} else if open {
		return "", fmt.Errorf("%w: open type as %s element", ErrUnsupported, kind)
	}
	elemType, err := g.goType(elem, hint+"Item")
	if err != nil {
		return "", err
	}
	elemTag, _ := model.DefaultTag(elem)
	elemDesc, err := g.descriptor(elem, hint+"Item", elemTag)
	if err != nil {
		return "", err
	}
	id := tagExpr(tg)
	if tg == tag.DefaultSequenceOf || tg == tag.DefaultSetOf {
		id = "tag.Default" + kind
	}
	return fmt.Sprintf("codec.%s[%s]{\nC: %s,\nElem: %s,\n}", kind, elemType, metaExpr(id, nil, size), elemDesc), nil
}

// follow returns the Go name of ref, the type it finally stands for
// after alias chains, and the Go name of the assignment holding it.
func (g *generator) follow(ref *model.TypeRef[resolved]) (string, model.Type[resolved], string, error) {
	sym := graph.Symbol{Module: ref.Module, Name: ref.Name}
	name, ok := g.names[sym]
	if !ok {
		return "", nil, "", fmt.Errorf("%w: %s", model.ErrTypeNotFound, sym)
	}
	for range maxAliasDepth {
		def := g.defs[sym]
		next, ok := def.Type.(*model.TypeRef[resolved])
		if !ok {
			return name, def.Type, g.names[sym], nil
		}
		sym = graph.Symbol{Module: next.Module, Name: next.Name}
		if _, ok := g.defs[sym]; !ok {
			return "", nil, "", fmt.Errorf("%w: %s", model.ErrTypeNotFound, sym)
		}
	}
	return "", nil, "", fmt.Errorf("%w: type reference cycle through %s", ErrUnsupported, ref.Name)
}

// underlying returns the type t stands for after references, and the Go
// name of the assignment holding it when t is a reference.
func (g *generator) underlying(t model.Type[resolved]) (model.Type[resolved], string, error) {
	ref, ok := t.(*model.TypeRef[resolved])
	if !ok {
		return t, "", nil
	}
	_, final, finalName, err := g.follow(ref)
	return final, finalName, err
}

func (g *generator) isOpen(t model.Type[resolved]) (bool, error) {
	final, _, err := g.underlying(t)
	if err != nil {
		return false, err
	}
	_, ok := final.(*model.OpenType[resolved])
	return ok, nil
}

var universalNames = map[uint64]string{
	1:  "tag.DefaultBoolean",
	2:  "tag.DefaultInteger",
	3:  "tag.DefaultBitString",
	4:  "tag.DefaultOctetString",
	5:  "tag.DefaultNull",
	10: "tag.DefaultEnumerated",
	12: "tag.DefaultUTF8String",
	16: "tag.DefaultSequence",
	17: "tag.DefaultSet",
	18: "tag.DefaultNumericString",
	19: "tag.DefaultPrintableString",
	22: "tag.DefaultIA5String",
	26: "tag.DefaultVisibleString",
}

func tagExpr(t tag.Tag) string {
	if t.Class == tag.ClassUniversal {
		if name, ok := universalNames[t.Number]; ok {
			return name
		}
	}
	return t.GoString()
}

func metaExpr(id string, rng *model.Range[resolved], size *model.Size[resolved]) string {
	parts := []string{"ID: " + id}
	if rng != nil {
		var lo, hi *int64
		if rng.Min != nil {
			v := model.Value(*rng.Min)
			lo = &v
		}
		if rng.Max != nil {
			v := model.Value(*rng.Max)
			hi = &v
		}
		if b, ok := boundsExpr("int64", lo, hi, rng.Extensible); ok {
			parts = append(parts, "Range: "+b)
		}
	}
	if size != nil {
		var lo, hi *uint64
		if size.Min != nil {
			v := model.Value(*size.Min)
			lo = &v
		}
		if size.Max != nil {
			v := model.Value(*size.Max)
			hi = &v
		}
		if b, ok := boundsExpr("uint64", lo, hi, size.Extensible); ok {
			parts = append(parts, "Size: "+b)
		}
	}
	return "codec.Meta{" + strings.Join(parts, ", ") + "}"
}

func boundsExpr[T int64 | uint64](typ string, lo, hi *T, extensible bool) (string, bool) {
	switch {
	case lo == nil && hi == nil && !extensible:
		return "", false
	case lo != nil && hi != nil && !extensible:
		return fmt.Sprintf("codec.Range[%s](%d, %d)", typ, *lo, *hi), true
	}
	var parts []string
	if lo != nil {
		parts = append(parts, fmt.Sprintf("Min: %d", *lo))
	}
	if hi != nil {
		parts = append(parts, fmt.Sprintf("Max: %d", *hi))
	}
	if lo != nil {
		parts = append(parts, "HasMin: true")
	}
	if hi != nil {
		parts = append(parts, "HasMax: true")
	}
	if extensible {
		parts = append(parts, "Extensible: true")
	}
	return fmt.Sprintf("codec.Bounds[%s]{%s}", typ, strings.Join(parts, ", ")), true
}

func kindName(t model.Type[resolved]) string {
	switch t := t.(type) {
	case *model.Boolean[resolved]:
		return "BOOLEAN"
	case *model.Null[resolved]:
		return "NULL"
	case *model.Integer[resolved]:
		return "INTEGER"
	case *model.String[resolved]:
		return t.Kind.Keyword()
	case *model.OctetString[resolved]:
		return "OCTET STRING"
	case *model.BitString[resolved]:
		return "BIT STRING"
	case *model.Enumerated[resolved]:
		return "ENUMERATED"
	case *model.Sequence[resolved]:
		return "SEQUENCE"
	case *model.Set[resolved]:
		return "SET"
	case *model.SequenceOf[resolved]:
		return "SEQUENCE OF"
	case *model.SetOf[resolved]:
		return "SET OF"
	case *model.Choice[resolved]:
		return "CHOICE"
	case *model.OpenType[resolved]:
		return "OPEN TYPE"
	default:
		return "type reference"
	}
}
