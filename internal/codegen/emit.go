package codegen

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/golangsnmp/goasn1/model"
	"github.com/golangsnmp/goasn1/tag"
)

// generator emits the definitions of one module.
type generator struct {
	*program
	mod *model.Model[resolved]
	buf bytes.Buffer

	// pending holds inline SEQUENCE, SET, CHOICE, ENUMERATED and open
	// types that got a synthesized name and still need a declaration.
	pending []inlineType
	seen    map[string]bool
}

type inlineType struct {
	name string
	typ  model.Type[resolved]
}

func (g *generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

// inline names an inline constructed type and queues its declaration.
func (g *generator) inline(name string, t model.Type[resolved]) string {
	if !g.seen[name] {
		g.seen[name] = true
		g.pending = append(g.pending, inlineType{name: name, typ: t})
	}
	return name
}

func (g *generator) flush() error {
	for len(g.pending) > 0 {
		next := g.pending[0]
		g.pending = g.pending[1:]
		g.printf("// %s is an inline %s type.\n", next.name, kindName(next.typ))
		if err := g.definition(next.name, next.typ, model.Tagging{}); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) definition(name string, t model.Type[resolved], tagging model.Tagging) error {
	switch t := t.(type) {
	case *model.TypeRef[resolved]:
		target, _, _, err := g.follow(t)
		if err != nil {
			return err
		}
		if _, ok := tagging.Tag(); ok {
			g.Log(slog.LevelWarn, "tag on type reference ignored",
				slog.String("module", g.mod.Name),
				slog.String("type", name))
		}
		g.printf("type %s = %s\n\n", name, target)
		return nil
	case *model.Sequence[resolved]:
		return g.components(name, "Sequence", &t.Components, model.TagOf(tagging, tag.DefaultSequence))
	case *model.Set[resolved]:
		return g.components(name, "Set", &t.Components, model.TagOf(tagging, tag.DefaultSet))
	case *model.Choice[resolved]:
		return g.choice(name, t, model.TagOf(tagging, tag.DefaultSequence))
	case *model.OpenType[resolved]:
		return g.openType(name, t.WithVariantKeys(), model.TagOf(tagging, tag.DefaultSequence))
	case *model.Enumerated[resolved]:
		return g.enumerated(name, t, model.TagOf(tagging, tag.DefaultEnumerated))
	default:
		def, _ := model.DefaultTag(t)
		return g.leaf(name, t, model.TagOf(tagging, def))
	}
}

// leaf emits a named Go type over a primitive or list type.
func (g *generator) leaf(name string, t model.Type[resolved], tg tag.Tag) error {
	base, err := g.goType(t, name+"Item")
	if err != nil {
		return err
	}
	desc, err := g.descriptor(t, name+"Item", tg)
	if err != nil {
		return err
	}
	v := lowerFirst(name) + "Desc"

	g.printf("type %s %s\n\n", name, base)
	switch t := t.(type) {
	case *model.Integer[resolved]:
		if len(t.Named) > 0 {
			g.printf("const (\n")
			for _, n := range t.Named {
				g.printf("%s%s %s = %d\n", name, GoName(n.Name), name, n.Value)
			}
			g.printf(")\n\n")
		}
	case *model.BitString[resolved]:
		if len(t.Named) > 0 {
			g.printf("// Bit positions of %s.\nconst (\n", name)
			for _, n := range t.Named {
				g.printf("%s%s = %d\n", name, GoName(n.Name), n.Value)
			}
			g.printf(")\n\n")
		}
	}
	g.printf("var %s = %s\n\n", v, desc)

	g.printf("func (v *%s) ReadASN1(r codec.Reader) error {\n", name)
	g.printf("x, err := %s.ReadValue(r)\nif err != nil {\nreturn err\n}\n", v)
	g.printf("*v = %s(x)\nreturn nil\n}\n\n", name)
	g.printf("func (v *%s) WriteASN1(w codec.Writer) error {\n", name)
	g.printf("return %s.WriteValue(w, %s(*v))\n}\n\n", v, base)
	return nil
}

func (g *generator) enumerated(name string, e *model.Enumerated[resolved], tg tag.Tag) error {
	if len(e.Items) == 0 {
		return fmt.Errorf("%w: ENUMERATED %s has no items", ErrUnsupported, name)
	}
	meta := lowerFirst(name) + "Meta"
	std := len(e.Items)
	if e.ExtensionAfter != nil {
		std = *e.ExtensionAfter + 1
	}

	g.printf("type %s int\n\nconst (\n", name)
	for i, item := range e.Items {
		g.printf("%s%s %s = %d\n", name, GoName(item.Name), name, i)
	}
	g.printf(")\n\n")
	g.printf("var %s = %s\n\n", meta, variantMeta(name, tg, len(e.Items), std, e.ExtensionAfter != nil))

	g.printf("func (v *%s) ReadASN1(r codec.Reader) error {\n", name)
	g.printf("i, err := r.ReadEnumerated(%s)\nif err != nil {\nreturn err\n}\n", meta)
	g.printf("*v = %s(i)\nreturn nil\n}\n\n", name)
	g.printf("func (v *%s) WriteASN1(w codec.Writer) error {\n", name)
	g.printf("return w.WriteEnumerated(%s, uint64(*v))\n}\n\n", meta)
	return nil
}

// component is a SEQUENCE or SET field ready for emission.
type component struct {
	field   string
	goType  string
	desc    string
	varName string
	// key is the Go name of the selector field of an open type field.
	key string
}

func (g *generator) components(name, kind string, c *model.Components[resolved], tg tag.Tag) error {
	meta := lowerFirst(name) + "Meta"
	var comps []component
	stdOptional := 0
	for i := range c.Fields {
		f := &c.Fields[i]
		comp, err := g.component(name, c, i)
		if err != nil {
			return err
		}
		comps = append(comps, comp)
		inRoot := c.ExtensionAfter == nil || i <= *c.ExtensionAfter
		if inRoot && (f.Optional || f.Default != nil) {
			stdOptional++
		}
	}

	g.printf("type %s struct {\n", name)
	for _, comp := range comps {
		g.printf("%s %s\n", comp.field, comp.goType)
		if comp.key != "" {
			g.printf("// %sKnown is false when %s selects a variant this schema does not\n// declare.\n", comp.field, comp.key)
			g.printf("%sKnown bool\n", comp.field)
		}
	}
	g.printf("}\n\n")

	g.printf("var (\n%s = codec.SequenceMeta{ID: %s, TypeName: %q, Fields: %d", meta, tagExpr(tg), name, len(comps))
	if stdOptional > 0 {
		g.printf(", StdOptional: %d", stdOptional)
	}
	if c.ExtensionAfter != nil {
		g.printf(", Extensible: true, ExtensionAfter: %d", *c.ExtensionAfter)
	}
	g.printf("}\n")
	for _, comp := range comps {
		g.printf("%s = %s\n", comp.varName, comp.desc)
	}
	g.printf(")\n\n")

	g.printf("func (v *%s) ReadASN1(r codec.Reader) error {\n", name)
	if len(comps) == 0 {
		g.printf("return r.Read%s(%s, func(codec.Reader) error { return nil })\n}\n\n", kind, meta)
	} else {
		g.printf("return r.Read%s(%s, func(r codec.Reader) error {\nvar err error\n", kind, meta)
		for _, comp := range comps {
			if comp.key != "" {
				g.printf("if v.%s, v.%sKnown, err = %s.ReadValueByKey(r, uint64(v.%s)); err != nil {\nreturn err\n}\n",
					comp.field, comp.field, comp.varName, comp.key)
				continue
			}
			g.printf("if v.%s, err = %s.ReadValue(r); err != nil {\nreturn err\n}\n", comp.field, comp.varName)
		}
		g.printf("return nil\n})\n}\n\n")
	}

	g.printf("func (v *%s) WriteASN1(w codec.Writer) error {\n", name)
	if len(comps) == 0 {
		g.printf("return w.Write%s(%s, func(codec.Writer) error { return nil })\n}\n\n", kind, meta)
		return nil
	}
	g.printf("return w.Write%s(%s, func(w codec.Writer) error {\n", kind, meta)
	for i, comp := range comps {
		call := fmt.Sprintf("%s.WriteValue(w, v.%s)", comp.varName, comp.field)
		if comp.key != "" {
			call = fmt.Sprintf("%s.WriteValueByKey(w, v.%s, uint64(v.%s))", comp.varName, comp.field, comp.key)
		}
		if i == len(comps)-1 {
			g.printf("return %s\n", call)
			break
		}
		g.printf("if err := %s; err != nil {\nreturn err\n}\n", call)
	}
	g.printf("})\n}\n\n")
	return nil
}

func (g *generator) component(owner string, c *model.Components[resolved], i int) (component, error) {
	f := &c.Fields[i]
	field := GoName(f.Name)
	hint := owner + field
	comp := component{field: field, varName: lowerFirst(owner) + field}

	base, err := g.goType(f.Type, hint)
	if err != nil {
		return component{}, fmt.Errorf("field %s: %w", f.Name, err)
	}
	def, _ := model.DefaultTag(f.Type)
	desc, err := g.descriptor(f.Type, hint, model.TagOf(f, def))
	if err != nil {
		return component{}, fmt.Errorf("field %s: %w", f.Name, err)
	}

	if open, err := g.isOpen(f.Type); err != nil {
		return component{}, err
	} else if open {
		key, err := g.selector(c, i)
		if err != nil {
			return component{}, err
		}
		comp.key = key
		comp.goType, comp.desc = base, desc
		return comp, nil
	}

	switch {
	case f.Optional:
		comp.goType = "*" + base
		comp.desc = fmt.Sprintf("codec.Optional[%s]{Elem: %s}", base, desc)
	case f.Default != nil:
		lit, err := g.defaultValue(f, base)
		if err != nil {
			return component{}, err
		}
		comp.goType = base
		comp.desc = fmt.Sprintf("codec.Default[%s]{Elem: %s, Value: %s}", base, desc, lit)
	default:
		comp.goType, comp.desc = base, desc
	}
	return comp, nil
}

// selector checks the "(@key)" of the open type field at index i and
// returns the Go name of the key field.
func (g *generator) selector(c *model.Components[resolved], i int) (string, error) {
	f := &c.Fields[i]
	if f.Optional || f.Default != nil {
		return "", fmt.Errorf("%w: open type field %s cannot be OPTIONAL or DEFAULT", ErrUnsupported, f.Name)
	}
	if f.Key == "" {
		return "", fmt.Errorf("%w: open type field %s has no (@field) selector", ErrUnsupported, f.Name)
	}
	for j := 0; j < i; j++ {
		k := &c.Fields[j]
		if k.Name != f.Key {
			continue
		}
		if k.Optional {
			return "", fmt.Errorf("%w: selector %s of field %s is OPTIONAL", ErrUnsupported, k.Name, f.Name)
		}
		final, _, err := g.underlying(k.Type)
		if err != nil {
			return "", err
		}
		switch final.(type) {
		case *model.Integer[resolved], *model.Enumerated[resolved]:
			return GoName(k.Name), nil
		}
		return "", fmt.Errorf("%w: selector %s of field %s is not INTEGER or ENUMERATED", ErrUnsupported, k.Name, f.Name)
	}
	return "", fmt.Errorf("%w: selector %s of field %s must be an earlier field", ErrUnsupported, f.Key, f.Name)
}

// defaultValue renders the DEFAULT of f as a Go constant of type goType.
func (g *generator) defaultValue(f *model.Field[resolved], goType string) (string, error) {
	lit := model.Value(*f.Default)
	final, enumName, err := g.underlying(f.Type)
	if err != nil {
		return "", err
	}
	if enumName == "" {
		enumName = goType
	}
	mismatch := fmt.Errorf("%w: DEFAULT %s does not fit field %s", ErrUnsupported, lit, f.Name)

	switch t := final.(type) {
	case *model.Boolean[resolved]:
		if lit.Kind == model.LiteralBoolean {
			return strconv.FormatBool(lit.Boolean), nil
		}
	case *model.Integer[resolved]:
		switch lit.Kind {
		case model.LiteralInteger:
			return strconv.FormatInt(lit.Integer, 10), nil
		case model.LiteralIdentifier:
			for _, n := range t.Named {
				if n.Name == lit.Text {
					return strconv.FormatInt(n.Value, 10), nil
				}
			}
		}
	case *model.String[resolved]:
		if lit.Kind == model.LiteralString {
			return strconv.Quote(lit.Text), nil
		}
	case *model.Enumerated[resolved]:
		if lit.Kind == model.LiteralIdentifier {
			if _, ok := t.Index(lit.Text); ok {
				return enumName + GoName(lit.Text), nil
			}
		}
	default:
		return "", fmt.Errorf("%w: DEFAULT on %s field %s", ErrUnsupported, kindName(final), f.Name)
	}
	return "", mismatch
}

// alternative is a CHOICE or open type variant ready for emission.
type alternative struct {
	field   string
	goType  string
	desc    string
	varName string
	index   int
}

func (g *generator) alternatives(owner string, n int, at func(int) (string, model.Tagging, model.Type[resolved], int)) ([]alternative, error) {
	alts := make([]alternative, 0, n)
	for i := 0; i < n; i++ {
		name, tagging, t, index := at(i)
		field := GoName(name)
		hint := owner + field
		if open, err := g.isOpen(t); err != nil {
			return nil, err
		} else if open {
			return nil, fmt.Errorf("%w: open type in variant %s", ErrUnsupported, name)
		}
		base, err := g.goType(t, hint)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", name, err)
		}
		def, _ := model.DefaultTag(t)
		desc, err := g.descriptor(t, hint, model.TagOf(tagging, def))
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", name, err)
		}
		alts = append(alts, alternative{
			field:   field,
			goType:  base,
			desc:    desc,
			varName: lowerFirst(owner) + field,
			index:   index,
		})
	}
	return alts, nil
}

func (g *generator) choice(name string, c *model.Choice[resolved], tg tag.Tag) error {
	alts, err := g.alternatives(name, len(c.Variants), func(i int) (string, model.Tagging, model.Type[resolved], int) {
		v := &c.Variants[i]
		return v.Name, v.Tagging, v.Type, i
	})
	if err != nil {
		return err
	}
	std := len(alts)
	if c.ExtensionAfter != nil {
		std = *c.ExtensionAfter + 1
	}
	meta := lowerFirst(name) + "Meta"
	g.variants(name, meta, tg, alts, std, c.ExtensionAfter != nil)

	g.printf("func (v *%s) ReadASN1(r codec.Reader) error {\n", name)
	g.printf("_, err := r.ReadChoice(%s, v)\nreturn err\n}\n\n", meta)
	g.printf("func (v *%s) WriteASN1(w codec.Writer) error {\n", name)
	g.printf("return w.WriteChoice(%s, v)\n}\n\n", meta)
	return nil
}

// openType emits o, whose variants must carry keys. The type is only
// read through the field that selects its variant, so it has no
// ReadASN1 or WriteASN1 of its own.
func (g *generator) openType(name string, o *model.OpenType[resolved], tg tag.Tag) error {
	alts, err := g.alternatives(name, o.Len(), func(i int) (string, model.Tagging, model.Type[resolved], int) {
		v := o.Variant(i)
		return v.Name, v.Tagging, v.Type, *v.Key
	})
	if err != nil {
		return err
	}
	g.variants(name, lowerFirst(name)+"Meta", tg, alts, o.StdVariantCount(), o.IsExtensible())
	return nil
}

// variants emits the struct, constraint and content methods shared by
// CHOICE and open types.
func (g *generator) variants(name, meta string, tg tag.Tag, alts []alternative, std int, extensible bool) {
	g.printf("type %s struct {\n", name)
	for _, a := range alts {
		g.printf("%s *%s\n", a.field, a.goType)
	}
	g.printf("}\n\n")

	g.printf("var (\n%s = %s\n", meta, variantMeta(name, tg, len(alts), std, extensible))
	for _, a := range alts {
		g.printf("%s = %s\n", a.varName, a.desc)
	}
	g.printf(")\n\n")

	g.printf("func (v *%s) ChoiceIndex() (uint64, bool) {\nswitch {\n", name)
	for _, a := range alts {
		g.printf("case v.%s != nil:\nreturn %d, true\n", a.field, a.index)
	}
	g.printf("}\nreturn 0, false\n}\n\n")

	g.printf("func (v *%s) WriteContent(w codec.Writer) error {\nswitch {\n", name)
	for _, a := range alts {
		g.printf("case v.%s != nil:\nreturn %s.WriteValue(w, *v.%s)\n", a.field, a.varName, a.field)
	}
	g.printf("}\nreturn codec.ErrNoVariant\n}\n\n")

	g.printf("func (v *%s) ReadContent(index uint64, r codec.Reader) (bool, error) {\nswitch index {\n", name)
	for _, a := range alts {
		g.printf("case %d:\nx, err := %s.ReadValue(r)\nif err != nil {\nreturn false, err\n}\nv.%s = &x\n",
			a.index, a.varName, a.field)
	}
	g.printf("default:\nreturn false, nil\n}\nreturn true, nil\n}\n\n")
}

func variantMeta(name string, tg tag.Tag, n, std int, extensible bool) string {
	s := fmt.Sprintf("codec.VariantMeta{ID: %s, TypeName: %q, Variants: %d, StdVariants: %d", tagExpr(tg), name, n, std)
	if extensible {
		s += ", IsExtensible: true"
	}
	return s + "}"
}
