package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/goasn1/tag"
)

type mapResolver struct {
	sizes  map[string]uint64
	ranges map[string]int64
	consts map[string]Literal
	types  map[string]bool
	calls  []string
}

func (m *mapResolver) ResolveSize(sym string) (uint64, error) {
	m.calls = append(m.calls, "size:"+sym)
	if v, ok := m.sizes[sym]; ok {
		return v, nil
	}
	return 0, SymbolNotFound(sym)
}

func (m *mapResolver) ResolveRange(sym string) (int64, error) {
	m.calls = append(m.calls, "range:"+sym)
	if v, ok := m.ranges[sym]; ok {
		return v, nil
	}
	return 0, SymbolNotFound(sym)
}

func (m *mapResolver) ResolveConst(sym string) (Literal, error) {
	m.calls = append(m.calls, "const:"+sym)
	if v, ok := m.consts[sym]; ok {
		return v, nil
	}
	return Literal{}, SymbolNotFound(sym)
}

func (m *mapResolver) ResolveTypeRef(ref *TypeRef[Unresolved]) (Type[Resolved], error) {
	m.calls = append(m.calls, "type:"+ref.Name)
	if m.types[ref.Name] {
		return &TypeRef[Resolved]{Module: ref.Module, Name: ref.Name}, nil
	}
	return nil, TypeNotFound(ref.Name)
}

func ptr[T any](v T) *T { return &v }

func TestLeafStates(t *testing.T) {
	lit := Lit[Unresolved](uint64(5))
	v, ok := lit.Literal()
	assert.True(t, ok)
	assert.Equal(t, uint64(5), v)
	_, ok = lit.Symbol()
	assert.False(t, ok)

	ref := Ref[uint64]("maxItems")
	sym, ok := ref.Symbol()
	assert.True(t, ok)
	assert.Equal(t, "maxItems", sym)
	_, ok = ref.Literal()
	assert.False(t, ok)

	assert.Equal(t, int64(-3), Value(Lit[Resolved](int64(-3))))
}

func TestResolveLeavesThroughResolver(t *testing.T) {
	r := &mapResolver{
		sizes:  map[string]uint64{"maxItems": 10},
		ranges: map[string]int64{"lo": -5},
	}
	in := &SequenceOf[Unresolved]{
		Element: &Integer[Unresolved]{Range: &Range[Unresolved]{Min: ptr(Ref[int64]("lo")), Max: ptr(Lit[Unresolved](int64(5)))}},
		Size:    &Size[Unresolved]{Min: ptr(Lit[Unresolved](uint64(0))), Max: ptr(Ref[uint64]("maxItems"))},
	}
	out, err := ResolveType(in, r)
	require.NoError(t, err)

	seqOf, ok := out.(*SequenceOf[Resolved])
	require.True(t, ok)
	assert.Equal(t, uint64(10), Value(*seqOf.Size.Max))
	assert.Equal(t, uint64(0), Value(*seqOf.Size.Min))
	integer := seqOf.Element.(*Integer[Resolved])
	assert.Equal(t, int64(-5), Value(*integer.Range.Min))
	assert.Equal(t, int64(5), Value(*integer.Range.Max))

	// the input keeps its symbols
	sym, ok := in.Size.Max.Symbol()
	assert.True(t, ok)
	assert.Equal(t, "maxItems", sym)
}

func TestResolveMissingSymbol(t *testing.T) {
	r := &mapResolver{}
	_, err := ResolveType(&OctetString[Unresolved]{
		Size: &Size[Unresolved]{Min: ptr(Ref[uint64]("nope"))},
	}, r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSymbolNotFound))
	var re *ResolveError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "nope", re.Name)
}

func TestResolveEmptyRange(t *testing.T) {
	_, err := ResolveType(&Integer[Unresolved]{
		Range: &Range[Unresolved]{Min: ptr(Lit[Unresolved](int64(5))), Max: ptr(Lit[Unresolved](int64(1)))},
	}, &mapResolver{})
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestResolveOpenTypeKeepsOrderAndExtension(t *testing.T) {
	r := &mapResolver{types: map[string]bool{"Circle": true}}
	o := NewOpenType(
		OpenTypeVariant[Unresolved]{Name: "a", Type: &Boolean[Unresolved]{}},
		WithTag(OpenTypeVariant[Unresolved]{Name: "b", Type: &TypeRef[Unresolved]{Name: "Circle"}}, tag.ContextSpecific(3)),
		OpenTypeVariant[Unresolved]{Name: "c", Type: &Null[Unresolved]{}},
	).WithExtensionAfter(1)

	out, err := ResolveOpenType(o, r)
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())
	idx, ok := out.ExtensionAfterIndex()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, out.StdVariantCount())

	names := []string{}
	for _, v := range out.Variants() {
		names = append(names, v.Name)
		assert.Nil(t, v.Key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)

	tg, ok := out.Variant(1).Tag()
	require.True(t, ok)
	assert.Equal(t, tag.ContextSpecific(3), tg)
	assert.Equal(t, &TypeRef[Resolved]{Name: "Circle"}, out.Variant(1).Type)
}

func TestResolveOpenTypeShortCircuits(t *testing.T) {
	r := &mapResolver{}
	o := NewOpenType(
		OpenTypeVariant[Unresolved]{Name: "a", Type: &TypeRef[Unresolved]{Name: "Missing"}},
		OpenTypeVariant[Unresolved]{Name: "b", Type: &TypeRef[Unresolved]{Name: "AlsoMissing"}},
	)
	out, err := ResolveOpenType(o, r)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrTypeNotFound)
	assert.Equal(t, []string{"type:Missing"}, r.calls)
}

func TestOpenTypeEmpty(t *testing.T) {
	o := NewOpenType[Unresolved]()
	assert.True(t, o.IsEmpty())
	assert.False(t, o.IsExtensible())
	out, err := ResolveOpenType(o, &mapResolver{})
	require.NoError(t, err)
	assert.True(t, out.IsEmpty())
	assert.Panics(t, func() { o.WithExtensionAfter(0) })
}

func TestOpenTypeVariantKeys(t *testing.T) {
	o := NewOpenType(
		OpenTypeVariant[Resolved]{Name: "a", Type: &Boolean[Resolved]{}},
		OpenTypeVariant[Resolved]{Name: "b", Type: &Null[Resolved]{}},
	)
	keyed := o.WithVariantKeys()
	assert.Equal(t, 1, *keyed.Variant(1).Key)
	assert.Nil(t, o.Variant(1).Key)
}

func TestWithTagIsNonDestructive(t *testing.T) {
	f := Field[Unresolved]{Name: "x", Type: &Boolean[Unresolved]{}}
	tagged := WithTag(f, tag.Application(2))

	_, ok := f.Tag()
	assert.False(t, ok)
	tg, ok := tagged.Tag()
	require.True(t, ok)
	assert.Equal(t, tag.Application(2), tg)

	cleared := WithoutTag(tagged)
	_, ok = cleared.Tag()
	assert.False(t, ok)
	_, ok = tagged.Tag()
	assert.True(t, ok)

	assert.Equal(t, tagged, WithTagOpt(f, ptr(tag.Application(2))))
	assert.Equal(t, tag.DefaultBoolean, TagOf(f, tag.DefaultBoolean))
}

func TestResolveDefaults(t *testing.T) {
	r := &mapResolver{consts: map[string]Literal{"greeting": StringLiteral("hi")}}
	seq := &Sequence[Unresolved]{Components: Components[Unresolved]{Fields: []Field[Unresolved]{
		{Name: "color", Type: &Enumerated[Unresolved]{Items: []EnumItem{{Name: "red"}, {Name: "green"}}}, Default: ptr(Ref[Literal]("green"))},
		{Name: "level", Type: &Integer[Unresolved]{Named: []NamedNumber{{Name: "high", Value: 9}}}, Default: ptr(Ref[Literal]("high"))},
		{Name: "text", Type: &String[Unresolved]{Kind: UTF8String}, Default: ptr(Ref[Literal]("greeting"))},
		{Name: "flag", Type: &Boolean[Unresolved]{}, Default: ptr(Lit[Unresolved](BooleanLiteral(true)))},
	}}}
	out, err := ResolveType(seq, r)
	require.NoError(t, err)
	fields := out.(*Sequence[Resolved]).Fields
	assert.Equal(t, IdentifierLiteral("green"), Value(*fields[0].Default))
	assert.Equal(t, IntegerLiteral(9), Value(*fields[1].Default))
	assert.Equal(t, StringLiteral("hi"), Value(*fields[2].Default))
	assert.Equal(t, BooleanLiteral(true), Value(*fields[3].Default))
	assert.Equal(t, []string{"const:greeting"}, r.calls)
}

func TestResolveModelIsPerDefinition(t *testing.T) {
	r := &mapResolver{types: map[string]bool{"Good": true}}
	m := &Model[Unresolved]{
		Name: "M",
		Definitions: []Definition[Unresolved]{
			{Name: "Good", Type: &Boolean[Unresolved]{}},
			{Name: "Bad", Type: &TypeRef[Unresolved]{Name: "Missing"}},
			{Name: "Alias", Type: &TypeRef[Unresolved]{Name: "Good"}},
		},
	}
	out, err := ResolveModel(m, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "M.Bad")
	require.NotNil(t, out)
	require.Len(t, out.Definitions, 2)
	assert.Equal(t, "Good", out.Definitions[0].Name)
	assert.Equal(t, "Alias", out.Definitions[1].Name)
}

func TestDefaultTag(t *testing.T) {
	tg, ok := DefaultTag[Resolved](&String[Resolved]{Kind: IA5String})
	require.True(t, ok)
	assert.Equal(t, tag.DefaultIA5String, tg)
	_, ok = DefaultTag[Resolved](&Choice[Resolved]{})
	assert.False(t, ok)
}
