package codegen

import (
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/goasn1/internal/testutil"
)

func generate(t *testing.T, opts Options, sources ...string) []File {
	t.Helper()
	files, err := Generate(testutil.Resolve(t, sources...), opts, nil)
	require.NoError(t, err)
	for _, f := range files {
		_, err := parser.ParseFile(token.NewFileSet(), f.Name, f.Content, parser.AllErrors)
		require.NoError(t, err, "generated %s does not parse:\n%s", f.Name, f.Content)
	}
	return files
}

func TestNames(t *testing.T) {
	tests := []struct {
		in       string
		goName   string
		fileName string
	}{
		{"Person", "Person", "person.go"},
		{"Sample-Module", "SampleModule", "sample_module.go"},
		{"person-name", "PersonName", "person_name.go"},
		{"MyMIB", "MyMIB", "my_mib.go"},
		{"x", "X", "x.go"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.goName, GoName(tt.in))
			assert.Equal(t, tt.fileName, FileName(tt.in))
		})
	}
	assert.Equal(t, "personName", lowerFirst("PersonName"))
	assert.Equal(t, "", lowerFirst(""))
}

const colorsWant = `// Code generated by asn1go from Colors. DO NOT EDIT.

package asn1

import (
	"github.com/golangsnmp/goasn1/codec"
	"github.com/golangsnmp/goasn1/tag"
)

// Color is Colors.Color.
type Color int

const (
	ColorRed   Color = 0
	ColorGreen Color = 1
	ColorBlue  Color = 2
)

var colorMeta = codec.VariantMeta{ID: tag.DefaultEnumerated, TypeName: "Color", Variants: 3, StdVariants: 2, IsExtensible: true}

func (v *Color) ReadASN1(r codec.Reader) error {
	i, err := r.ReadEnumerated(colorMeta)
	if err != nil {
		return err
	}
	*v = Color(i)
	return nil
}

func (v *Color) WriteASN1(w codec.Writer) error {
	return w.WriteEnumerated(colorMeta, uint64(*v))
}
`

func TestGenerateEnumerated(t *testing.T) {
	files := generate(t, Options{}, `
Colors DEFINITIONS AUTOMATIC TAGS ::= BEGIN
	Color ::= ENUMERATED { red, green, ..., blue }
END`)
	require.Len(t, files, 1)
	assert.Equal(t, "colors.go", files[0].Name)
	assert.Equal(t, "Colors", files[0].Module)
	got := string(files[0].Content)
	if got != colorsWant {
		t.Errorf("generated source differs:\n%s", testutil.Diff(colorsWant, got))
	}
}

// The format tests round-trip the checked-in output for this schema, so
// it must stay what the generator emits. Run go generate in the fixture
// directory after changing either.
func TestGenerateCodecFixture(t *testing.T) {
	dir := filepath.Join("..", "..", "codec", "internal", "fixture")
	schema, err := os.ReadFile(filepath.Join(dir, "fixture.asn"))
	require.NoError(t, err)
	checkedIn, err := os.ReadFile(filepath.Join(dir, "fixture.go"))
	require.NoError(t, err)
	want, err := format.Source(checkedIn)
	require.NoError(t, err)

	files := generate(t, Options{Package: "fixture"}, string(schema))
	require.Len(t, files, 1)
	assert.Equal(t, "fixture.go", files[0].Name)
	if diff := testutil.Diff(string(want), string(files[0].Content)); diff != "" {
		t.Errorf("codec/internal/fixture/fixture.go is stale:\n%s", diff)
	}
}

const sampleModule = `
Sample DEFINITIONS AUTOMATIC TAGS ::= BEGIN
	maxName INTEGER ::= 16

	Color ::= ENUMERATED { red, green, ..., blue }
	Name ::= UTF8String (SIZE(1..maxName))
	Priority ::= INTEGER { low(1), high(9) } (1..9)

	Person ::= SEQUENCE {
		name  Name,
		age   INTEGER (0..150),
		email IA5String OPTIONAL,
		color Color DEFAULT green,
		...,
		nick  VisibleString OPTIONAL,
		tags  SEQUENCE (SIZE(0..4)) OF PrintableString
	}

	Shape ::= CHOICE { circle INTEGER (0..255), square Point, ..., label UTF8String }
	Point ::= SEQUENCE { x INTEGER, y INTEGER }
	Alias ::= Person

	Message ::= SEQUENCE {
		kind INTEGER (0..7),
		body OPEN TYPE { ping NULL, text UTF8String, ..., point Point } (@kind)
	}

	Record ::= SET {
		active BOOLEAN DEFAULT TRUE,
		level  INTEGER (0..10, ...),
		big    INTEGER (1000..MAX),
		mode   ENUMERATED { on, off } DEFAULT off,
		inner  SEQUENCE { flag BOOLEAN } OPTIONAL
	}
	Empty ::= SEQUENCE { }
END`

func TestGenerateSample(t *testing.T) {
	files := generate(t, Options{Package: "sample"}, sampleModule)
	require.Len(t, files, 1)
	src := testutil.Squash(files[0].Content)

	for _, want := range []string{
		"package sample",
		"type Name string",
		"var nameDesc = codec.UTF8String{C: codec.Meta{ID: tag.DefaultUTF8String, Size: codec.Range[uint64](1, 16)}}",
		"PriorityLow Priority = 1",
		"PriorityHigh Priority = 9",
		"type Person struct {",
		"Email *string",
		"Tags []string",
		"personMeta = codec.SequenceMeta{ID: tag.DefaultSequence, TypeName: \"Person\", Fields: 6, StdOptional: 2, Extensible: true, ExtensionAfter: 3}",
		"personName = codec.Complex[Name, *Name]{}",
		"personAge = codec.Integer[int64]{C: codec.Meta{ID: tag.DefaultInteger, Range: codec.Range[int64](0, 150)}}",
		"personEmail = codec.Optional[string]{Elem: codec.IA5String{C: codec.Meta{ID: tag.DefaultIA5String}}}",
		"personColor = codec.Default[Color]{Elem: codec.Complex[Color, *Color]{}, Value: ColorGreen}",
		"C: codec.Meta{ID: tag.DefaultSequenceOf, Size: codec.Range[uint64](0, 4)},",
		"return personTags.WriteValue(w, v.Tags)",
		"shapeMeta = codec.VariantMeta{ID: tag.DefaultSequence, TypeName: \"Shape\", Variants: 3, StdVariants: 2, IsExtensible: true}",
		"case v.Label != nil:\n return 2, true",
		"return codec.ErrNoVariant",
		"type Alias = Person",
		"BodyKnown bool",
		"messageBody = codec.OpenTypeField[MessageBody, *MessageBody]{C: messageBodyMeta}",
		"if v.Body, v.BodyKnown, err = messageBody.ReadValueByKey(r, uint64(v.Kind)); err != nil {",
		"return messageBody.WriteValueByKey(w, v.Body, uint64(v.Kind))",
		"// MessageBody is an inline OPEN TYPE type.",
		"messageBodyMeta = codec.VariantMeta{ID: tag.DefaultSequence, TypeName: \"MessageBody\", Variants: 3, StdVariants: 2, IsExtensible: true}",
		"recordMeta = codec.SequenceMeta{ID: tag.DefaultSet, TypeName: \"Record\", Fields: 5, StdOptional: 3}",
		"recordActive = codec.Default[bool]{Elem: codec.Boolean{C: codec.Meta{ID: tag.DefaultBoolean}}, Value: true}",
		"Range: codec.Bounds[int64]{Min: 0, Max: 10, HasMin: true, HasMax: true, Extensible: true}",
		"Range: codec.Bounds[int64]{Min: 1000, HasMin: true}",
		"recordMode = codec.Default[RecordMode]{Elem: codec.Complex[RecordMode, *RecordMode]{}, Value: RecordModeOff}",
		"Inner *RecordInner",
		"return r.ReadSet(recordMeta, func(r codec.Reader) error {",
		"return r.ReadSequence(emptyMeta, func(codec.Reader) error { return nil })",
	} {
		assert.Contains(t, src, want)
	}
	// Open types are only read through their keyed field.
	assert.NotContains(t, src, "func (v *MessageBody) ReadASN1")
	assert.Contains(t, src, "func (v *MessageBody) ReadContent(index uint64, r codec.Reader) (bool, error) {")
}

func TestGenerateDeterministic(t *testing.T) {
	first := generate(t, Options{}, sampleModule)
	second := generate(t, Options{}, sampleModule)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Empty(t, testutil.Diff(string(first[i].Content), string(second[i].Content)))
	}
}

func TestGenerateHeader(t *testing.T) {
	files := generate(t, Options{Header: "Formats: uper, tlv\nSource: colors.asn"}, `
Colors DEFINITIONS ::= BEGIN
	Color ::= ENUMERATED { red }
END`)
	require.Len(t, files, 1)
	assert.Contains(t, string(files[0].Content),
		"// Code generated by asn1go from Colors. DO NOT EDIT.\n//\n// Formats: uper, tlv\n// Source: colors.asn\n\npackage asn1\n")
}

func TestGenerateNameCollision(t *testing.T) {
	files := generate(t, Options{}, `
A DEFINITIONS ::= BEGIN
	Thing ::= BOOLEAN
END`, `
B DEFINITIONS ::= BEGIN
	Thing ::= SEQUENCE { t A.Thing }
	Other ::= INTEGER
END`)
	require.Len(t, files, 2)
	assert.Contains(t, testutil.Squash(files[0].Content), "type AThing bool")
	b := testutil.Squash(files[1].Content)
	assert.Contains(t, b, "type BThing struct {\n T AThing\n}")
	assert.Contains(t, b, "type Other int64")
}

func TestGenerateSkipsEmptyModules(t *testing.T) {
	files := generate(t, Options{}, `
Consts DEFINITIONS ::= BEGIN
	limit INTEGER ::= 4
END`)
	assert.Empty(t, files)
}

func TestGenerateUnsupported(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "open type without selector",
			body: "M ::= SEQUENCE { body OPEN TYPE { a NULL } }",
			want: "no (@field) selector",
		},
		{
			name: "selector after field",
			body: "M ::= SEQUENCE { body OPEN TYPE { a NULL } (@kind), kind INTEGER }",
			want: "must be an earlier field",
		},
		{
			name: "selector not integer",
			body: "M ::= SEQUENCE { kind UTF8String, body OPEN TYPE { a NULL } (@kind) }",
			want: "not INTEGER or ENUMERATED",
		},
		{
			name: "open type list element",
			body: "P ::= OPEN TYPE { a NULL }\nM ::= SEQUENCE OF P",
			want: "open type as SequenceOf element",
		},
		{
			name: "default on list",
			body: "M ::= SEQUENCE { xs SEQUENCE OF INTEGER DEFAULT 1 }",
			want: "DEFAULT on SEQUENCE OF",
		},
		{
			name: "default kind mismatch",
			body: "M ::= SEQUENCE { flag BOOLEAN DEFAULT 1 }",
			want: "does not fit field flag",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mods := testutil.Resolve(t, "X DEFINITIONS ::= BEGIN\n"+tt.body+"\nEND")
			_, err := Generate(mods, Options{}, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupported)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "X.")
		})
	}
}
