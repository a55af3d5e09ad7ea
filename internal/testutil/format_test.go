package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/golangsnmp/goasn1/model"
)

func TestFormatConstraints(t *testing.T) {
	mods := Resolve(t, `
M DEFINITIONS ::= BEGIN
	top INTEGER ::= 10
	A ::= INTEGER (0..7)
	B ::= INTEGER (MIN..top, ...)
	C ::= INTEGER (5)
	D ::= INTEGER
	E ::= OCTET STRING (SIZE(1..16))
	F ::= UTF8String (SIZE(4))
	G ::= ENUMERATED { red, green(5), ..., blue }
END`)

	rangeOf := func(name string) string {
		return FormatRange(As[*model.Integer[model.Resolved]](t, Definition(t, mods, "M", name)).Range)
	}
	assert.Equal(t, "(0..7)", rangeOf("A"))
	assert.Equal(t, "(MIN..10, ...)", rangeOf("B"))
	assert.Equal(t, "(5)", rangeOf("C"))
	assert.Equal(t, "()", rangeOf("D"))

	oct := As[*model.OctetString[model.Resolved]](t, Definition(t, mods, "M", "E"))
	assert.Equal(t, "(SIZE(1..16))", FormatSize(oct.Size))
	str := As[*model.String[model.Resolved]](t, Definition(t, mods, "M", "F"))
	assert.Equal(t, "(SIZE(4))", FormatSize(str.Size))

	enum := As[*model.Enumerated[model.Resolved]](t, Definition(t, mods, "M", "G"))
	assert.Equal(t, "{ red, green(5), ..., blue }", FormatEnum(enum))
}

func TestSquashAndDiff(t *testing.T) {
	assert.Equal(t, "type A struct {\n X int\n}", Squash([]byte("type A struct {\n\tX    int\n}")))
	assert.Empty(t, Diff("a\nb\n", "a\nb\n"))
	assert.Contains(t, Diff("a\nb\n", "a\nc\n"), "-b\n+c\n")
}
