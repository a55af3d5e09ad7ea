package integration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/goasn1"
)

func resolveSource(t *testing.T, src string) ([]*goasn1.Module, error) {
	t.Helper()
	mods, err := goasn1.Parse([]byte(src))
	require.NoError(t, err)
	return goasn1.Resolve(mods)
}

func TestResolutionFailures(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   error
		where  string
	}{
		{
			name: "missing module",
			source: `M DEFINITIONS ::= BEGIN
	IMPORTS Thing FROM Nowhere;
	T ::= INTEGER
END`,
			want:  goasn1.ErrImportNotFound,
			where: `"Nowhere"`,
		},
		{
			name: "missing symbol",
			source: `A DEFINITIONS ::= BEGIN
	X ::= BOOLEAN
END
M DEFINITIONS ::= BEGIN
	IMPORTS Y FROM A;
	T ::= INTEGER
END`,
			want:  goasn1.ErrImportNotFound,
			where: "from A",
		},
		{
			name: "undefined type",
			source: `M DEFINITIONS ::= BEGIN
	T ::= SEQUENCE { a Undefined }
END`,
			want:  goasn1.ErrTypeNotFound,
			where: "M.T",
		},
		{
			name: "undefined size",
			source: `M DEFINITIONS ::= BEGIN
	T ::= OCTET STRING (SIZE(0..limit))
END`,
			want:  goasn1.ErrSymbolNotFound,
			where: `"limit"`,
		},
		{
			name: "value cycle",
			source: `M DEFINITIONS ::= BEGIN
	a INTEGER ::= b
	b INTEGER ::= a
	T ::= INTEGER (0..a)
END`,
			want:  goasn1.ErrValueCycle,
			where: "M.a",
		},
		{
			name: "duplicate",
			source: `M DEFINITIONS ::= BEGIN
	T ::= INTEGER
	T ::= BOOLEAN
END`,
			want:  goasn1.ErrDuplicate,
			where: "M.T",
		},
		{
			name: "empty range",
			source: `M DEFINITIONS ::= BEGIN
	T ::= INTEGER (10..1)
END`,
			want:  goasn1.ErrEmptyRange,
			where: "M.T",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveSource(t, tt.source)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.where)

			var re *goasn1.ResolveError
			assert.True(t, errors.As(err, &re))
		})
	}
}

func TestResolutionIsolatesFailures(t *testing.T) {
	mods, err := resolveSource(t, `M DEFINITIONS ::= BEGIN
	IMPORTS Missing FROM Nowhere;
	limit INTEGER ::= 8
	Good ::= OCTET STRING (SIZE(0..limit))
	UsesGood ::= SEQUENCE { g Good }
	Bad ::= SEQUENCE { m Missing }
END`)
	require.Error(t, err)
	require.Len(t, mods, 1)

	m := mods[0]
	for _, name := range []string{"Good", "UsesGood"} {
		_, ok := m.Definition(name)
		assert.True(t, ok, name)
	}
	_, ok := m.Definition("Bad")
	assert.False(t, ok)
}

func TestQualifiedReference(t *testing.T) {
	mods, err := resolveSource(t, `A DEFINITIONS ::= BEGIN
	Thing ::= INTEGER
END
B DEFINITIONS ::= BEGIN
	Thing ::= BOOLEAN
	Pair ::= SEQUENCE { mine Thing, theirs A.Thing }
END`)
	require.NoError(t, err)
	require.Len(t, mods, 2)

	files, err := goasn1.Generate(mods, nil)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, string(files[1].Content), "BThing")
	assert.Contains(t, string(files[1].Content), "AThing")
}
