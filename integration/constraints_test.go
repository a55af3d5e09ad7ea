package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/goasn1/internal/testutil"
	"github.com/golangsnmp/goasn1/model"
)

// constraintOf formats the SIZE or value range constraint of typ.
func constraintOf(t *testing.T, typ model.Type[resolved]) string {
	t.Helper()
	switch typ := typ.(type) {
	case *model.Integer[resolved]:
		return testutil.FormatRange(typ.Range)
	case *model.String[resolved]:
		return testutil.FormatSize(typ.Size)
	case *model.OctetString[resolved]:
		return testutil.FormatSize(typ.Size)
	case *model.BitString[resolved]:
		return testutil.FormatSize(typ.Size)
	case *model.SequenceOf[resolved]:
		return testutil.FormatSize(typ.Size)
	case *model.SetOf[resolved]:
		return testutil.FormatSize(typ.Size)
	}
	require.FailNow(t, "type has no constraint", "%T", typ)
	return ""
}

func TestDefinitionConstraints(t *testing.T) {
	tests := []struct {
		module string
		name   string
		want   string
	}{
		// symbolic bounds from local value assignments
		{"Common-Types", "Name", "(SIZE(1..64))"},
		{"Common-Types", "Identifier", "(SIZE(16))"},
		{"Common-Types", "Percent", "(0..100)"},
		{"Common-Types", "Flags", "(SIZE(8))"},
		// maxItems is imported and itself defined by another value
		{"Inventory", "Items", "(SIZE(0..64))"},
		{"Inventory", "Tags", "()"},
	}
	mods := loadCorpus(t)
	for _, tt := range tests {
		t.Run(tt.module+"."+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, constraintOf(t, testutil.Definition(t, mods, tt.module, tt.name)))
		})
	}
}

func TestFieldConstraints(t *testing.T) {
	assert.Equal(t, "(0..64)", constraintOf(t, getField(t, "Inventory", "Item", "quantity").Type))
	assert.Equal(t, "()", constraintOf(t, getField(t, "Inventory", "Stock", "count").Type))

	loc := getType[*model.Choice[resolved]](t, "Inventory", "Location")
	assert.Equal(t, "(1..999)", constraintOf(t, loc.Variants[1].Type))
}

func TestValueAssignments(t *testing.T) {
	mod := testutil.Module(t, loadCorpus(t), "Common-Types")
	for name, want := range map[string]int64{
		"minNameLength": 1,
		"maxNameLength": 64,
		"maxItems":      64,
	} {
		v, ok := mod.Value(name)
		require.True(t, ok, name)
		assert.Equal(t, model.IntegerLiteral(want), model.Value(v.Value), name)
	}
}
