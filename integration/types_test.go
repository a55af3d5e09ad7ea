package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/goasn1/internal/testutil"
	"github.com/golangsnmp/goasn1/model"
	"github.com/golangsnmp/goasn1/tag"
)

func TestTypeKinds(t *testing.T) {
	tests := []struct {
		module string
		name   string
		want   model.Type[resolved]
	}{
		{"Common-Types", "Name", &model.String[resolved]{}},
		{"Common-Types", "Identifier", &model.OctetString[resolved]{}},
		{"Common-Types", "Percent", &model.Integer[resolved]{}},
		{"Common-Types", "Priority", &model.Enumerated[resolved]{}},
		{"Common-Types", "Flags", &model.BitString[resolved]{}},
		{"Inventory", "Item", &model.Sequence[resolved]{}},
		{"Inventory", "Items", &model.SequenceOf[resolved]{}},
		{"Inventory", "Tags", &model.SetOf[resolved]{}},
		{"Inventory", "Location", &model.Choice[resolved]{}},
		{"Inventory", "Stock", &model.Set[resolved]{}},
		{"Events", "Payload", &model.OpenType[resolved]{}},
	}
	mods := loadCorpus(t)
	for _, tt := range tests {
		t.Run(tt.module+"."+tt.name, func(t *testing.T) {
			assert.IsType(t, tt.want, testutil.Definition(t, mods, tt.module, tt.name))
		})
	}
}

func TestTypeReferences(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  model.TypeRef[resolved]
	}{
		// imported names are bound to the defining module
		{"Item", "id", model.TypeRef[resolved]{Module: "Common-Types", Name: "Identifier"}},
		{"Item", "priority", model.TypeRef[resolved]{Module: "Common-Types", Name: "Priority"}},
		{"Stock", "item", model.TypeRef[resolved]{Module: "Inventory", Name: "Item"}},
		{"Stock", "where", model.TypeRef[resolved]{Module: "Inventory", Name: "Location"}},
	}
	for _, tt := range tests {
		t.Run(tt.name+"."+tt.field, func(t *testing.T) {
			f := getField(t, "Inventory", tt.name, tt.field)
			assert.Equal(t, &tt.want, f.Type)
		})
	}

	items := getType[*model.SequenceOf[resolved]](t, "Inventory", "Items")
	assert.Equal(t, &model.TypeRef[resolved]{Module: "Inventory", Name: "Item"}, items.Element)
}

func TestChoiceTagsAndExtension(t *testing.T) {
	loc := getType[*model.Choice[resolved]](t, "Inventory", "Location")
	require.Len(t, loc.Variants, 3)
	require.NotNil(t, loc.ExtensionAfter)
	assert.Equal(t, 1, *loc.ExtensionAfter)

	warehouse, ok := loc.Variants[0].Tag()
	assert.True(t, ok)
	assert.Equal(t, tag.ContextSpecific(5), warehouse)
	_, ok = loc.Variants[1].Tag()
	assert.False(t, ok)

	// qualified reference to a module that is not imported
	assert.Equal(t, &model.TypeRef[resolved]{Module: "Common-Types", Name: "Identifier"}, loc.Variants[2].Type)
}

func TestOpenType(t *testing.T) {
	payload := getType[*model.OpenType[resolved]](t, "Events", "Payload")
	assert.Equal(t, 3, payload.Len())
	assert.False(t, payload.IsExtensible())
	assert.Equal(t, 3, payload.StdVariantCount())

	var names []string
	for _, v := range payload.Variants() {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"created", "renamed", "removed"}, names)
	assert.Equal(t, &model.TypeRef[resolved]{Module: "Inventory", Name: "Item"}, payload.Variant(0).Type)
	assert.IsType(t, &model.Null[resolved]{}, payload.Variant(2).Type)

	f := getField(t, "Events", "Event", "payload")
	assert.Equal(t, "kind", f.Key)
	assert.Equal(t, &model.TypeRef[resolved]{Module: "Events", Name: "Payload"}, f.Type)
}
