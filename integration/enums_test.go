package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/goasn1/internal/testutil"
	"github.com/golangsnmp/goasn1/model"
)

func TestEnumerated(t *testing.T) {
	tests := []struct {
		module string
		name   string
		want   string
	}{
		{"Common-Types", "Priority", "{ low, normal, high, ..., critical }"},
		{"Common-Types", "Status", "{ active(1), suspended(5), closed(9) }"},
		{"Events", "EventKind", "{ created, renamed, removed }"},
	}
	for _, tt := range tests {
		t.Run(tt.module+"."+tt.name, func(t *testing.T) {
			enum := getType[*model.Enumerated[resolved]](t, tt.module, tt.name)
			assert.Equal(t, tt.want, testutil.FormatEnum(enum))
		})
	}
}

func TestEnumeratedIndex(t *testing.T) {
	enum := getType[*model.Enumerated[resolved]](t, "Common-Types", "Priority")
	require.NotNil(t, enum.ExtensionAfter)
	assert.Equal(t, 2, *enum.ExtensionAfter)

	idx, ok := enum.Index("critical")
	assert.True(t, ok)
	assert.Equal(t, 3, idx)
	_, ok = enum.Index("unknown")
	assert.False(t, ok)
}

func TestNamedBits(t *testing.T) {
	bits := getType[*model.BitString[resolved]](t, "Common-Types", "Flags")
	assert.Equal(t, []model.NamedNumber{
		{Name: "urgent", Value: 0},
		{Name: "confidential", Value: 1},
	}, bits.Named)
}
