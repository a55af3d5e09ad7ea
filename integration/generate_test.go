package integration

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/goasn1"
	"github.com/golangsnmp/goasn1/internal/testutil"
)

// declaredTypes returns the names of the types declared in a Go file.
func declaredTypes(t *testing.T, name string, src []byte) []string {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), name, src, 0)
	require.NoError(t, err, "generated %s does not parse:\n%s", name, src)

	var names []string
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			names = append(names, spec.(*ast.TypeSpec).Name.Name)
		}
	}
	return names
}

func TestGenerateCorpus(t *testing.T) {
	files, err := goasn1.Generate(loadCorpus(t), &goasn1.Config{
		Package: "inventory",
		Formats: []string{"uper", "tlv"},
	})
	require.NoError(t, err)
	require.Len(t, files, 3)

	types := map[string][]string{}
	for _, f := range files {
		types[f.Name] = declaredTypes(t, f.Name, f.Content)
	}
	assert.Equal(t, map[string][]string{
		"common_types.go": {"Name", "Identifier", "Percent", "Priority", "Status", "Flags"},
		"events.go":       {"EventKind", "Payload", "Event", "Subscription"},
		"inventory.go":    {"Item", "Items", "Tags", "Location", "Stock"},
	}, types)

	events := testutil.Squash(files[1].Content)
	assert.Contains(t, events, "PayloadKnown bool")
	assert.Contains(t, events, "ReadValueByKey(r, uint64(v.Kind))")
	assert.Contains(t, events, "Value: PriorityHigh")
	assert.Contains(t, events, `Value: "inbox"`)
}

func TestGenerateCorpusSubset(t *testing.T) {
	files, err := goasn1.Generate(loadCorpus(t), &goasn1.Config{Modules: []string{"Inventory"}})
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"common_types.go", "inventory.go"}, names)

	dir := t.TempDir()
	require.NoError(t, goasn1.WriteFiles(dir, files))
	for _, name := range names {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err)
	}
}
