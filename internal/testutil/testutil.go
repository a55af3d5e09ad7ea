// Package testutil provides helpers shared by the parser, resolver and
// code generator tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/goasn1/internal/parser"
	"github.com/golangsnmp/goasn1/internal/resolver"
	"github.com/golangsnmp/goasn1/model"
)

// Parse parses each source, failing the test on a syntax error.
func Parse(t testing.TB, sources ...string) []*model.Model[model.Unresolved] {
	t.Helper()
	var mods []*model.Model[model.Unresolved]
	for i, src := range sources {
		parsed, err := parser.New(nil).Parse([]byte(src))
		require.NoError(t, err, "source %d", i)
		mods = append(mods, parsed...)
	}
	return mods
}

// Resolve parses the sources and resolves them together, failing the
// test on any error.
func Resolve(t testing.TB, sources ...string) []*model.Model[model.Resolved] {
	t.Helper()
	out, err := resolver.Resolve(Parse(t, sources...), nil)
	require.NoError(t, err)
	return out
}

// Module returns the module called name.
func Module[RS model.State](t testing.TB, mods []*model.Model[RS], name string) *model.Model[RS] {
	t.Helper()
	for _, m := range mods {
		if m.Name == name {
			return m
		}
	}
	require.FailNow(t, fmt.Sprintf("module %s not found", name))
	return nil
}

// Definition returns the type of the assignment module.name.
func Definition[RS model.State](t testing.TB, mods []*model.Model[RS], module, name string) model.Type[RS] {
	t.Helper()
	def, ok := Module(t, mods, module).Definition(name)
	require.True(t, ok, "%s.%s not found", module, name)
	return def.Type
}

// As asserts that v holds a T and returns it.
func As[T any](t testing.TB, v any) T {
	t.Helper()
	got, ok := v.(T)
	require.True(t, ok, "got %T, want %T", v, got)
	return got
}
