package goasn1

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColonSemantic(t *testing.T) {
	tests := []struct {
		value string
		op    pathOp
		dirs  []string
	}{
		{"/a:/b", pathReplace, []string{"/a", "/b"}},
		{":/a", pathAppend, []string{"/a"}},
		{"/a:", pathPrepend, []string{"/a"}},
		{"/a::/b", pathReplace, []string{"/a", "/b"}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			op, dirs := parseColonSemantic(tt.value)
			assert.Equal(t, tt.op, op)
			assert.Equal(t, tt.dirs, dirs)
		})
	}
}

func TestApplyOp(t *testing.T) {
	current := []string{"/default"}
	assert.Equal(t, []string{"/x"}, applyOp(pathReplace, []string{"/x"}, current))
	assert.Equal(t, []string{"/default", "/x"}, applyOp(pathAppend, []string{"/x"}, current))
	assert.Equal(t, []string{"/x", "/default"}, applyOp(pathPrepend, []string{"/x"}, current))
}

func TestSearchDirs(t *testing.T) {
	one := t.TempDir()
	two := t.TempDir()
	missing := filepath.Join(one, "missing")

	got := searchDirs(strings.Join([]string{one, missing, two, one}, string(os.PathListSeparator)))
	assert.Equal(t, []string{one, two}, got)
}

func TestSearchPath(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"std/Shared.asn": sharedSource,
		"App.asn":        appSource,
	})
	t.Setenv(PathEnv, dir)

	mods, err := LoadModules(context.Background(), []string{"App"}, SearchPath())
	require.NoError(t, err)
	assert.Equal(t, []string{"App", "Shared"}, modNames(mods))
}
