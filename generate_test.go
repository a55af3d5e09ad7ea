package goasn1

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveAll(t *testing.T, src string) []*Module {
	t.Helper()
	parsed, err := Parse([]byte(src))
	require.NoError(t, err)
	mods, err := Resolve(parsed)
	require.NoError(t, err)
	return mods
}

func fileNames(files []GeneratedFile) []string {
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names
}

func TestGenerate(t *testing.T) {
	mods := resolveAll(t, sharedSource+appSource+loneSource)

	files, err := Generate(mods, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared.go", "app.go", "lone.go"}, fileNames(files))
	for _, f := range files {
		assert.Contains(t, string(f.Content), "package "+DefaultPackage+"\n")
		assert.NotContains(t, string(f.Content), "Formats:")
	}

	app := files[1]
	assert.Equal(t, "App", app.Module)
	assert.Contains(t, string(app.Content), "type Person struct")
	assert.Contains(t, string(app.Content), "ColorGreen")
}

func TestGenerateSelectsModules(t *testing.T) {
	mods := resolveAll(t, sharedSource+appSource+loneSource)

	files, err := Generate(mods, &Config{
		Package: "sample",
		Modules: []string{"App"},
		Formats: []string{"uper", "tlv"},
		Header:  "Schema version 3.\n",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"shared.go", "app.go"}, fileNames(files))

	content := string(files[0].Content)
	assert.Contains(t, content, "package sample\n")
	assert.Contains(t, content, "// Schema version 3.\n// Formats: uper, tlv\n")
}

func TestGenerateErrors(t *testing.T) {
	mods := resolveAll(t, loneSource)

	_, err := Generate(mods, &Config{Modules: []string{"Lone", "Nope", "Other"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModuleNotFound)
	assert.Contains(t, err.Error(), "Nope")
	assert.Contains(t, err.Error(), "Other")

	_, err = Generate(mods, &Config{Package: "9lives"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Generate(mods, &Config{Formats: []string{"xer"}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWriteFiles(t *testing.T) {
	mods := resolveAll(t, sharedSource+loneSource)
	files, err := Generate(mods, &Config{Package: "sample"})
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	dir := filepath.Join(t.TempDir(), "gen", "sample")
	require.NoError(t, WriteFiles(dir, files, WithLogger(logger)))

	for _, f := range files {
		got, err := os.ReadFile(filepath.Join(dir, f.Name))
		require.NoError(t, err)
		assert.Equal(t, f.Content, got)
	}
	assert.Contains(t, buf.String(), "wrote file")
	assert.Contains(t, buf.String(), "module=Shared")
}
