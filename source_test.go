package goasn1

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readFound(t *testing.T, src Source, name string) (string, string) {
	t.Helper()
	r, err := src.Find(name)
	require.NoError(t, err)
	defer r.Reader.Close()
	b, err := io.ReadAll(r.Reader)
	require.NoError(t, err)
	return string(b), r.Path
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"Shared.asn":     sharedSource,
		"App.asn1":       appSource,
		"Lone":           loneSource,
		"notes.md":       "# not asn.1",
		"nested/Sub.asn": "Sub DEFINITIONS ::= BEGIN END",
	})

	src, err := Dir(dir)
	require.NoError(t, err)

	names, err := src.ListModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"App", "Lone", "Shared"}, names)

	content, path := readFound(t, src, "Shared")
	assert.Equal(t, sharedSource, content)
	assert.Equal(t, filepath.Join(dir, "Shared.asn"), path)

	_, err = src.Find("Sub")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = src.Find("notes")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDirErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.asn")
	writeFiles(t, dir, map[string]string{"file.asn": loneSource})

	_, err := Dir(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = Dir(file)
	assert.ErrorIs(t, err, os.ErrInvalid)

	assert.Panics(t, func() { MustDir(file) })
	assert.Panics(t, func() { MustDirTree(file) })
	assert.NotPanics(t, func() { MustDir(dir) })
}

func TestDirTree(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a/Shared.asn":  sharedSource,
		"b/c/App.asn":   appSource,
		"z/Shared.asn":  "ignored",
		"b/readme.json": "{}",
	})

	src, err := DirTree(dir)
	require.NoError(t, err)

	names, err := src.ListModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"App", "Shared"}, names)

	content, path := readFound(t, src, "Shared")
	assert.Equal(t, sharedSource, content)
	assert.Equal(t, filepath.Join(dir, "a", "Shared.asn"), path)

	_, path = readFound(t, src, "App")
	assert.Equal(t, filepath.Join(dir, "b", "c", "App.asn"), path)
}

func TestFS(t *testing.T) {
	fsys := fstest.MapFS{
		"asn1/Shared.asn": {Data: []byte(sharedSource)},
		"asn1/App.ASN":    {Data: []byte(appSource)},
		"asn1/other.go":   {Data: []byte("package other")},
	}
	src := FS("embedded", fsys)

	names, err := src.ListModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"App", "Shared"}, names)

	content, path := readFound(t, src, "App")
	assert.Equal(t, appSource, content)
	assert.Equal(t, "embedded:asn1/App.ASN", path)

	_, err = src.Find("other")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWithExtensions(t *testing.T) {
	fsys := fstest.MapFS{
		"Shared.asn": {Data: []byte(sharedSource)},
		"App.my":     {Data: []byte(appSource)},
	}
	src := FS("x", fsys, WithExtensions(".my"))
	names, err := src.ListModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"App"}, names)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"one/Shared.schema": sharedSource,
		"two/Shared.asn":    "second",
		"App.asn":           appSource,
	})
	src := Files([]string{
		filepath.Join(dir, "one", "Shared.schema"),
		filepath.Join(dir, "two", "Shared.asn"),
		filepath.Join(dir, "App.asn"),
	})

	names, err := src.ListModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"App", "Shared"}, names)

	content, _ := readFound(t, src, "Shared")
	assert.Equal(t, sharedSource, content)

	_, err = src.Find("Nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMulti(t *testing.T) {
	first := FS("first", fstest.MapFS{
		"Shared.asn": {Data: []byte(sharedSource)},
	})
	second := FS("second", fstest.MapFS{
		"Shared.asn": {Data: []byte("shadowed")},
		"App.asn":    {Data: []byte(appSource)},
	})
	src := Multi(first, second)

	names, err := src.ListModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"App", "Shared"}, names)

	_, path := readFound(t, src, "Shared")
	assert.Equal(t, "first:Shared.asn", path)
	_, path = readFound(t, src, "App")
	assert.Equal(t, "second:App.asn", path)

	_, err = src.Find("Missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	names, err = Multi().ListModules()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestModuleNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"Sample-Module", "Sample-Module"},
		{"Sample-Module.asn", "Sample-Module"},
		{"dir/Sample-Module.asn1", "Sample-Module"},
		{"/abs/path/App.txt", "App"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, moduleNameFromPath(tt.path))
		})
	}
}
