package goasn1

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
package: sample
output: ./gen
formats: [uper, tlv]
modules:
  - App
sources: [./asn1, ./vendor/asn1]
header: |
  Schema version 3.
`))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Package: "sample",
		Output:  "./gen",
		Formats: []string{"uper", "tlv"},
		Modules: []string{"App"},
		Sources: []string{"./asn1", "./vendor/asn1"},
		Header:  "Schema version 3.\n",
	}, cfg)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultPackage, cfg.Package)
	assert.Empty(t, cfg.Formats)

	cfg, err = LoadConfig(strings.NewReader("output: out\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPackage, cfg.Package)
	assert.Equal(t, "out", cfg.Output)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "pakage: sample\n", "pakage"},
		{"bad package", "package: my-pkg\n", `package "my-pkg"`},
		{"keyword package", "package: func\n", `package "func"`},
		{"unknown format", "formats: [per]\n", `unknown format "per"`},
		{"malformed", "formats: {\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "asn1go.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package: sample\n"), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", cfg.Package)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("formats: [ber]\n"), 0o644))
	_, err = LoadConfigFile(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), bad)

	_, err = LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
