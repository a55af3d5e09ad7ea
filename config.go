package goasn1

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/golangsnmp/goasn1/internal/codegen"
)

// DefaultPackage is the Go package name used when a Config names none.
const DefaultPackage = codegen.DefaultPackage

// Formats are the wire format names a Config may list.
var Formats = []string{"uper", "tlv"}

// ErrInvalidConfig is returned by Validate and the config loaders.
var ErrInvalidConfig = errors.New("invalid config")

// Config controls code generation. It is usually read from a YAML file:
//
//	package: sample
//	output: ./gen
//	formats: [uper, tlv]
//	modules: [Sample-Module]
//	sources: [./asn1]
//	header: |
//	  Schema version 3.
type Config struct {
	// Package is the Go package name of the generated files.
	Package string `yaml:"package"`
	// Output is the directory generated files are written to.
	Output string `yaml:"output"`
	// Formats lists the wire formats the generated code is meant for. It
	// only shows up in the file comment: every generated type works with
	// every codec format.
	Formats []string `yaml:"formats"`
	// Modules restricts generation to these modules and the modules they
	// import. Empty means all.
	Modules []string `yaml:"modules"`
	// Sources are directories searched recursively for ASN.1 files.
	Sources []string `yaml:"sources"`
	// Header is an extra comment for the top of every generated file.
	Header string `yaml:"header"`
}

// LoadConfig reads a YAML config. Unknown keys are an error.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads a YAML config from path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Package == "" {
		c.Package = DefaultPackage
	}
}

// Validate checks the package name and format names.
func (c *Config) Validate() error {
	if c.Package != "" && !token.IsIdentifier(c.Package) {
		return fmt.Errorf("%w: package %q is not a Go identifier", ErrInvalidConfig, c.Package)
	}
	for _, f := range c.Formats {
		if !slices.Contains(Formats, f) {
			return fmt.Errorf("%w: unknown format %q (want one of %v)", ErrInvalidConfig, f, Formats)
		}
	}
	return nil
}
