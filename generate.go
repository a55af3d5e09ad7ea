package goasn1

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/golangsnmp/goasn1/internal/codegen"
	"github.com/golangsnmp/goasn1/internal/resolver"
	"github.com/golangsnmp/goasn1/internal/types"
)

// Generate emits Go source for mods as configured by cfg. A nil cfg
// generates every module into DefaultPackage. When cfg.Modules is set,
// only those modules and the modules they import are generated.
func Generate(mods []*Module, cfg *Config, opts ...Option) ([]GeneratedFile, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	c := *cfg
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	selected, err := selectModules(mods, c.Modules)
	if err != nil {
		return nil, err
	}

	header := c.Header
	if len(c.Formats) > 0 {
		line := "Formats: " + strings.Join(c.Formats, ", ")
		if header == "" {
			header = line
		} else {
			header = strings.TrimRight(header, "\n") + "\n" + line
		}
	}

	lc := applyOptions(opts)
	return codegen.Generate(selected, codegen.Options{
		Package: c.Package,
		Header:  header,
	}, lc.logger)
}

// selectModules keeps the named modules and their imports, in input
// order.
func selectModules(mods []*Module, names []string) ([]*Module, error) {
	if len(names) == 0 {
		return mods, nil
	}
	var errs []error
	for _, name := range names {
		if !slices.ContainsFunc(mods, func(m *Module) bool { return m.Name == name }) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrModuleNotFound, name))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	keep := resolver.ModuleClosure(mods, names)
	var out []*Module
	for _, m := range mods {
		if _, found := slices.BinarySearch(keep, m.Name); found {
			out = append(out, m)
		}
	}
	return out, nil
}

// WriteFiles writes generated files into dir, creating it if needed.
func WriteFiles(dir string, files []GeneratedFile, opts ...Option) error {
	lc := applyOptions(opts)
	log := types.Logger{L: lc.logger}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return err
		}
		log.Log(slog.LevelInfo, "wrote file",
			slog.String("module", f.Module),
			slog.String("path", path))
	}
	return nil
}
