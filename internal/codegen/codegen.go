// Package codegen emits Go source for resolved ASN.1 modules.
//
// Every type assignment becomes a Go type whose ReadASN1 and WriteASN1
// methods drive a codec.Reader or codec.Writer. Constraints are emitted as
// package variables next to the type, so generated field names never
// collide with constraint accessors.
package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"log/slog"
	"strings"
	"unicode"

	"github.com/golangsnmp/goasn1/internal/graph"
	"github.com/golangsnmp/goasn1/internal/types"
	"github.com/golangsnmp/goasn1/model"
)

type resolved = model.Resolved

// DefaultPackage is the package name used when Options.Package is empty.
const DefaultPackage = "asn1"

// ErrUnsupported is returned for constructs the generator cannot express.
var ErrUnsupported = errors.New("unsupported construct")

// Options controls generated output.
type Options struct {
	// Package is the Go package name of every file.
	Package string
	// Header is an extra comment emitted above the package clause, one
	// comment line per line of text.
	Header string
}

// File is the generated source for one module.
type File struct {
	// Name is the file name, derived from the module name.
	Name    string
	Module  string
	Content []byte
}

// program holds what every module generator needs to see.
type program struct {
	opts  Options
	names map[graph.Symbol]string
	defs  map[graph.Symbol]*model.Definition[resolved]
	types.Logger
}

// Generate emits one file per module, in input order. Modules without
// type assignments produce no file. All files share one Go package, so
// type names defined by more than one module are prefixed with their
// module name.
func Generate(mods []*model.Model[resolved], opts Options, logger *slog.Logger) ([]File, error) {
	if opts.Package == "" {
		opts.Package = DefaultPackage
	}
	p := &program{
		opts:   opts,
		names:  make(map[graph.Symbol]string),
		defs:   make(map[graph.Symbol]*model.Definition[resolved]),
		Logger: types.Logger{L: types.Component(logger, "codegen")},
	}
	p.index(mods)

	var files []File
	for _, mod := range mods {
		if len(mod.Definitions) == 0 {
			continue
		}
		src, err := p.module(mod)
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Name:    FileName(mod.Name),
			Module:  mod.Name,
			Content: src,
		})
		p.Log(slog.LevelDebug, "module generated",
			slog.String("module", mod.Name),
			slog.Int("definitions", len(mod.Definitions)))
	}
	return files, nil
}

// index assigns a Go name to every type assignment.
func (p *program) index(mods []*model.Model[resolved]) {
	count := make(map[string]int)
	for _, mod := range mods {
		for i := range mod.Definitions {
			count[GoName(mod.Definitions[i].Name)]++
		}
	}
	for _, mod := range mods {
		for i := range mod.Definitions {
			def := &mod.Definitions[i]
			sym := graph.Symbol{Module: mod.Name, Name: def.Name}
			name := GoName(def.Name)
			if count[name] > 1 {
				name = GoName(mod.Name) + name
			}
			p.names[sym] = name
			p.defs[sym] = def
		}
	}
}

func (p *program) module(mod *model.Model[resolved]) ([]byte, error) {
	g := &generator{program: p, mod: mod, seen: make(map[string]bool)}
	for i := range mod.Definitions {
		def := &mod.Definitions[i]
		name := p.names[graph.Symbol{Module: mod.Name, Name: def.Name}]
		g.printf("// %s is %s.%s.\n", name, mod.Name, def.Name)
		if err := g.definition(name, def.Type, def.Tagging); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", mod.Name, def.Name, err)
		}
		if err := g.flush(); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", mod.Name, def.Name, err)
		}
		if p.TraceEnabled() {
			p.Trace("definition generated",
				slog.String("module", mod.Name),
				slog.String("name", def.Name),
				slog.String("type", name))
		}
	}

	body := g.buf.String()
	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by asn1go from %s. DO NOT EDIT.\n", mod.Name)
	if p.opts.Header != "" {
		fmt.Fprintln(&out, "//")
		for _, line := range strings.Split(strings.TrimRight(p.opts.Header, "\n"), "\n") {
			fmt.Fprintf(&out, "// %s\n", line)
		}
	}
	fmt.Fprintf(&out, "\npackage %s\n\n", p.opts.Package)

	var imports []string
	if strings.Contains(body, "codec.") {
		imports = append(imports, `"github.com/golangsnmp/goasn1/codec"`)
	}
	if strings.Contains(body, "tag.") {
		imports = append(imports, `"github.com/golangsnmp/goasn1/tag"`)
	}
	if len(imports) > 0 {
		fmt.Fprintf(&out, "import (\n%s\n)\n\n", strings.Join(imports, "\n"))
	}
	out.WriteString(body)

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%s: format generated source: %w", mod.Name, err)
	}
	return src, nil
}

// FileName returns the output file name for a module: lower case words
// joined by underscores, e.g. "sample_module.go" for "Sample-Module".
func FileName(module string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range module {
		switch {
		case r == '-' || r == '_' || r == '.':
			b.WriteByte('_')
			prevLower = false
			continue
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return strings.ReplaceAll(b.String(), "__", "_") + ".go"
}

// GoName returns the exported Go identifier for an ASN.1 name: hyphen
// separated words are joined and each word is capitalized.
func GoName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '-' || r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lowerFirst(name string) string {
	for i, r := range name {
		return string(unicode.ToLower(r)) + name[i+len(string(r)):]
	}
	return name
}
