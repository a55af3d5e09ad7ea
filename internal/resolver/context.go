package resolver

import (
	"fmt"
	"log/slog"

	"github.com/golangsnmp/goasn1/internal/graph"
	"github.com/golangsnmp/goasn1/internal/types"
	"github.com/golangsnmp/goasn1/model"
)

type unresolved = model.Unresolved

// valueEntry is a value assignment and, once the values phase has run,
// its resolved literal or the reason it has none.
type valueEntry struct {
	assign  *model.ValueAssignment[unresolved]
	value   model.Literal
	failure error
}

// resolverContext holds indices and working state for all phases.
type resolverContext struct {
	modules []*model.Model[unresolved]

	// moduleIndex maps module name to its first parsed definition.
	moduleIndex map[string]*model.Model[unresolved]

	// typeIndex and values are keyed by defining module and name.
	typeIndex map[graph.Symbol]*model.Definition[unresolved]
	values    map[graph.Symbol]*valueEntry

	// enumLabels maps module -> label -> defining symbol, for DEFAULT
	// values naming an item of a referenced ENUMERATED type.
	enumLabels map[string]map[string]graph.Symbol

	// imports maps module -> imported symbol -> source module.
	imports map[string]map[string]string

	errs []error

	types.Logger
}

func newResolverContext(mods []*model.Model[unresolved], logger *slog.Logger) *resolverContext {
	return &resolverContext{
		modules:     mods,
		moduleIndex: make(map[string]*model.Model[unresolved]),
		typeIndex:   make(map[graph.Symbol]*model.Definition[unresolved]),
		values:      make(map[graph.Symbol]*valueEntry),
		enumLabels:  make(map[string]map[string]graph.Symbol),
		imports:     make(map[string]map[string]string),
		Logger:      types.Logger{L: logger},
	}
}

func (ctx *resolverContext) fail(module, name string, err error) {
	if name == "" {
		ctx.errs = append(ctx.errs, fmt.Errorf("%s: %w", module, err))
		return
	}
	ctx.errs = append(ctx.errs, fmt.Errorf("%s.%s: %w", module, name, err))
}

// lookup finds the defining symbol of name as seen from module: a local
// assignment first, then an import. defined reports whether the symbol is
// in the index.
func (ctx *resolverContext) lookup(module, name string, defined func(graph.Symbol) bool) (graph.Symbol, bool) {
	local := graph.Symbol{Module: module, Name: name}
	if defined(local) {
		return local, true
	}
	if from, ok := ctx.imports[module][name]; ok {
		sym := graph.Symbol{Module: from, Name: name}
		if defined(sym) {
			return sym, true
		}
	}
	return graph.Symbol{}, false
}

func (ctx *resolverContext) hasValue(sym graph.Symbol) bool {
	_, ok := ctx.values[sym]
	return ok
}

func (ctx *resolverContext) hasType(sym graph.Symbol) bool {
	_, ok := ctx.typeIndex[sym]
	return ok
}
