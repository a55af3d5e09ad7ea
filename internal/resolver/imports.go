package resolver

import (
	"fmt"
	"log/slog"

	"github.com/golangsnmp/goasn1/internal/graph"
	"github.com/golangsnmp/goasn1/internal/types"
	"github.com/golangsnmp/goasn1/model"
)

// resolveImports binds every imported symbol to its source module. An
// import whose module or symbol is missing is reported and left unbound,
// so only the assignments that use it fail later.
func resolveImports(ctx *resolverContext) {
	for _, mod := range ctx.modules {
		if ctx.moduleIndex[mod.Name] != mod {
			continue
		}
		bound := make(map[string]string)
		ctx.imports[mod.Name] = bound

		for _, imp := range mod.Imports {
			if _, ok := ctx.moduleIndex[imp.Module]; !ok {
				ctx.fail(mod.Name, "", &model.ResolveError{
					Code:   types.CodeImportNotFound,
					Name:   imp.Module,
					Detail: "module",
				})
				continue
			}
			for _, name := range imp.Symbols {
				sym := graph.Symbol{Module: imp.Module, Name: name}
				if !ctx.hasType(sym) && !ctx.hasValue(sym) {
					ctx.fail(mod.Name, "", &model.ResolveError{
						Code:   types.CodeImportNotFound,
						Name:   name,
						Detail: fmt.Sprintf("from %s", imp.Module),
					})
					continue
				}
				bound[name] = imp.Module
			}
			if ctx.TraceEnabled() {
				ctx.Trace("imports resolved",
					slog.String("module", mod.Name),
					slog.String("from", imp.Module),
					slog.Int("symbols", len(imp.Symbols)))
			}
		}
	}
}

// ModuleClosure returns the named modules plus every module they import,
// directly or transitively, in name order. Unknown names are kept.
func ModuleClosure[RS model.State](mods []*model.Model[RS], names []string) []string {
	g := graph.New()
	for _, mod := range mods {
		g.AddNode(graph.ModuleSymbol(mod.Name))
		for _, imp := range mod.Imports {
			g.AddEdge(graph.ModuleSymbol(mod.Name), graph.ModuleSymbol(imp.Module))
		}
	}
	roots := make([]graph.Symbol, len(names))
	for i, name := range names {
		roots[i] = graph.ModuleSymbol(name)
	}
	var out []string
	for _, sym := range g.Reachable(roots...) {
		out = append(out, sym.Module)
	}
	return out
}
