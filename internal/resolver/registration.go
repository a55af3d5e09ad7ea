package resolver

import (
	"log/slog"

	"github.com/golangsnmp/goasn1/internal/graph"
	"github.com/golangsnmp/goasn1/internal/types"
	"github.com/golangsnmp/goasn1/model"
)

// registerModules indexes modules, type assignments and value assignments.
// A module name seen twice keeps its first definition.
func registerModules(ctx *resolverContext) {
	for _, mod := range ctx.modules {
		if _, exists := ctx.moduleIndex[mod.Name]; exists {
			ctx.fail(mod.Name, "", &model.ResolveError{Code: types.CodeDuplicateDefinition, Name: mod.Name, Detail: "module"})
			continue
		}
		ctx.moduleIndex[mod.Name] = mod

		for i := range mod.Definitions {
			def := &mod.Definitions[i]
			sym := graph.Symbol{Module: mod.Name, Name: def.Name}
			if ctx.hasType(sym) {
				ctx.fail(mod.Name, def.Name, &model.ResolveError{Code: types.CodeDuplicateDefinition, Name: def.Name})
				continue
			}
			ctx.typeIndex[sym] = def
			if enum, ok := def.Type.(*model.Enumerated[unresolved]); ok {
				registerEnumLabels(ctx, mod.Name, sym, enum)
			}
		}

		for i := range mod.Values {
			v := &mod.Values[i]
			sym := graph.Symbol{Module: mod.Name, Name: v.Name}
			if ctx.hasValue(sym) {
				ctx.fail(mod.Name, v.Name, &model.ResolveError{Code: types.CodeDuplicateDefinition, Name: v.Name})
				continue
			}
			ctx.values[sym] = &valueEntry{assign: v}
		}

		if ctx.TraceEnabled() {
			ctx.Trace("registered module",
				slog.String("module", mod.Name),
				slog.Int("types", len(mod.Definitions)),
				slog.Int("values", len(mod.Values)))
		}
	}
}

func registerEnumLabels(ctx *resolverContext, module string, sym graph.Symbol, enum *model.Enumerated[unresolved]) {
	labels := ctx.enumLabels[module]
	if labels == nil {
		labels = make(map[string]graph.Symbol)
		ctx.enumLabels[module] = labels
	}
	for _, item := range enum.Items {
		if _, taken := labels[item.Name]; !taken {
			labels[item.Name] = sym
		}
	}
}
