package resolver

import (
	"log/slog"

	"github.com/golangsnmp/goasn1/model"
)

// resolveTypes resolves every module through its scope. Assignments are
// independent: a failure drops only the failing assignment.
func resolveTypes(ctx *resolverContext) []*model.Model[model.Resolved] {
	out := make([]*model.Model[model.Resolved], 0, len(ctx.modules))
	for _, mod := range ctx.modules {
		if ctx.moduleIndex[mod.Name] != mod {
			continue
		}
		resolved, err := model.ResolveModel(mod, &scope{ctx: ctx, module: mod.Name})
		if err != nil {
			ctx.errs = append(ctx.errs, err)
		}
		out = append(out, resolved)
		ctx.Log(slog.LevelDebug, "module resolved",
			slog.String("module", mod.Name),
			slog.Int("types", len(resolved.Definitions)),
			slog.Int("values", len(resolved.Values)))
	}
	return out
}
