// Package resolver provides multi-phase resolution of ASN.1 modules.
//
// Resolution turns parsed modules into a model where every size, range,
// constant and type reference is concrete.
//
// # Resolution Phases
//
//  1. Registration: index modules, type assignments and value assignments
//  2. Imports: bind imported symbols to the modules that define them
//  3. Values: order value assignments by dependency and resolve them
//  4. Types: resolve every type assignment through a per-module scope
//
// Failures are collected rather than fatal: one broken assignment does not
// stop the others from resolving.
//
// # Usage
//
//	resolved, err := resolver.Resolve(modules, logger)
package resolver

import (
	"errors"
	"log/slog"

	"github.com/golangsnmp/goasn1/internal/types"
	"github.com/golangsnmp/goasn1/model"
)

type resolver struct {
	types.Logger
}

// Resolve resolves parsed modules. The returned slice holds one resolved
// model per distinct module name, in input order, containing every
// assignment that resolved. The error joins every failure.
// If logger is nil, logging is disabled (zero overhead).
func Resolve(mods []*model.Model[model.Unresolved], logger *slog.Logger) ([]*model.Model[model.Resolved], error) {
	r := &resolver{Logger: types.Logger{L: logger}}
	return r.resolve(mods)
}

func (r *resolver) resolve(mods []*model.Model[model.Unresolved]) ([]*model.Model[model.Resolved], error) {
	ctx := newResolverContext(mods, r.L)

	r.Log(slog.LevelDebug, "starting phase", slog.String("phase", "register"))
	registerModules(ctx)
	r.Log(slog.LevelDebug, "phase complete", slog.String("phase", "register"),
		slog.Int("modules", len(ctx.moduleIndex)),
		slog.Int("types", len(ctx.typeIndex)),
		slog.Int("values", len(ctx.values)))

	r.Log(slog.LevelDebug, "starting phase", slog.String("phase", "imports"))
	resolveImports(ctx)

	r.Log(slog.LevelDebug, "starting phase", slog.String("phase", "values"))
	resolveValues(ctx)

	r.Log(slog.LevelDebug, "starting phase", slog.String("phase", "types"))
	out := resolveTypes(ctx)

	if len(ctx.errs) > 0 {
		r.Log(slog.LevelWarn, "resolution errors", slog.Int("count", len(ctx.errs)))
	}
	r.Log(slog.LevelInfo, "resolution complete",
		slog.Int("modules", len(out)),
		slog.Int("errors", len(ctx.errs)))

	return out, errors.Join(ctx.errs...)
}
