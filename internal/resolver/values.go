package resolver

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/golangsnmp/goasn1/internal/graph"
	"github.com/golangsnmp/goasn1/internal/types"
	"github.com/golangsnmp/goasn1/model"
)

// resolveValues resolves value assignments in dependency order, so that
// "a INTEGER ::= b" sees the value of b. Members of a reference cycle get
// a cycle failure. Failures are reported when an assignment using the
// value is resolved, not here.
func resolveValues(ctx *resolverContext) {
	g := graph.New()
	for sym, e := range ctx.values {
		g.AddNode(sym)
		if ref, ok := e.assign.Value.Symbol(); ok {
			if target, found := ctx.lookup(sym.Module, ref, ctx.hasValue); found {
				g.AddEdge(sym, target)
			}
		}
	}

	order, cycles := g.ResolutionOrder()
	for _, cycle := range cycles {
		names := make([]string, len(cycle))
		for i, sym := range cycle {
			names[i] = sym.String()
		}
		for _, sym := range cycle {
			ctx.values[sym].failure = &model.ResolveError{
				Code:   types.CodeValueCycle,
				Name:   sym.Name,
				Detail: strings.Join(names, " -> "),
			}
		}
		ctx.Log(slog.LevelWarn, "value cycle", slog.String("members", strings.Join(names, ", ")))
	}

	for _, sym := range order {
		resolveValueEntry(ctx, sym)
	}
	if ctx.TraceEnabled() {
		ctx.Trace("values resolved", slog.Int("count", len(order)), slog.Int("cycles", len(cycles)))
	}
}

func resolveValueEntry(ctx *resolverContext, sym graph.Symbol) {
	e := ctx.values[sym]
	if lit, ok := e.assign.Value.Literal(); ok {
		e.value = lit
		return
	}
	ref, _ := e.assign.Value.Symbol()
	target, found := ctx.lookup(sym.Module, ref, ctx.hasValue)
	if !found {
		if lit, ok := ctx.enumLabel(sym.Module, ref); ok {
			e.value = lit
			return
		}
		e.failure = model.SymbolNotFound(ref)
		return
	}
	t := ctx.values[target]
	e.value, e.failure = t.value, t.failure
}

// enumLabel reports whether label names an item of an ENUMERATED type
// assignment visible from module.
func (ctx *resolverContext) enumLabel(module, label string) (model.Literal, bool) {
	if _, ok := ctx.enumLabels[module][label]; ok {
		return model.IdentifierLiteral(label), true
	}
	var sources []string
	for _, from := range ctx.imports[module] {
		if !slices.Contains(sources, from) {
			sources = append(sources, from)
		}
	}
	slices.Sort(sources)
	for _, from := range sources {
		if sym, ok := ctx.enumLabels[from][label]; ok && ctx.imports[module][sym.Name] == from {
			return model.IdentifierLiteral(label), true
		}
	}
	return model.Literal{}, false
}

// scope is a module's view of the symbol table. It implements
// model.Resolver.
type scope struct {
	ctx    *resolverContext
	module string
}

var _ model.Resolver = (*scope)(nil)

func (s *scope) value(symbol string) (model.Literal, error) {
	sym, ok := s.ctx.lookup(s.module, symbol, s.ctx.hasValue)
	if !ok {
		if lit, ok := s.ctx.enumLabel(s.module, symbol); ok {
			return lit, nil
		}
		return model.Literal{}, model.SymbolNotFound(symbol)
	}
	e := s.ctx.values[sym]
	if e.failure != nil {
		return model.Literal{}, e.failure
	}
	return e.value, nil
}

func (s *scope) integer(symbol string) (int64, error) {
	lit, err := s.value(symbol)
	if err != nil {
		return 0, err
	}
	if lit.Kind != model.LiteralInteger {
		return 0, &model.ResolveError{
			Code:   types.CodeSymbolNotFound,
			Name:   symbol,
			Detail: fmt.Sprintf("%s value is not an integer", lit.Kind),
		}
	}
	return lit.Integer, nil
}

func (s *scope) ResolveSize(symbol string) (uint64, error) {
	n, err := s.integer(symbol)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &model.ResolveError{Code: types.CodeSymbolNotFound, Name: symbol, Detail: "negative size"}
	}
	return uint64(n), nil
}

func (s *scope) ResolveRange(symbol string) (int64, error) {
	return s.integer(symbol)
}

func (s *scope) ResolveConst(symbol string) (model.Literal, error) {
	return s.value(symbol)
}

func (s *scope) ResolveTypeRef(ref *model.TypeRef[model.Unresolved]) (model.Type[model.Resolved], error) {
	var (
		sym graph.Symbol
		ok  bool
	)
	if ref.Module != "" {
		sym = graph.Symbol{Module: ref.Module, Name: ref.Name}
		ok = s.ctx.hasType(sym)
	} else {
		sym, ok = s.ctx.lookup(s.module, ref.Name, s.ctx.hasType)
	}
	if !ok {
		return nil, model.TypeNotFound(ref.Name)
	}
	return &model.TypeRef[model.Resolved]{Module: sym.Module, Name: sym.Name}, nil
}
