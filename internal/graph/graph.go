// Package graph provides the dependency graph used to order value
// assignments and modules during resolution.
package graph

import (
	"cmp"
	"slices"
)

// Symbol identifies a node: an assignment in a module, or a whole module
// when Name is empty.
type Symbol struct {
	Module string
	Name   string
}

// ModuleSymbol returns the node standing for a whole module.
func ModuleSymbol(module string) Symbol {
	return Symbol{Module: module}
}

func (s Symbol) String() string {
	if s.Name == "" {
		return s.Module
	}
	return s.Module + "." + s.Name
}

func compareSymbols(a, b Symbol) int {
	if c := cmp.Compare(a.Module, b.Module); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Graph is a dependency graph of symbols with forward edges.
type Graph struct {
	nodes map[Symbol]struct{}
	edges map[Symbol][]Symbol
}

// New returns a graph with no nodes or edges.
func New() *Graph {
	return &Graph{
		nodes: make(map[Symbol]struct{}),
		edges: make(map[Symbol][]Symbol),
	}
}

// AddNode registers a symbol. Duplicate calls are no-ops.
func (g *Graph) AddNode(sym Symbol) {
	g.nodes[sym] = struct{}{}
}

// AddEdge records that from depends on to, meaning to must be resolved
// before from. Missing nodes are created implicitly and duplicate edges
// are ignored.
func (g *Graph) AddEdge(from, to Symbol) {
	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}

	if slices.Contains(g.edges[from], to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
}

// Dependencies returns the symbols that sym depends on.
func (g *Graph) Dependencies(sym Symbol) []Symbol {
	return g.edges[sym]
}

// HasNode reports whether the symbol exists in the graph.
func (g *Graph) HasNode(sym Symbol) bool {
	_, ok := g.nodes[sym]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// ResolutionOrder returns symbols ordered so that dependencies come before
// dependents, using Tarjan's algorithm. Strongly connected components with
// more than one node, and nodes with a self-loop, are returned as cycles
// and left out of the order. The result is deterministic: roots are
// visited in symbol order and each cycle is sorted.
func (g *Graph) ResolutionOrder() (order []Symbol, cycles [][]Symbol) {
	var (
		index    int
		stack    []Symbol
		onStack  = make(map[Symbol]bool)
		indices  = make(map[Symbol]int)
		lowlinks = make(map[Symbol]int)
	)

	var strongConnect func(sym Symbol)
	strongConnect = func(sym Symbol) {
		indices[sym] = index
		lowlinks[sym] = index
		index++
		stack = append(stack, sym)
		onStack[sym] = true

		for _, dep := range g.edges[sym] {
			if _, visited := indices[dep]; !visited {
				strongConnect(dep)
				lowlinks[sym] = min(lowlinks[sym], lowlinks[dep])
			} else if onStack[dep] {
				lowlinks[sym] = min(lowlinks[sym], indices[dep])
			}
		}

		if lowlinks[sym] != indices[sym] {
			return
		}
		var scc []Symbol
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			scc = append(scc, w)
			if w == sym {
				break
			}
		}
		if len(scc) > 1 || slices.Contains(g.edges[sym], sym) {
			slices.SortFunc(scc, compareSymbols)
			cycles = append(cycles, scc)
			return
		}
		order = append(order, sym)
	}

	for _, sym := range g.sorted() {
		if _, visited := indices[sym]; !visited {
			strongConnect(sym)
		}
	}
	return order, cycles
}

// HasCycles reports whether the graph contains any cycles.
func (g *Graph) HasCycles() bool {
	_, cycles := g.ResolutionOrder()
	return len(cycles) > 0
}

// Reachable returns from and every symbol it transitively depends on, in
// symbol order.
func (g *Graph) Reachable(from ...Symbol) []Symbol {
	seen := make(map[Symbol]bool)
	queue := slices.Clone(from)
	for len(queue) > 0 {
		sym := queue[0]
		queue = queue[1:]
		if seen[sym] {
			continue
		}
		seen[sym] = true
		queue = append(queue, g.edges[sym]...)
	}
	out := make([]Symbol, 0, len(seen))
	for sym := range seen {
		out = append(out, sym)
	}
	slices.SortFunc(out, compareSymbols)
	return out
}

func (g *Graph) sorted() []Symbol {
	out := make([]Symbol, 0, len(g.nodes))
	for sym := range g.nodes {
		out = append(out, sym)
	}
	slices.SortFunc(out, compareSymbols)
	return out
}
