package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(name string) Symbol { return Symbol{Module: "M", Name: name} }

func TestAddEdge(t *testing.T) {
	g := New()
	g.AddEdge(sym("a"), sym("b"))
	g.AddEdge(sym("a"), sym("b"))

	assert.True(t, g.HasNode(sym("a")))
	assert.True(t, g.HasNode(sym("b")))
	assert.False(t, g.HasNode(sym("c")))
	assert.Equal(t, []Symbol{sym("b")}, g.Dependencies(sym("a")))
	assert.Equal(t, 2, g.Len())
}

func TestResolutionOrderChain(t *testing.T) {
	g := New()
	g.AddEdge(sym("a"), sym("b"))
	g.AddEdge(sym("b"), sym("c"))
	g.AddNode(sym("d"))

	order, cycles := g.ResolutionOrder()
	assert.Empty(t, cycles)
	assert.Equal(t, []Symbol{sym("c"), sym("b"), sym("a"), sym("d")}, order)
}

func TestResolutionOrderDiamond(t *testing.T) {
	g := New()
	g.AddEdge(sym("top"), sym("left"))
	g.AddEdge(sym("top"), sym("right"))
	g.AddEdge(sym("left"), sym("bottom"))
	g.AddEdge(sym("right"), sym("bottom"))

	order, cycles := g.ResolutionOrder()
	require.Empty(t, cycles)
	pos := make(map[Symbol]int)
	for i, s := range order {
		pos[s] = i
	}
	assert.Less(t, pos[sym("bottom")], pos[sym("left")])
	assert.Less(t, pos[sym("bottom")], pos[sym("right")])
	assert.Less(t, pos[sym("left")], pos[sym("top")])
	assert.Less(t, pos[sym("right")], pos[sym("top")])
}

func TestResolutionOrderCycles(t *testing.T) {
	g := New()
	g.AddEdge(sym("b"), sym("a"))
	g.AddEdge(sym("a"), sym("b"))
	g.AddEdge(sym("self"), sym("self"))
	g.AddEdge(sym("user"), sym("a"))
	g.AddNode(sym("free"))

	order, cycles := g.ResolutionOrder()
	assert.Equal(t, [][]Symbol{{sym("a"), sym("b")}, {sym("self")}}, cycles)
	assert.Equal(t, []Symbol{sym("free"), sym("user")}, order)
	assert.True(t, g.HasCycles())
}

func TestReachable(t *testing.T) {
	g := New()
	a, b, c := ModuleSymbol("A"), ModuleSymbol("B"), ModuleSymbol("C")
	g.AddEdge(a, b)
	g.AddEdge(b, c)
	g.AddEdge(c, b)
	g.AddNode(ModuleSymbol("D"))

	assert.Equal(t, []Symbol{a, b, c}, g.Reachable(a))
	assert.Equal(t, []Symbol{b, c}, g.Reachable(c))
	assert.Equal(t, "A", a.String())
	assert.Equal(t, "M.x", sym("x").String())
}
