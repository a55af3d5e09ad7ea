// Package model is the in-memory form of ASN.1 modules.
//
// Every node that may reference a symbol is generic over its resolve state.
// Parsing produces values in the Unresolved state, where sizes, ranges,
// constants and type references may still name value or type assignments.
// Resolution maps them into the Resolved state without mutating the input.
// Only Resolved leaves expose their values through Value, so code that
// consumes a model (the code generator, for one) cannot see a symbolic
// value by accident.
package model

// Unresolved is the state of a freshly parsed model.
type Unresolved struct{}

// Resolved is the state of a model whose symbols have all been replaced
// by concrete values.
type Resolved struct{}

// State is the set of resolve states.
type State interface {
	Unresolved | Resolved
}

// Leaf is a size bound, range bound or constant. While unresolved it holds
// either a literal or the name of a value assignment; resolved leaves
// always hold a literal.
type Leaf[RS State, T any] struct {
	symbol string
	value  T
}

// Lit returns a leaf holding the literal v.
func Lit[RS State, T any](v T) Leaf[RS, T] {
	return Leaf[RS, T]{value: v}
}

// Ref returns an unresolved leaf naming a value assignment.
func Ref[T any](symbol string) Leaf[Unresolved, T] {
	return Leaf[Unresolved, T]{symbol: symbol}
}

// Symbol returns the referenced name, if the leaf is symbolic.
func (l Leaf[RS, T]) Symbol() (string, bool) {
	return l.symbol, l.symbol != ""
}

// Literal returns the literal value, if the leaf holds one.
func (l Leaf[RS, T]) Literal() (T, bool) {
	return l.value, l.symbol == ""
}

// Value returns the value of a resolved leaf.
func Value[T any](l Leaf[Resolved, T]) T {
	return l.value
}

func resolveLeaf[T any](l Leaf[Unresolved, T], resolve func(string) (T, error)) (Leaf[Resolved, T], error) {
	sym, ok := l.Symbol()
	if !ok {
		return Leaf[Resolved, T]{value: l.value}, nil
	}
	v, err := resolve(sym)
	if err != nil {
		return Leaf[Resolved, T]{}, err
	}
	return Leaf[Resolved, T]{value: v}, nil
}

func resolveLeafPtr[T any](l *Leaf[Unresolved, T], resolve func(string) (T, error)) (*Leaf[Resolved, T], error) {
	if l == nil {
		return nil, nil
	}
	r, err := resolveLeaf(*l, resolve)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
