package model

// TagDefault is the tagging environment declared in a module header.
type TagDefault int

const (
	TagsExplicit TagDefault = iota
	TagsImplicit
	TagsAutomatic
)

func (d TagDefault) String() string {
	switch d {
	case TagsImplicit:
		return "IMPLICIT"
	case TagsAutomatic:
		return "AUTOMATIC"
	default:
		return "EXPLICIT"
	}
}

// Import is one "symbols FROM module" clause.
type Import struct {
	Module  string
	Symbols []string
}

// Definition is a type assignment "Name ::= Type".
type Definition[RS State] struct {
	Name string
	Tagging
	Type Type[RS]
}

// ValueAssignment is a value assignment "name Type ::= value".
type ValueAssignment[RS State] struct {
	Name  string
	Type  Type[RS]
	Value Leaf[RS, Literal]
}

// Model is one ASN.1 module.
type Model[RS State] struct {
	Name string
	// OID is the module object identifier as written, without braces.
	OID                  []string
	TagDefault           TagDefault
	ExtensibilityImplied bool
	Imports              []Import
	Definitions          []Definition[RS]
	Values               []ValueAssignment[RS]
}

// Definition returns the type assignment with the given name.
func (m *Model[RS]) Definition(name string) (*Definition[RS], bool) {
	for i := range m.Definitions {
		if m.Definitions[i].Name == name {
			return &m.Definitions[i], true
		}
	}
	return nil, false
}

// Value returns the value assignment with the given name.
func (m *Model[RS]) Value(name string) (*ValueAssignment[RS], bool) {
	for i := range m.Values {
		if m.Values[i].Name == name {
			return &m.Values[i], true
		}
	}
	return nil, false
}

// ImportedFrom returns the module a symbol is imported from.
func (m *Model[RS]) ImportedFrom(symbol string) (string, bool) {
	for _, imp := range m.Imports {
		for _, s := range imp.Symbols {
			if s == symbol {
				return imp.Module, true
			}
		}
	}
	return "", false
}
