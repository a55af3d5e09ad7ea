package model

import (
	"strconv"
	"strings"
)

// LiteralKind identifies the kind of a constant.
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralBoolean
	LiteralString
	LiteralNull
	// LiteralIdentifier is an enumeration label or named number,
	// e.g. the "red" in "DEFAULT red".
	LiteralIdentifier
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralInteger:
		return "integer"
	case LiteralBoolean:
		return "boolean"
	case LiteralString:
		return "string"
	case LiteralNull:
		return "null"
	case LiteralIdentifier:
		return "identifier"
	default:
		return "LiteralKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Literal is a constant value written in a module.
type Literal struct {
	Kind    LiteralKind
	Integer int64
	Boolean bool
	// Text is the string value or identifier.
	Text string
}

// IntegerLiteral returns an integer constant.
func IntegerLiteral(v int64) Literal { return Literal{Kind: LiteralInteger, Integer: v} }

// BooleanLiteral returns a boolean constant.
func BooleanLiteral(v bool) Literal { return Literal{Kind: LiteralBoolean, Boolean: v} }

// StringLiteral returns a string constant.
func StringLiteral(v string) Literal { return Literal{Kind: LiteralString, Text: v} }

// IdentifierLiteral returns a named constant such as an enumeration label.
func IdentifierLiteral(name string) Literal { return Literal{Kind: LiteralIdentifier, Text: name} }

func (l Literal) String() string {
	switch l.Kind {
	case LiteralInteger:
		return strconv.FormatInt(l.Integer, 10)
	case LiteralBoolean:
		if l.Boolean {
			return "TRUE"
		}
		return "FALSE"
	case LiteralString:
		return `"` + strings.ReplaceAll(l.Text, `"`, `""`) + `"`
	case LiteralNull:
		return "NULL"
	default:
		return l.Text
	}
}
