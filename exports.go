// Package goasn1 compiles ASN.1 modules into Go types.
//
// Modules are parsed into an unresolved model, resolved so that every
// symbolic size, range, constant and type reference becomes concrete, and
// handed to the code generator. Generated types encode through the codec
// package, in either of its formats (codec/uper or codec/tlv).
package goasn1

import (
	"github.com/golangsnmp/goasn1/internal/codegen"
	"github.com/golangsnmp/goasn1/internal/lexer"
	"github.com/golangsnmp/goasn1/internal/parser"
	"github.com/golangsnmp/goasn1/model"
)

// Type aliases for public API - the model types come from the model
// subpackage.

// Module is a resolved ASN.1 module.
type Module = model.Model[model.Resolved]

// UnresolvedModule is a parsed module whose symbols still need resolving.
type UnresolvedModule = model.Model[model.Unresolved]

// SyntaxError is a parse failure at a token.
type SyntaxError = parser.SyntaxError

// LexError is a tokenization failure, such as an unterminated comment.
type LexError = lexer.Error

// ResolveError reports a name that could not be resolved.
type ResolveError = model.ResolveError

// GeneratedFile is the Go source generated for one module.
type GeneratedFile = codegen.File

// Resolution sentinels, matched with errors.Is.
var (
	ErrSymbolNotFound = model.ErrSymbolNotFound
	ErrTypeNotFound   = model.ErrTypeNotFound
	ErrValueCycle     = model.ErrValueCycle
	ErrEmptyRange     = model.ErrEmptyRange
	ErrDuplicate      = model.ErrDuplicate
	ErrImportNotFound = model.ErrImportNotFound
)

// ErrUnsupported is returned by Generate for constructs it cannot express
// in Go, such as an open type field without a selector.
var ErrUnsupported = codegen.ErrUnsupported
