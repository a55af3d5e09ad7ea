package model

import (
	"errors"
	"fmt"

	"github.com/golangsnmp/goasn1/internal/types"
)

// Sentinel errors matched by errors.Is against a *ResolveError.
var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrTypeNotFound   = errors.New("type not found")
	ErrValueCycle     = errors.New("value assignment cycle")
	ErrEmptyRange     = errors.New("empty range")
	ErrDuplicate      = errors.New("duplicate definition")
	ErrImportNotFound = errors.New("import not found")
)

// ResolveError reports a name that could not be resolved.
type ResolveError struct {
	Code   string
	Name   string
	Detail string
}

// SymbolNotFound returns the error a Resolver reports for an unknown value.
func SymbolNotFound(name string) *ResolveError {
	return &ResolveError{Code: types.CodeSymbolNotFound, Name: name}
}

// TypeNotFound returns the error a Resolver reports for an unknown type.
func TypeNotFound(name string) *ResolveError {
	return &ResolveError{Code: types.CodeTypeNotFound, Name: name}
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("%v: %q", e.Unwrap(), e.Name)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ResolveError) Unwrap() error {
	switch e.Code {
	case types.CodeTypeNotFound:
		return ErrTypeNotFound
	case types.CodeValueCycle:
		return ErrValueCycle
	case types.CodeEmptyRange:
		return ErrEmptyRange
	case types.CodeDuplicateDefinition:
		return ErrDuplicate
	case types.CodeImportNotFound:
		return ErrImportNotFound
	default:
		return ErrSymbolNotFound
	}
}
