package parser

import (
	"fmt"

	"github.com/golangsnmp/goasn1/internal/lexer"
	"github.com/golangsnmp/goasn1/internal/types"
)

// SyntaxError is a parse failure at a token.
type SyntaxError struct {
	Code    string
	Message string
	Token   lexer.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Token.Loc, e.Message)
}

func errUnexpectedToken(tok lexer.Token) *SyntaxError {
	return &SyntaxError{
		Code:    types.CodeUnexpectedToken,
		Message: fmt.Sprintf("unexpected token %s", tok),
		Token:   tok,
	}
}

func errExpectedText(tok lexer.Token) *SyntaxError {
	return &SyntaxError{
		Code:    types.CodeExpectedText,
		Message: fmt.Sprintf("expected text, got %s", tok),
		Token:   tok,
	}
}

func errExpectedKeyword(want string, tok lexer.Token) *SyntaxError {
	return &SyntaxError{
		Code:    types.CodeExpectedText,
		Message: fmt.Sprintf("expected %s, got %s", want, tok),
		Token:   tok,
	}
}

func errExpectedSeparator(want byte, tok lexer.Token) *SyntaxError {
	return &SyntaxError{
		Code:    types.CodeExpectedSeparator,
		Message: fmt.Sprintf("expected %q, got %s", string(want), tok),
		Token:   tok,
	}
}

func errMissingModuleName(tok lexer.Token) *SyntaxError {
	return &SyntaxError{
		Code:    types.CodeMissingModuleName,
		Message: fmt.Sprintf("expected module name, got %s", tok),
		Token:   tok,
	}
}

func errInvalidTag(tok lexer.Token) *SyntaxError {
	return &SyntaxError{
		Code:    types.CodeInvalidTag,
		Message: fmt.Sprintf("invalid tag number %s", tok),
		Token:   tok,
	}
}

func errNoText(tok lexer.Token) *SyntaxError {
	return &SyntaxError{
		Code:    types.CodeNoText,
		Message: fmt.Sprintf("expected tag class or number, got %s", tok),
		Token:   tok,
	}
}

func errInvalidExtensionMarker(tok lexer.Token) *SyntaxError {
	return &SyntaxError{
		Code:    types.CodeInvalidExtensionMarker,
		Message: "extension marker must follow at least one element and appear at most once",
		Token:   tok,
	}
}

func errInvalidRangeValue(tok lexer.Token) *SyntaxError {
	return &SyntaxError{
		Code:    types.CodeInvalidRangeValue,
		Message: fmt.Sprintf("invalid range value %s", tok),
		Token:   tok,
	}
}

func errInvalidNumber(tok lexer.Token) *SyntaxError {
	return &SyntaxError{
		Code:    types.CodeInvalidNumber,
		Message: fmt.Sprintf("invalid number %s", tok),
		Token:   tok,
	}
}

func errUnexpectedEnd(last lexer.Token) *SyntaxError {
	return &SyntaxError{
		Code:    types.CodeUnexpectedEnd,
		Message: "unexpected end of input",
		Token:   last,
	}
}
