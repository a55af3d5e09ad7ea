// Package lexer provides tokenization for ASN.1 module text.
package lexer

import (
	"fmt"
	"strings"

	"github.com/golangsnmp/goasn1/internal/types"
)

// TokenKind identifies a token type. ASN.1 text only needs two: runs of
// identifier, number and string characters, and single-character
// separators such as '{' or ':'.
type TokenKind int

const (
	// TokText is a word, number, quoted string or bit/hex string literal.
	TokText TokenKind = iota
	// TokSeparator is a single separator character.
	TokSeparator
)

// Location is a 1-based line and column in the source text.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Token is a token with kind, payload and source position.
type Token struct {
	Kind TokenKind
	// Text holds the token text for TokText. Quoted strings keep their quotes.
	Text string
	// Sep holds the character for TokSeparator.
	Sep  byte
	Span types.Span
	Loc  Location
}

// NewText creates a text token at a synthetic position.
func NewText(text string) Token {
	return Token{Kind: TokText, Text: text}
}

// NewSeparator creates a separator token at a synthetic position.
func NewSeparator(sep byte) Token {
	return Token{Kind: TokSeparator, Sep: sep}
}

// IsText reports whether the token is a text token.
func (t Token) IsText() bool { return t.Kind == TokText }

// IsSeparator reports whether the token is a separator token.
func (t Token) IsSeparator() bool { return t.Kind == TokSeparator }

// TextEq reports whether the token is text equal to s.
func (t Token) TextEq(s string) bool {
	return t.Kind == TokText && t.Text == s
}

// TextEqIgnoreCase reports whether the token is text equal to s, ignoring case.
func (t Token) TextEqIgnoreCase(s string) bool {
	return t.Kind == TokText && strings.EqualFold(t.Text, s)
}

// SeparatorEq reports whether the token is the separator c.
func (t Token) SeparatorEq(c byte) bool {
	return t.Kind == TokSeparator && t.Sep == c
}

// IsQuoted reports whether the token is a quoted string literal.
func (t Token) IsQuoted() bool {
	return t.Kind == TokText && len(t.Text) >= 2 && t.Text[0] == '"'
}

func (t Token) String() string {
	if t.Kind == TokSeparator {
		return fmt.Sprintf("%q", string(t.Sep))
	}
	return fmt.Sprintf("%q", t.Text)
}
