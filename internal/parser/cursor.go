// Package parser turns ASN.1 module text into unresolved models.
//
// Parsing is fail-fast: the first syntax error aborts the module and is
// returned as a *SyntaxError naming the offending token.
package parser

import (
	"github.com/golangsnmp/goasn1/internal/lexer"
)

// Cursor is a peekable position in a token stream.
type Cursor struct {
	tokens []lexer.Token
	pos    int
}

// NewCursor returns a cursor at the first of tokens.
func NewCursor(tokens []lexer.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Done reports whether all tokens have been consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.tokens)
}

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() (lexer.Token, bool) {
	return c.PeekNth(0)
}

// PeekNth returns the token n positions ahead without consuming anything.
func (c *Cursor) PeekNth(n int) (lexer.Token, bool) {
	if c.pos+n >= len(c.tokens) {
		return lexer.Token{}, false
	}
	return c.tokens[c.pos+n], true
}

// Next consumes and returns the next token.
func (c *Cursor) Next() (lexer.Token, error) {
	if c.pos >= len(c.tokens) {
		return lexer.Token{}, errUnexpectedEnd(c.last())
	}
	tok := c.tokens[c.pos]
	c.pos++
	return tok, nil
}

// NextText consumes the next token, which must be text.
func (c *Cursor) NextText() (lexer.Token, error) {
	tok, err := c.Next()
	if err != nil {
		return tok, err
	}
	if !tok.IsText() {
		return tok, errExpectedText(tok)
	}
	return tok, nil
}

// NextTextEq consumes the next token, which must be the text s.
func (c *Cursor) NextTextEq(s string) error {
	tok, err := c.Next()
	if err != nil {
		return err
	}
	if !tok.TextEq(s) {
		return errExpectedKeyword(s, tok)
	}
	return nil
}

// NextSeparator consumes the next token, which must be the separator sep.
func (c *Cursor) NextSeparator(sep byte) error {
	tok, err := c.Next()
	if err != nil {
		return err
	}
	if !tok.SeparatorEq(sep) {
		return errExpectedSeparator(sep, tok)
	}
	return nil
}

// NextIfSeparator consumes the next token if it is the separator sep.
func (c *Cursor) NextIfSeparator(sep byte) bool {
	if c.PeekIsSeparator(sep) {
		c.pos++
		return true
	}
	return false
}

// NextIfText consumes the next token if it is the text s.
func (c *Cursor) NextIfText(s string) bool {
	if c.PeekIsText(s) {
		c.pos++
		return true
	}
	return false
}

// PeekIsSeparator reports whether the next token is the separator sep.
func (c *Cursor) PeekIsSeparator(sep byte) bool {
	tok, ok := c.Peek()
	return ok && tok.SeparatorEq(sep)
}

// PeekIsText reports whether the next token is the text s.
func (c *Cursor) PeekIsText(s string) bool {
	tok, ok := c.Peek()
	return ok && tok.TextEq(s)
}

// isExtensionMarker reports whether the next three tokens are "...".
func (c *Cursor) isExtensionMarker() bool {
	for i := range 3 {
		tok, ok := c.PeekNth(i)
		if !ok || !tok.SeparatorEq('.') {
			return false
		}
	}
	return true
}

// nextAssign consumes "::=".
func (c *Cursor) nextAssign() error {
	for _, sep := range []byte{':', ':', '='} {
		if err := c.NextSeparator(sep); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cursor) last() lexer.Token {
	if len(c.tokens) == 0 {
		return lexer.Token{}
	}
	return c.tokens[len(c.tokens)-1]
}
