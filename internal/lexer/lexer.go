package lexer

import (
	"fmt"
	"log/slog"

	"github.com/golangsnmp/goasn1/internal/types"
)

// Error is a lexical error.
type Error struct {
	Code    string
	Message string
	Loc     Location
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

// Lexer tokenizes ASN.1 module text.
type Lexer struct {
	source    []byte
	pos       int
	line      int
	lineStart int
	types.Logger
}

// New returns a Lexer that tokenizes the given source bytes.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		line:   1,
		Logger: types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

// Tokenize is a convenience for New(source, nil).Tokenize().
func Tokenize(source []byte) ([]Token, error) {
	return New(source, nil).Tokenize()
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("token", tok.String()),
			slog.Int("line", tok.Loc.Line),
			slog.Int("column", tok.Loc.Column))
	}
}

// Tokenize consumes all source text and returns the token stream.
// Lexing stops at the first error.
func (l *Lexer) Tokenize() ([]Token, error) {
	estimatedTokens := max(len(l.source)/5, 64)
	tokens := make([]Token, 0, estimatedTokens)
	for {
		tok, ok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	l.Log(slog.LevelDebug, "tokenization complete", slog.Int("tokens", len(tokens)))
	return tokens, nil
}

// NextToken advances the lexer and returns the next token.
// It returns ok=false when all input is consumed.
func (l *Lexer) NextToken() (tok Token, ok bool, err error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, false, err
	}
	b, ok := l.peek()
	if !ok {
		return Token{}, false, nil
	}

	start, loc := l.pos, l.location()

	switch {
	case b == '"':
		if err := l.scanQuoted('"'); err != nil {
			return Token{}, false, err
		}
	case b == '\'':
		if err := l.scanQuoted('\''); err != nil {
			return Token{}, false, err
		}
		// 'xxxx'B and 'xxxx'H literals
		if next, ok := l.peek(); ok && isAlpha(next) {
			l.advance()
		}
	case b == '-' && l.peekAtIsDigit(1):
		l.advance()
		l.scanWord()
	case isWordStart(b):
		l.scanWord()
	case isSeparator(b):
		l.advance()
		tok = Token{Kind: TokSeparator, Sep: b, Span: l.spanFrom(start), Loc: loc}
		l.traceToken(tok)
		return tok, true, nil
	default:
		return Token{}, false, &Error{
			Code:    types.CodeUnexpectedCharacter,
			Message: fmt.Sprintf("unexpected character 0x%02x", b),
			Loc:     loc,
		}
	}

	tok = Token{Kind: TokText, Text: string(l.source[start:l.pos]), Span: l.spanFrom(start), Loc: loc}
	l.traceToken(tok)
	return tok, true, nil
}

func (l *Lexer) location() Location {
	return Location{Line: l.line, Column: l.pos - l.lineStart + 1}
}

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) peekAt(offset int) (byte, bool) {
	idx := l.pos + offset
	if idx >= len(l.source) {
		return 0, false
	}
	return l.source[idx], true
}

func (l *Lexer) peekAtIsDigit(offset int) bool {
	b, ok := l.peekAt(offset)
	return ok && isDigit(b)
}

func (l *Lexer) advance() {
	if l.pos >= len(l.source) {
		return
	}
	if l.source[l.pos] == '\n' {
		l.line++
		l.lineStart = l.pos + 1
	}
	l.pos++
}

func (l *Lexer) spanFrom(start int) types.Span {
	return types.NewSpan(types.ByteOffset(start), types.ByteOffset(l.pos))
}

// skipTrivia skips whitespace, "--" comments (ended by a newline or a
// second "--") and "/* */" block comments, which may nest.
func (l *Lexer) skipTrivia() error {
	for {
		b, ok := l.peek()
		if !ok {
			return nil
		}
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f' || b == '\v':
			l.advance()
		case b == '-' && l.peekAtEquals(1, '-'):
			l.advance()
			l.advance()
			l.skipLineComment()
		case b == '/' && l.peekAtEquals(1, '*'):
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) peekAtEquals(offset int, want byte) bool {
	b, ok := l.peekAt(offset)
	return ok && b == want
}

func (l *Lexer) skipLineComment() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' || b == '\r' {
			return
		}
		if b == '-' && l.peekAtEquals(1, '-') {
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}
}

func (l *Lexer) skipBlockComment() error {
	loc := l.location()
	depth := 0
	for {
		b, ok := l.peek()
		if !ok {
			return &Error{Code: types.CodeUnterminatedComment, Message: "unterminated block comment", Loc: loc}
		}
		switch {
		case b == '/' && l.peekAtEquals(1, '*'):
			depth++
			l.advance()
			l.advance()
		case b == '*' && l.peekAtEquals(1, '/'):
			depth--
			l.advance()
			l.advance()
			if depth == 0 {
				return nil
			}
		default:
			l.advance()
		}
	}
}

// scanQuoted scans a literal delimited by quote. Inside "..." a doubled
// quote is an escaped quote character.
func (l *Lexer) scanQuoted(quote byte) error {
	loc := l.location()
	l.advance()
	for {
		b, ok := l.peek()
		if !ok {
			return &Error{Code: types.CodeUnterminatedString, Message: "unterminated string literal", Loc: loc}
		}
		l.advance()
		if b != quote {
			continue
		}
		if quote == '"' && l.peekAtEquals(0, '"') {
			l.advance()
			continue
		}
		return nil
	}
}

// scanWord scans identifier and number characters. A hyphen pair ends
// the word because it starts a comment.
func (l *Lexer) scanWord() {
	for {
		b, ok := l.peek()
		if !ok {
			return
		}
		if b == '-' {
			if l.peekAtEquals(1, '-') {
				return
			}
			l.advance()
			continue
		}
		if !isWordChar(b) {
			return
		}
		l.advance()
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isWordStart(b byte) bool { return isAlpha(b) || isDigit(b) || b == '&' }

func isWordChar(b byte) bool { return isAlpha(b) || isDigit(b) || b == '_' }

func isSeparator(b byte) bool {
	switch b {
	case '{', '}', '[', ']', '(', ')', '<', '>', ',', '.', ';', ':', '=', '|', '@', '!', '^', '*', '-':
		return true
	}
	return false
}
