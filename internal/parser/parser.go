package parser

import (
	"log/slog"

	"github.com/golangsnmp/goasn1/internal/lexer"
	"github.com/golangsnmp/goasn1/internal/types"
	"github.com/golangsnmp/goasn1/model"
)

// Parser parses ASN.1 module text.
type Parser struct {
	lexLogger *slog.Logger
	types.Logger
}

// New returns a Parser. Pass nil for logger to disable logging.
func New(logger *slog.Logger) *Parser {
	return &Parser{
		lexLogger: types.Component(logger, "lexer"),
		Logger:    types.Logger{L: logger},
	}
}

// Parse parses the modules in source. A file may hold several modules.
func (p *Parser) Parse(source []byte) ([]*model.Model[model.Unresolved], error) {
	tokens, err := lexer.New(source, p.lexLogger).Tokenize()
	if err != nil {
		return nil, err
	}
	c := NewCursor(tokens)
	var mods []*model.Model[model.Unresolved]
	for !c.Done() {
		m, err := p.ParseModule(c)
		if err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// ParseModule parses one module definition:
//
//	Name [{ oid }] DEFINITIONS [tag default TAGS] [EXTENSIBILITY IMPLIED] ::=
//	BEGIN [EXPORTS ...;] [IMPORTS ...;] assignments END
func (p *Parser) ParseModule(c *Cursor) (*model.Model[model.Unresolved], error) {
	tok, err := c.Next()
	if err != nil {
		return nil, err
	}
	if !tok.IsText() || !isTypeReference(tok.Text) {
		return nil, errMissingModuleName(tok)
	}
	m := &model.Model[model.Unresolved]{Name: tok.Text}

	if c.PeekIsSeparator('{') {
		if m.OID, err = parseOID(c); err != nil {
			return nil, err
		}
	}
	if err := c.NextTextEq("DEFINITIONS"); err != nil {
		return nil, err
	}
	tagging := true
	switch {
	case c.NextIfText("EXPLICIT"):
		m.TagDefault = model.TagsExplicit
	case c.NextIfText("IMPLICIT"):
		m.TagDefault = model.TagsImplicit
	case c.NextIfText("AUTOMATIC"):
		m.TagDefault = model.TagsAutomatic
	default:
		tagging = false
	}
	if tagging {
		if err := c.NextTextEq("TAGS"); err != nil {
			return nil, err
		}
	}
	if c.NextIfText("EXTENSIBILITY") {
		if err := c.NextTextEq("IMPLIED"); err != nil {
			return nil, err
		}
		m.ExtensibilityImplied = true
	}
	if err := c.nextAssign(); err != nil {
		return nil, err
	}
	if err := c.NextTextEq("BEGIN"); err != nil {
		return nil, err
	}

	p.Log(slog.LevelDebug, "parsing module", slog.String("module", m.Name))

	if c.NextIfText("EXPORTS") {
		if err := skipUntilSemicolon(c); err != nil {
			return nil, err
		}
	}
	if c.NextIfText("IMPORTS") {
		if m.Imports, err = parseImports(c); err != nil {
			return nil, err
		}
	}

	for !c.NextIfText("END") {
		if err := p.parseAssignment(c, m); err != nil {
			return nil, err
		}
	}

	p.Log(slog.LevelDebug, "parsed module",
		slog.String("module", m.Name),
		slog.Int("definitions", len(m.Definitions)),
		slog.Int("values", len(m.Values)),
		slog.Int("imports", len(m.Imports)))
	return m, nil
}

func (p *Parser) parseAssignment(c *Cursor, m *model.Model[model.Unresolved]) error {
	name, err := c.NextText()
	if err != nil {
		return err
	}

	if isTypeReference(name.Text) {
		if err := c.nextAssign(); err != nil {
			return err
		}
		tok, t, err := nextWithOptTag(c)
		if err != nil {
			return err
		}
		typ, err := typeGivenText(c, tok)
		if err != nil {
			return err
		}
		d := model.WithTagOpt(model.Definition[unresolved]{Name: name.Text, Type: typ}, t)
		m.Definitions = append(m.Definitions, d)
		if p.TraceEnabled() {
			p.Trace("type assignment", slog.String("name", name.Text))
		}
		return nil
	}

	if !isValueReference(name.Text) {
		return errUnexpectedToken(name)
	}
	typ, err := ParseType(c)
	if err != nil {
		return err
	}
	if err := c.nextAssign(); err != nil {
		return err
	}
	v, err := parseValue(c)
	if err != nil {
		return err
	}
	m.Values = append(m.Values, model.ValueAssignment[unresolved]{Name: name.Text, Type: typ, Value: v})
	if p.TraceEnabled() {
		p.Trace("value assignment", slog.String("name", name.Text))
	}
	return nil
}

// parseOID collects the components of "{ iso(1) member-body(2) 840 }" as
// written, e.g. "iso(1)".
func parseOID(c *Cursor) ([]string, error) {
	if err := c.NextSeparator('{'); err != nil {
		return nil, err
	}
	var oid []string
	for !c.NextIfSeparator('}') {
		tok, err := c.NextText()
		if err != nil {
			return nil, err
		}
		component := tok.Text
		if c.NextIfSeparator('(') {
			n, err := c.NextText()
			if err != nil {
				return nil, err
			}
			if err := c.NextSeparator(')'); err != nil {
				return nil, err
			}
			component += "(" + n.Text + ")"
		}
		oid = append(oid, component)
	}
	return oid, nil
}

// parseImports parses "a, B FROM Mod-A { oid } c FROM Mod-B ;" after
// the IMPORTS keyword.
func parseImports(c *Cursor) ([]model.Import, error) {
	var (
		imports []model.Import
		symbols []string
		last    lexer.Token
	)
	for !c.NextIfSeparator(';') {
		tok, err := c.NextText()
		if err != nil {
			return nil, err
		}
		last = tok
		if tok.Text != "FROM" {
			symbols = append(symbols, tok.Text)
			// parameterized reference "Name{}"
			if c.NextIfSeparator('{') {
				if err := c.NextSeparator('}'); err != nil {
					return nil, err
				}
			}
			c.NextIfSeparator(',')
			continue
		}
		mod, err := c.NextText()
		if err != nil {
			return nil, err
		}
		if !isTypeReference(mod.Text) {
			return nil, errMissingModuleName(mod)
		}
		if c.PeekIsSeparator('{') {
			if _, err := parseOID(c); err != nil {
				return nil, err
			}
		}
		imports = append(imports, model.Import{Module: mod.Text, Symbols: symbols})
		symbols = nil
	}
	if len(symbols) > 0 {
		return nil, errExpectedKeyword("FROM", last)
	}
	return imports, nil
}

func skipUntilSemicolon(c *Cursor) error {
	for {
		tok, err := c.Next()
		if err != nil {
			return err
		}
		if tok.SeparatorEq(';') {
			return nil
		}
	}
}

// ModuleName returns the name of the first module in source without
// parsing the whole text, or "" if none is found.
func ModuleName(source []byte) string {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return ""
	}
	for i, tok := range tokens {
		if tok.TextEq("DEFINITIONS") && i > 0 {
			j := i - 1
			if tokens[j].SeparatorEq('}') {
				for j > 0 && !tokens[j].SeparatorEq('{') {
					j--
				}
				j--
			}
			if j >= 0 && tokens[j].IsText() && isTypeReference(tokens[j].Text) {
				return tokens[j].Text
			}
			return ""
		}
	}
	return ""
}
