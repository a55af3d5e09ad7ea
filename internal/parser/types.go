package parser

import (
	"github.com/golangsnmp/goasn1/internal/lexer"
	"github.com/golangsnmp/goasn1/model"
)

type (
	unresolved = model.Unresolved
	typeNode   = model.Type[unresolved]
)

// ParseType parses a type: a built-in type with its constraints, an open
// type or a type reference.
func ParseType(c *Cursor) (model.Type[model.Unresolved], error) {
	tok, err := c.Next()
	if err != nil {
		return nil, err
	}
	return typeGivenText(c, tok)
}

// typeGivenText parses the type whose first token, tok, has already been
// consumed.
func typeGivenText(c *Cursor, tok lexer.Token) (typeNode, error) {
	if !tok.IsText() {
		return nil, errExpectedText(tok)
	}
	switch tok.Text {
	case "BOOLEAN":
		return &model.Boolean[unresolved]{}, nil
	case "NULL":
		return &model.Null[unresolved]{}, nil
	case "INTEGER":
		return parseInteger(c)
	case "ENUMERATED":
		return parseEnumerated(c)
	case "UTF8String":
		return parseString(c, model.UTF8String)
	case "IA5String":
		return parseString(c, model.IA5String)
	case "NumericString":
		return parseString(c, model.NumericString)
	case "PrintableString":
		return parseString(c, model.PrintableString)
	case "VisibleString":
		return parseString(c, model.VisibleString)
	case "OCTET":
		if err := c.NextTextEq("STRING"); err != nil {
			return nil, err
		}
		size, err := parseSizeConstraint(c)
		if err != nil {
			return nil, err
		}
		return &model.OctetString[unresolved]{Size: size}, nil
	case "BIT":
		if err := c.NextTextEq("STRING"); err != nil {
			return nil, err
		}
		return parseBitString(c)
	case "SEQUENCE":
		if c.PeekIsSeparator('{') {
			comps, err := parseComponents(c)
			if err != nil {
				return nil, err
			}
			return &model.Sequence[unresolved]{Components: comps}, nil
		}
		elem, size, err := parseListOf(c)
		if err != nil {
			return nil, err
		}
		return &model.SequenceOf[unresolved]{Element: elem, Size: size}, nil
	case "SET":
		if c.PeekIsSeparator('{') {
			comps, err := parseComponents(c)
			if err != nil {
				return nil, err
			}
			return &model.Set[unresolved]{Components: comps}, nil
		}
		elem, size, err := parseListOf(c)
		if err != nil {
			return nil, err
		}
		return &model.SetOf[unresolved]{Element: elem, Size: size}, nil
	case "CHOICE":
		return parseChoice(c)
	case "OPEN":
		if err := c.NextTextEq("TYPE"); err != nil {
			return nil, err
		}
		return ParseOpenType(c)
	}

	if !isTypeReference(tok.Text) {
		return nil, errUnexpectedToken(tok)
	}
	ref := &model.TypeRef[unresolved]{Name: tok.Text}
	// Module.Type
	if c.PeekIsSeparator('.') {
		if next, ok := c.PeekNth(1); ok && next.IsText() && isTypeReference(next.Text) {
			c.pos += 2
			ref.Module, ref.Name = ref.Name, next.Text
		}
	}
	return ref, nil
}

func parseInteger(c *Cursor) (typeNode, error) {
	t := &model.Integer[unresolved]{}
	if c.PeekIsSeparator('{') {
		named, err := parseNamedNumbers(c)
		if err != nil {
			return nil, err
		}
		t.Named = named
	}
	if c.NextIfSeparator('(') {
		rng, err := parseRange(c)
		if err != nil {
			return nil, err
		}
		if err := c.NextSeparator(')'); err != nil {
			return nil, err
		}
		t.Range = rng
	}
	return t, nil
}

func parseString(c *Cursor, kind model.StringKind) (typeNode, error) {
	size, err := parseSizeConstraint(c)
	if err != nil {
		return nil, err
	}
	return &model.String[unresolved]{Kind: kind, Size: size}, nil
}

func parseBitString(c *Cursor) (typeNode, error) {
	t := &model.BitString[unresolved]{}
	if c.PeekIsSeparator('{') {
		named, err := parseNamedNumbers(c)
		if err != nil {
			return nil, err
		}
		t.Named = named
	}
	size, err := parseSizeConstraint(c)
	if err != nil {
		return nil, err
	}
	t.Size = size
	return t, nil
}

// parseNamedNumbers parses "{ name(n), ... }".
func parseNamedNumbers(c *Cursor) ([]model.NamedNumber, error) {
	if err := c.NextSeparator('{'); err != nil {
		return nil, err
	}
	var named []model.NamedNumber
	for !c.NextIfSeparator('}') {
		name, err := c.NextText()
		if err != nil {
			return nil, err
		}
		if err := c.NextSeparator('('); err != nil {
			return nil, err
		}
		n, err := nextInt64(c)
		if err != nil {
			return nil, err
		}
		if err := c.NextSeparator(')'); err != nil {
			return nil, err
		}
		named = append(named, model.NamedNumber{Name: name.Text, Value: n})
		if err := listSeparator(c); err != nil {
			return nil, err
		}
	}
	return named, nil
}

func parseEnumerated(c *Cursor) (typeNode, error) {
	if err := c.NextSeparator('{'); err != nil {
		return nil, err
	}
	t := &model.Enumerated[unresolved]{}
	for !c.NextIfSeparator('}') {
		if c.isExtensionMarker() {
			tok, _ := c.Peek()
			if len(t.Items) == 0 || t.ExtensionAfter != nil {
				return nil, errInvalidExtensionMarker(tok)
			}
			c.pos += 3
			last := len(t.Items) - 1
			t.ExtensionAfter = &last
		} else {
			name, err := c.NextText()
			if err != nil {
				return nil, err
			}
			item := model.EnumItem{Name: name.Text}
			if c.NextIfSeparator('(') {
				n, err := nextInt64(c)
				if err != nil {
					return nil, err
				}
				if err := c.NextSeparator(')'); err != nil {
					return nil, err
				}
				item.Number = &n
			}
			t.Items = append(t.Items, item)
		}
		if err := listSeparator(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// parseComponents parses a SEQUENCE or SET body starting at its "{".
func parseComponents(c *Cursor) (model.Components[unresolved], error) {
	var comps model.Components[unresolved]
	if err := c.NextSeparator('{'); err != nil {
		return comps, err
	}
	for !c.NextIfSeparator('}') {
		if c.isExtensionMarker() {
			tok, _ := c.Peek()
			if len(comps.Fields) == 0 || comps.ExtensionAfter != nil {
				return comps, errInvalidExtensionMarker(tok)
			}
			c.pos += 3
			last := len(comps.Fields) - 1
			comps.ExtensionAfter = &last
		} else {
			f, err := parseField(c)
			if err != nil {
				return comps, err
			}
			comps.Fields = append(comps.Fields, f)
		}
		if err := listSeparator(c); err != nil {
			return comps, err
		}
	}
	return comps, nil
}

func parseField(c *Cursor) (model.Field[unresolved], error) {
	name, err := c.NextText()
	if err != nil {
		return model.Field[unresolved]{}, err
	}
	tok, t, err := nextWithOptTag(c)
	if err != nil {
		return model.Field[unresolved]{}, err
	}
	typ, err := typeGivenText(c, tok)
	if err != nil {
		return model.Field[unresolved]{}, err
	}
	f := model.WithTagOpt(model.Field[unresolved]{Name: name.Text, Type: typ}, t)

	// (@key) selects the variant of an open type field
	if c.PeekIsSeparator('(') {
		if at, ok := c.PeekNth(1); ok && at.SeparatorEq('@') {
			c.pos += 2
			key, err := c.NextText()
			if err != nil {
				return f, err
			}
			if err := c.NextSeparator(')'); err != nil {
				return f, err
			}
			f.Key = key.Text
		}
	}

	switch {
	case c.NextIfText("OPTIONAL"):
		f.Optional = true
	case c.NextIfText("DEFAULT"):
		v, err := parseValue(c)
		if err != nil {
			return f, err
		}
		f.Default = &v
	}
	return f, nil
}

func parseChoice(c *Cursor) (typeNode, error) {
	if err := c.NextSeparator('{'); err != nil {
		return nil, err
	}
	t := &model.Choice[unresolved]{}
	for !c.NextIfSeparator('}') {
		if c.isExtensionMarker() {
			tok, _ := c.Peek()
			if len(t.Variants) == 0 || t.ExtensionAfter != nil {
				return nil, errInvalidExtensionMarker(tok)
			}
			c.pos += 3
			last := len(t.Variants) - 1
			t.ExtensionAfter = &last
		} else {
			name, err := c.NextText()
			if err != nil {
				return nil, err
			}
			tok, tg, err := nextWithOptTag(c)
			if err != nil {
				return nil, err
			}
			typ, err := typeGivenText(c, tok)
			if err != nil {
				return nil, err
			}
			v := model.ChoiceVariant[unresolved]{Name: name.Text, Type: typ}
			t.Variants = append(t.Variants, model.WithTagOpt(v, tg))
		}
		if err := listSeparator(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// parseListOf parses the rest of "SEQUENCE [SIZE(...)] OF Type", also
// accepting the "SEQUENCE (SIZE(...)) OF Type" spelling.
func parseListOf(c *Cursor) (typeNode, *model.Size[unresolved], error) {
	var size *model.Size[unresolved]
	switch {
	case c.PeekIsText("SIZE"):
		c.pos++
		s, err := parseSizeBody(c)
		if err != nil {
			return nil, nil, err
		}
		size = s
	case c.PeekIsSeparator('('):
		s, err := parseSizeConstraint(c)
		if err != nil {
			return nil, nil, err
		}
		size = s
	}
	if err := c.NextTextEq("OF"); err != nil {
		return nil, nil, err
	}
	// SEQUENCE OF name Type
	if tok, ok := c.Peek(); ok && tok.IsText() && isValueReference(tok.Text) {
		c.pos++
	}
	elem, err := ParseType(c)
	if err != nil {
		return nil, nil, err
	}
	return elem, size, nil
}

func isTypeReference(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

func isValueReference(s string) bool {
	return s != "" && s[0] >= 'a' && s[0] <= 'z'
}
