package parser

import (
	"github.com/golangsnmp/goasn1/model"
)

// ParseOpenType parses an open type body starting at its "{":
//
//	{ name [tag] Type, name Type, ..., name Type }
//
// The extension marker may appear once and only after a variant.
func ParseOpenType(c *Cursor) (*model.OpenType[model.Unresolved], error) {
	if err := c.NextSeparator('{'); err != nil {
		return nil, err
	}

	var (
		variants       []model.OpenTypeVariant[model.Unresolved]
		extensionAfter = -1
	)
	for {
		if c.NextIfSeparator('}') {
			break
		}
		if c.isExtensionMarker() {
			tok, _ := c.Peek()
			if len(variants) == 0 || extensionAfter >= 0 {
				return nil, errInvalidExtensionMarker(tok)
			}
			c.pos += 3
			extensionAfter = len(variants) - 1
		} else {
			name, err := c.NextText()
			if err != nil {
				return nil, err
			}
			tok, t, err := nextWithOptTag(c)
			if err != nil {
				return nil, err
			}
			typ, err := typeGivenText(c, tok)
			if err != nil {
				return nil, err
			}
			v := model.OpenTypeVariant[model.Unresolved]{Name: name.Text, Type: typ}
			variants = append(variants, model.WithTagOpt(v, t))
		}

		if err := listSeparator(c); err != nil {
			return nil, err
		}
	}

	o := model.NewOpenType(variants...)
	return o.WithMaybeExtensionAfter(extensionAfter, extensionAfter >= 0), nil
}

// listSeparator consumes a "," between list elements, or leaves a closing
// "}" for the loop head to consume. A "," must be followed by an element.
func listSeparator(c *Cursor) error {
	if c.NextIfSeparator(',') {
		if tok, ok := c.Peek(); ok && tok.SeparatorEq('}') {
			return errUnexpectedToken(tok)
		}
		return nil
	}
	if c.PeekIsSeparator('}') {
		return nil
	}
	tok, err := c.Next()
	if err != nil {
		return err
	}
	return errUnexpectedToken(tok)
}
