package parser

import (
	"strconv"
	"strings"

	"github.com/golangsnmp/goasn1/model"
)

// parseValue parses a constant: a number, TRUE, FALSE, NULL, a quoted
// string or a value reference.
func parseValue(c *Cursor) (model.Leaf[unresolved, model.Literal], error) {
	tok, err := c.Next()
	if err != nil {
		return model.Leaf[unresolved, model.Literal]{}, err
	}
	lit := func(l model.Literal) (model.Leaf[unresolved, model.Literal], error) {
		return model.Lit[unresolved](l), nil
	}
	if !tok.IsText() {
		return model.Leaf[unresolved, model.Literal]{}, errExpectedText(tok)
	}
	switch {
	case tok.IsQuoted():
		s := tok.Text[1 : len(tok.Text)-1]
		return lit(model.StringLiteral(strings.ReplaceAll(s, `""`, `"`)))
	case tok.Text == "TRUE":
		return lit(model.BooleanLiteral(true))
	case tok.Text == "FALSE":
		return lit(model.BooleanLiteral(false))
	case tok.Text == "NULL":
		return lit(model.Literal{Kind: model.LiteralNull})
	case isValueReference(tok.Text):
		return model.Ref[model.Literal](tok.Text), nil
	}
	n, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return model.Leaf[unresolved, model.Literal]{}, errUnexpectedToken(tok)
	}
	return lit(model.IntegerLiteral(n))
}

func nextInt64(c *Cursor) (int64, error) {
	tok, err := c.NextText()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return 0, errInvalidNumber(tok)
	}
	return n, nil
}
