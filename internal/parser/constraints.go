package parser

import (
	"strconv"

	"github.com/golangsnmp/goasn1/internal/lexer"
	"github.com/golangsnmp/goasn1/model"
)

// parseSizeConstraint parses an optional "(SIZE(...))".
func parseSizeConstraint(c *Cursor) (*model.Size[unresolved], error) {
	if !c.PeekIsSeparator('(') {
		return nil, nil
	}
	c.pos++
	if err := c.NextTextEq("SIZE"); err != nil {
		return nil, err
	}
	size, err := parseSizeBody(c)
	if err != nil {
		return nil, err
	}
	if err := c.NextSeparator(')'); err != nil {
		return nil, err
	}
	return size, nil
}

// parseSizeBody parses the "(lo..hi)" or "(n)" after SIZE, with an
// optional trailing ", ...".
func parseSizeBody(c *Cursor) (*model.Size[unresolved], error) {
	if err := c.NextSeparator('('); err != nil {
		return nil, err
	}
	bounds, err := parseBounds(c, sizeBound)
	if err != nil {
		return nil, err
	}
	if err := c.NextSeparator(')'); err != nil {
		return nil, err
	}
	return &model.Size[unresolved]{Min: bounds.lo, Max: bounds.hi, Extensible: bounds.extensible}, nil
}

// parseRange parses the inside of a value range constraint, "lo..hi" or a
// single value, with an optional trailing ", ...".
func parseRange(c *Cursor) (*model.Range[unresolved], error) {
	bounds, err := parseBounds(c, rangeBound)
	if err != nil {
		return nil, err
	}
	return &model.Range[unresolved]{Min: bounds.lo, Max: bounds.hi, Extensible: bounds.extensible}, nil
}

type bounds[T any] struct {
	lo, hi     *model.Leaf[unresolved, T]
	extensible bool
}

func parseBounds[T any](c *Cursor, bound func(lexer.Token) (*model.Leaf[unresolved, T], error)) (bounds[T], error) {
	var b bounds[T]
	tok, err := c.Next()
	if err != nil {
		return b, err
	}
	if b.lo, err = bound(tok); err != nil {
		return b, err
	}
	if c.PeekIsSeparator('.') {
		if err := c.NextSeparator('.'); err != nil {
			return b, err
		}
		if err := c.NextSeparator('.'); err != nil {
			return b, err
		}
		tok, err := c.Next()
		if err != nil {
			return b, err
		}
		if b.hi, err = bound(tok); err != nil {
			return b, err
		}
	} else {
		if b.lo == nil {
			return b, errInvalidRangeValue(tok)
		}
		b.hi = b.lo
	}
	if c.NextIfSeparator(',') {
		if !c.isExtensionMarker() {
			tok, err := c.Next()
			if err != nil {
				return b, err
			}
			return b, errUnexpectedToken(tok)
		}
		c.pos += 3
		b.extensible = true
	}
	return b, nil
}

// rangeBound returns nil for MIN and MAX.
func rangeBound(tok lexer.Token) (*model.Leaf[unresolved, int64], error) {
	if !tok.IsText() {
		return nil, errInvalidRangeValue(tok)
	}
	switch tok.Text {
	case "MIN", "MAX":
		return nil, nil
	}
	if isValueReference(tok.Text) {
		l := model.Ref[int64](tok.Text)
		return &l, nil
	}
	n, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return nil, errInvalidRangeValue(tok)
	}
	l := model.Lit[unresolved](n)
	return &l, nil
}

// sizeBound returns nil for MIN and MAX.
func sizeBound(tok lexer.Token) (*model.Leaf[unresolved, uint64], error) {
	if !tok.IsText() {
		return nil, errInvalidRangeValue(tok)
	}
	switch tok.Text {
	case "MIN", "MAX":
		return nil, nil
	}
	if isValueReference(tok.Text) {
		l := model.Ref[uint64](tok.Text)
		return &l, nil
	}
	n, err := strconv.ParseUint(tok.Text, 10, 64)
	if err != nil {
		return nil, errInvalidRangeValue(tok)
	}
	l := model.Lit[unresolved](n)
	return &l, nil
}
