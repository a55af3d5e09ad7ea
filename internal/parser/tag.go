package parser

import (
	"strconv"
	"strings"

	"github.com/golangsnmp/goasn1/internal/lexer"
	"github.com/golangsnmp/goasn1/tag"
)

// ParseTag parses the inside of "[...]": "UNIVERSAL n", "APPLICATION n",
// "PRIVATE n" (class keywords in any case) or a bare context-specific n.
func ParseTag(c *Cursor) (tag.Tag, error) {
	tok, err := c.Next()
	if err != nil {
		return tag.Tag{}, err
	}
	if !tok.IsText() {
		return tag.Tag{}, errNoText(tok)
	}

	var class tag.Class
	switch strings.ToUpper(tok.Text) {
	case "UNIVERSAL":
		class = tag.ClassUniversal
	case "APPLICATION":
		class = tag.ClassApplication
	case "PRIVATE":
		class = tag.ClassPrivate
	default:
		n, err := tagNumber(tok)
		if err != nil {
			return tag.Tag{}, err
		}
		return tag.ContextSpecific(n), nil
	}

	tok, err = c.Next()
	if err != nil {
		return tag.Tag{}, err
	}
	if !tok.IsText() {
		return tag.Tag{}, errInvalidTag(tok)
	}
	n, err := tagNumber(tok)
	if err != nil {
		return tag.Tag{}, err
	}
	return tag.Tag{Class: class, Number: n}, nil
}

func tagNumber(tok lexer.Token) (uint64, error) {
	n, err := strconv.ParseUint(tok.Text, 10, 64)
	if err != nil {
		return 0, errInvalidTag(tok)
	}
	return n, nil
}

// nextWithOptTag consumes the next token. If it opens a tag, the tag (and
// an IMPLICIT or EXPLICIT keyword after it) is consumed too and the token
// following it is returned.
func nextWithOptTag(c *Cursor) (lexer.Token, *tag.Tag, error) {
	tok, err := c.Next()
	if err != nil {
		return tok, nil, err
	}
	if !tok.SeparatorEq('[') {
		return tok, nil, nil
	}
	t, err := ParseTag(c)
	if err != nil {
		return tok, nil, err
	}
	if err := c.NextSeparator(']'); err != nil {
		return tok, nil, err
	}
	if !c.NextIfText("IMPLICIT") {
		c.NextIfText("EXPLICIT")
	}
	tok, err = c.Next()
	if err != nil {
		return tok, nil, err
	}
	return tok, &t, nil
}
