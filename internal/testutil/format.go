package testutil

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/golangsnmp/goasn1/model"
)

// FormatRange formats a value range as ASN.1 writes it, e.g. "(0..7)"
// or "(MIN..10, ...)". A nil range is "()".
func FormatRange(r *model.Range[model.Resolved]) string {
	if r == nil {
		return "()"
	}
	lo, hi := "MIN", "MAX"
	if r.Min != nil {
		lo = fmt.Sprint(model.Value(*r.Min))
	}
	if r.Max != nil {
		hi = fmt.Sprint(model.Value(*r.Max))
	}
	return "(" + bounds(lo, hi, r.Extensible) + ")"
}

// FormatSize formats a SIZE constraint, e.g. "(SIZE(1..16))".
func FormatSize(s *model.Size[model.Resolved]) string {
	if s == nil {
		return "()"
	}
	lo, hi := "MIN", "MAX"
	if s.Min != nil {
		lo = fmt.Sprint(model.Value(*s.Min))
	}
	if s.Max != nil {
		hi = fmt.Sprint(model.Value(*s.Max))
	}
	return "(SIZE(" + bounds(lo, hi, s.Extensible) + "))"
}

func bounds(lo, hi string, ext bool) string {
	s := lo + ".." + hi
	if lo == hi {
		s = lo
	}
	if ext {
		s += ", ..."
	}
	return s
}

// FormatEnum formats the items of an ENUMERATED type, e.g.
// "{ red, green(5), ..., blue }".
func FormatEnum(e *model.Enumerated[model.Resolved]) string {
	if len(e.Items) == 0 {
		return "{}"
	}
	var parts []string
	for i, item := range e.Items {
		if item.Number != nil {
			parts = append(parts, fmt.Sprintf("%s(%d)", item.Name, *item.Number))
		} else {
			parts = append(parts, item.Name)
		}
		if e.ExtensionAfter != nil && *e.ExtensionAfter == i {
			parts = append(parts, "...")
		}
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

var spaces = regexp.MustCompile(`[ \t]+`)

// Squash collapses runs of spaces and tabs, so assertions can match single
// declarations of gofmt-aligned source.
func Squash(src []byte) string {
	return spaces.ReplaceAllString(string(src), " ")
}

// Diff returns a unified diff of want and got, or "" when they are equal.
func Diff(want, got string) string {
	d, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	return d
}
