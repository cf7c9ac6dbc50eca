package htmlutil

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CellText returns the selection's text with non-printable runes dropped
// and whitespace normalized, the way portal table cells need to be read.
func CellText(sel *goquery.Selection) string {
	text := removeNonPrintable(sel.Text())
	return strings.Join(strings.Fields(text), " ")
}

// FindByIdSuffix filters the selection down to elements whose id
// attribute ends with the given suffix, compared case-insensitively.
// JSF prefixes ids with the enclosing form (ex: "FormIndex:datosSolicitud"),
// so an exact id match is never reliable.
func FindByIdSuffix(sel *goquery.Selection, suffix string) *goquery.Selection {
	suffix = strings.ToLower(suffix)
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		id := strings.ToLower(strings.TrimSpace(s.AttrOr("id", "")))
		return id != "" && strings.HasSuffix(id, suffix)
	})
}
