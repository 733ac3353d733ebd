// Package catalog turns raw catalogue page text into storefront products.
package catalog

import (
	"strings"
	"unicode"

	"github.com/spherical/catalog-extractor/internal/domain"
)

var (
	nameKeywords = []string{"statue", "figurine", "sculpture", "piece"}
	specUnits    = []string{"kg", "cm", "mm", "gm"}
)

const currencyGlyph = "₹"

// ExtractFragments scans every page for a product name line, a price line and a
// specification line. Pages where none of the three are found produce no fragment.
func ExtractFragments(pages []domain.PageRecord) []domain.Fragment {
	fragments := make([]domain.Fragment, 0, len(pages))

	for _, page := range pages {
		fragment, ok := extractFragment(page)
		if ok {
			fragments = append(fragments, fragment)
		}
	}

	return fragments
}

func extractFragment(page domain.PageRecord) (domain.Fragment, bool) {
	var f domain.Fragment

	for _, line := range strings.Split(page.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if f.Name == "" && containsAny(lower, nameKeywords) {
			f.Name = line
		}

		if f.PriceText == "" && (strings.Contains(line, currencyGlyph) || hasDigit(line)) {
			f.PriceText = line
		}

		if f.Specifications == "" && containsAny(lower, specUnits) {
			f.Specifications = line
		}
	}

	if f.Name == "" && f.PriceText == "" && f.Specifications == "" {
		return f, false
	}

	f.Page = page.PageNumber
	f.FullText = page.Text
	return f, true
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// digitSymbols are the non-decimal characters that still count as digits:
// superscripts, subscripts and circled or parenthesised numerals one to nine.
var digitSymbols = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00b2, Hi: 0x00b3, Stride: 1},
		{Lo: 0x00b9, Hi: 0x00b9, Stride: 1},
		{Lo: 0x2070, Hi: 0x2070, Stride: 1},
		{Lo: 0x2074, Hi: 0x2079, Stride: 1},
		{Lo: 0x2080, Hi: 0x2089, Stride: 1},
		{Lo: 0x2460, Hi: 0x2468, Stride: 1},
		{Lo: 0x2474, Hi: 0x247c, Stride: 1},
		{Lo: 0x2488, Hi: 0x2490, Stride: 1},
		{Lo: 0x24ea, Hi: 0x24ea, Stride: 1},
		{Lo: 0x2776, Hi: 0x277e, Stride: 1},
		{Lo: 0x2780, Hi: 0x2788, Stride: 1},
		{Lo: 0x278a, Hi: 0x2792, Stride: 1},
	},
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) || unicode.Is(digitSymbols, r) {
			return true
		}
	}
	return false
}
