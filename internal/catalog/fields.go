package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Page text from MuPDF often separates numbers and units with U+00A0, so the
// separator accepts any Unicode space.
var (
	weightPattern    = regexp.MustCompile(`(?i)(\p{Nd}+)[\s\p{Zs}]*gram`)
	dimensionPattern = regexp.MustCompile(`(?i)(\p{Nd}+(?:\.\p{Nd}+)?)[\s\p{Zs}]*cm`)
)

// maxWeightGrams caps absurd weights read from the catalogue.
const maxWeightGrams = math.MaxInt32

// ParseWeight returns the grams of the first "<n> gram" mention in text.
// Zero grams is reported as no weight.
func ParseWeight(text string) (int, bool) {
	m := weightPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	grams, err := strconv.Atoi(asciiDigits(m[1]))
	if err != nil {
		// only a range error is possible on a run of digits
		grams = maxWeightGrams
	}
	if grams == 0 {
		return 0, false
	}
	return min(grams, maxWeightGrams), true
}

// ParseDimensions formats the first one or two "<n>cm" mentions in text as
// "<a>cm x <b>cm" or "<a>cm".
func ParseDimensions(text string) (string, bool) {
	matches := dimensionPattern.FindAllStringSubmatch(text, 2)
	switch len(matches) {
	case 0:
		return "", false
	case 1:
		return matches[0][1] + "cm", true
	default:
		return fmt.Sprintf("%scm x %scm", matches[0][1], matches[1][1]), true
	}
}

// asciiDigits rewrites decimal digits of any script as 0-9.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII || !unicode.IsDigit(r) {
			return r
		}
		// Decimal digit blocks are runs of ten starting at zero, some of them adjacent.
		start := r
		for unicode.IsDigit(start - 1) {
			start--
		}
		return '0' + (r-start)%10
	}, s)
}
