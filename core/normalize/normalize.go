// Package normalize rewrites noisy, mixed-width company names and license
// numbers into the half-width form used to build search queries.
package normalize

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// fullWidthOffset is the distance between the full-width forms block
// (U+FF01..U+FF5E) and printable ASCII.
const fullWidthOffset = 0xFEE0

const ideographicSpace = '　'

var (
	queryMapper   = runes.Map(halfWidthRune)
	licenseMapper = runes.Map(func(r rune) rune { return dashRune(halfWidthRune(r)) })
)

// ForQuery converts full-width Latin letters and digits to ASCII and the
// ideographic space to a regular space. Everything else is left alone.
func ForQuery(text string) string {
	return apply(queryMapper, text)
}

// LicenseNumberForQuery is ForQuery plus dash folding: full-width and long
// dash variants become '-', runs of whitespace collapse to one space, and the
// result is trimmed.
func LicenseNumberForQuery(licenseNumber string) string {
	mapped := apply(licenseMapper, licenseNumber)
	return strings.Join(strings.Fields(mapped), " ")
}

func apply(t transform.Transformer, text string) string {
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

func halfWidthRune(r rune) rune {
	switch {
	case r == ideographicSpace:
		return ' '
	case r >= 'Ａ' && r <= 'Ｚ', r >= 'ａ' && r <= 'ｚ', r >= '０' && r <= '９':
		return r - fullWidthOffset
	}
	return r
}

func dashRune(r rune) rune {
	switch r {
	case '－', 'ー', '−', '–', '―':
		return '-'
	}
	return r
}
