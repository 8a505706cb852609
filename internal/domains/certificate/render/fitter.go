package render

import (
	"math"
	"strings"
	"unicode"
)

// MeasureFunc reports the rendered width of text at the given font size.
type MeasureFunc func(text string, size float64) float64

// FitName fits a participant name into maxWidth. It first tries the name as
// is, then abbreviates middle names, and as a last resort shrinks the font.
//
// Abbreviation drops all-lowercase tokens (prepositions such as "de", "dos")
// and collapses each remaining middle token to its initial plus a period.
// It only applies when the filtered name still has a first name, a last name
// and at least one middle name; shorter names keep their text and only the
// font size changes.
//
// The returned text always measures within maxWidth at the returned size,
// up to the flooring of the shrunk size.
func FitName(name string, maxWidth, baseSize float64, measure MeasureFunc) (string, float64) {
	if measure(name, baseSize) <= maxWidth {
		return name, baseSize
	}

	parts := make([]string, 0, 8)
	for _, tok := range strings.Fields(name) {
		if !isLowerToken(tok) {
			parts = append(parts, tok)
		}
	}
	if len(parts) > 2 {
		abbreviated := make([]string, 0, len(parts))
		abbreviated = append(abbreviated, parts[0])
		for _, mid := range parts[1 : len(parts)-1] {
			abbreviated = append(abbreviated, string([]rune(mid)[0])+".")
		}
		abbreviated = append(abbreviated, parts[len(parts)-1])
		name = strings.Join(abbreviated, " ")
	}

	width := measure(name, baseSize)
	if width <= maxWidth {
		return name, baseSize
	}
	// Width scales linearly with font size, so the floored ratio always fits.
	return name, math.Floor(maxWidth * baseSize / width)
}

// isLowerToken reports whether the token has at least one letter and every
// letter is lower case.
func isLowerToken(tok string) bool {
	hasLetter := false
	for _, r := range tok {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
