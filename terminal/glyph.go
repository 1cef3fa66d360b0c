package terminal

import (
	"fmt"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ValidGlyph reports whether r occupies exactly one terminal column
func ValidGlyph(r rune) bool {
	return r != utf8.RuneError && runewidth.RuneWidth(r) == 1
}

// ParseGlyph converts a one-character string into a drawable glyph
func ParseGlyph(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("glyph %q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !ValidGlyph(r) {
		return 0, fmt.Errorf("glyph %q must occupy one column", s)
	}
	return r, nil
}
