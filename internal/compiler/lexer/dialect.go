package lexer

import "github.com/seen-lang/seen/internal/compiler/script"

// glyphs holds the per-dialect trigger characters. Token kinds stay
// canonical: the Arabic division glyph still lexes as token.SLASH, and
// so on for the whole operator set.
type glyphs struct {
	slash       rune // division, comment introducer, set-operator prefix
	backslash   rune // the mirror glyph: set-operator prefix only
	stringOpen  rune
	stringClose rune
	charOpen    rune
	charClose   rune
	escape      rune // escape introducer inside string/char literals
	decimalSep  rune // fractional-part trigger inside numerics
	endWord     string
}

var glyphsEn = glyphs{
	slash:       '/',
	backslash:   '\\',
	stringOpen:  '"',
	stringClose: '"',
	charOpen:    '\'',
	charClose:   '\'',
	escape:      '\\',
	decimalSep:  '.',
	endWord:     "end",
}

var glyphsAr = glyphs{
	slash:       '\\',
	backslash:   '/',
	stringOpen:  '«',
	stringClose: '»',
	charOpen:    '‹',
	charClose:   '›',
	escape:      '/',
	decimalSep:  ',',
	endWord:     "اه",
}

func glyphsFor(d script.Dialect) glyphs {
	if d == script.Arabic {
		return glyphsAr
	}
	return glyphsEn
}

// tatweel is the Arabic elongation character, purely cosmetic inside
// identifiers.
const tatweel = 'ـ'

func isWesternDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isEasternDigit(ch rune) bool {
	return ch >= '٠' && ch <= '٩'
}

func isAnyDigit(ch rune) bool {
	return isWesternDigit(ch) || isEasternDigit(ch)
}
