package rust

import "strings"

// toWesternNum normalises a numeric lexeme to Western digits and the
// dot decimal separator; Eastern-Arabic digits and the Arabic decimal
// comma never reach the emitted source.
func toWesternNum(lexeme string) string {
	var b strings.Builder
	for _, ch := range lexeme {
		switch {
		case ch >= '٠' && ch <= '٩':
			b.WriteRune('0' + (ch - '٠'))
		case ch == ',':
			b.WriteRune('.')
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}
