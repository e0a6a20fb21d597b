package plate

import (
	"strings"
	"unicode"
)

// Normalize removes every whitespace rune and upper-cases the rest.
func Normalize(raw string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	return strings.ToUpper(stripped)
}
