// Package plate selects, repairs and validates registration plate strings
// read by OCR.
package plate

import "regexp"

// GrammarPattern is two letters, one or two digits, one to three letters and
// four digits, with no separators.
const GrammarPattern = `^[A-Z]{2}[0-9]{1,2}[A-Z]{1,3}[0-9]{4}$`

// Grammar is shared by IsValid and the strict pass of SelectCandidate.
var Grammar = regexp.MustCompile(GrammarPattern)

// IsValid reports whether plate matches Grammar in full. The input is not
// normalized.
func IsValid(plate string) bool {
	return Grammar.MatchString(plate)
}
