package plate

import "strings"

// MinCorrectableLength is the shortest plate the Corrector touches.
const MinCorrectableLength = 7

// Substitution replaces confusable glyphs at fixed rune positions.
type Substitution struct {
	Positions []int
	Replace   map[rune]rune
}

// DefaultConfusions covers the series field, where OCR reads Q as 0 or O.
var DefaultConfusions = []Substitution{
	{
		Positions: []int{4, 5},
		Replace:   map[rune]rune{'0': 'Q', 'O': 'Q'},
	},
}

type Corrector struct {
	table []Substitution
}

// NewCorrector builds a Corrector over table. A nil table means
// DefaultConfusions.
func NewCorrector(table []Substitution) *Corrector {
	if table == nil {
		table = DefaultConfusions
	}
	return &Corrector{table: table}
}

// Correct upper-cases candidate and applies the substitution table when the
// result has at least MinCorrectableLength runes. Positions past the end are
// skipped.
func (c *Corrector) Correct(candidate string) string {
	upper := strings.ToUpper(candidate)
	runes := []rune(upper)
	if len(runes) < MinCorrectableLength {
		return upper
	}

	for _, sub := range c.table {
		for _, pos := range sub.Positions {
			if pos < 0 || pos >= len(runes) {
				continue
			}
			if to, ok := sub.Replace[runes[pos]]; ok {
				runes[pos] = to
			}
		}
	}

	return string(runes)
}
