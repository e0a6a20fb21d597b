package plate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"plate-service/internal/model"
)

// MinLooseLength is the shortest text the loose pass accepts.
const MinLooseLength = 8

// SelectCandidate picks the detection most likely to be the plate.
//
// Texts are normalized first. The first text matching Grammar wins. When none
// does, the set is scanned again from the start and the first text of at least
// MinLooseLength runes containing a digit is returned. A nil or empty set has
// no candidate.
func SelectCandidate(set *model.DetectionSet) (string, bool) {
	if set.Len() == 0 {
		return "", false
	}

	normalized := make([]string, len(set.Detections))
	for i, detection := range set.Detections {
		normalized[i] = Normalize(detection.Text)
	}

	for _, text := range normalized {
		if Grammar.MatchString(text) {
			return text, true
		}
	}

	for _, text := range normalized {
		if isPlateLike(text) {
			return text, true
		}
	}

	return "", false
}

func isPlateLike(text string) bool {
	if utf8.RuneCountInString(text) < MinLooseLength {
		return false
	}
	return strings.IndexFunc(text, unicode.IsDigit) >= 0
}
