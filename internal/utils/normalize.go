package utils

import (
	"strings"
)

// accentReplacer folds the Portuguese accented characters that appear in
// user utterances and listing data. The set is fixed; full Unicode
// normalization is not needed for pt-BR real-estate vocabulary.
var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
	"Á", "a", "À", "a", "Â", "a", "Ã", "a",
	"É", "e", "Ê", "e",
	"Í", "i",
	"Ó", "o", "Ô", "o", "Õ", "o",
	"Ú", "u", "Ü", "u",
	"Ç", "c",
)

// Fold lowercases s and strips pt-BR accents, so that "Viamão" and
// "viamao" compare equal. All lexicon patterns are written in folded form.
func Fold(s string) string {
	return accentReplacer.Replace(strings.ToLower(s))
}

// ContainsFold reports whether haystack contains needle, comparing in
// folded form.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseDecimal parses a number that may use a comma as the decimal
// separator ("1,5" == "1.5"). Returns 0 and false on malformed input.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	var v float64
	var frac float64
	var seenDot bool
	div := 1.0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			if seenDot {
				div *= 10
				frac += float64(r-'0') / div
			} else {
				v = v*10 + float64(r-'0')
			}
		case r == '.' && !seenDot:
			seenDot = true
		default:
			return 0, false
		}
	}
	return v + frac, true
}
