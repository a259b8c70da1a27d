package scoring

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// similarityThreshold is the containment ratio above which a typed answer is
// accepted.
const similarityThreshold = 0.9

func isJapanese(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || // hiragana
		(r >= 0x30A0 && r <= 0x30FF) || // katakana
		(r >= 0x4E00 && r <= 0x9FAF) // CJK ideographs
}

// normalize drops everything except word characters (letters, numbers of
// any kind, underscore) and Japanese script, then lowercases.
func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || isJapanese(r) {
			return r
		}
		return -1
	}, s)
	// Casers carry state, so each call gets its own.
	return cases.Lower(language.Und).String(s)
}

// similarity is the share of the longer string covered by characters of the
// shorter one that occur anywhere in the longer. It is a containment check,
// not an edit distance, and is lenient for short strings.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	longer, shorter := ra, rb
	if len(rb) > len(ra) {
		longer, shorter = rb, ra
	}

	present := make(map[rune]bool, len(longer))
	for _, r := range longer {
		present[r] = true
	}
	common := 0
	for _, r := range shorter {
		if present[r] {
			common++
		}
	}
	return float64(common) / float64(len(longer))
}

// MatchText reports whether a typed answer matches the correct text after
// normalization, either exactly or with a similarity of at least 0.9.
func MatchText(answer, correct string) bool {
	a, c := normalize(answer), normalize(correct)
	if a == "" {
		return false
	}
	if a == c {
		return true
	}
	return similarity(a, c) >= similarityThreshold
}
