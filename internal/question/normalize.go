package question

import "strings"

// answerPunct is stripped from reordering answers before comparison.
// Hyphens and apostrophes are kept: they carry meaning inside tokens.
const answerPunct = ".,/#!$%^&*;:{}=`~()"

// NormalizeAnswer canonicalizes a sentence-reordering answer for
// comparison: block separators become spaces, punctuation is stripped,
// everything is lowercased and whitespace-collapsed. Idempotent.
func NormalizeAnswer(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, BlockSeparator, " ")
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(answerPunct, r) {
			return -1
		}
		return r
	}, s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
