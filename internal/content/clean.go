package content

import "regexp"

// cleanWordRe captures the leading letters/spaces/hyphens of a word entry.
// Entries may carry a trailing disambiguator for homonyms, e.g. "bank②" or
// "lead (metal)", which must not take part in comparisons or narration.
var cleanWordRe = regexp.MustCompile(`^[a-zA-Z\s-]+`)

// CleanWord strips any trailing non-letter suffix from a word entry.
// Returns the input unchanged when it has no clean prefix.
func CleanWord(word string) string {
	if word == "" {
		return ""
	}
	if m := cleanWordRe.FindString(word); m != "" {
		return m
	}
	return word
}
