package content

// Narration text heuristics. Exercise sentences mix English and Chinese;
// only clearly-English text is worth sending to the speech backend.

func countScripts(text string) (letters, han int) {
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z':
			letters++
		case r >= 0x4E00 && r <= 0x9FFF:
			han++
		}
	}
	return
}

// IsEnglishDominant reports whether text is clearly English: it has letters
// and at least twice as many as Han characters.
func IsEnglishDominant(text string) bool {
	letters, han := countScripts(text)
	return letters > 0 && letters >= han*2
}

// HanDominates reports whether Han characters outnumber Latin letters.
func HanDominates(text string) bool {
	letters, han := countScripts(text)
	return han > letters
}
