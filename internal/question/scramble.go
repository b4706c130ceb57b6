package question

import "strings"

// BlockSeparator joins tokens that were merged into one scramble block.
// Display and answer normalization both treat it as a space.
const BlockSeparator = "_"

// MaxScrambleBlocks caps how many blocks a sentence-reordering puzzle may
// present. Longer sentences are merged down to this bound.
const MaxScrambleBlocks = 10

// punctBoundaryPenalty makes merges across punctuation a last resort:
// it dwarfs any plausible combined character length.
const punctBoundaryPenalty = 1000

var blockPunct = map[rune]bool{
	',': true, '.': true, ';': true, ':': true, '!': true, '?': true,
	'，': true, '。': true, '；': true, '：': true, '！': true, '？': true,
	'…': true, '—': true, '(': true, ')': true, '[': true, ']': true,
	'{': true, '}': true, '"': true, '\'': true, '`': true,
}

// tokenCore strips non-alphanumeric runes from both ends and lowercases,
// so "apple," and "Apple" compare equal to the target word.
func tokenCore(tok string) string {
	return strings.ToLower(strings.TrimFunc(tok, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}))
}

func endsWithPunct(block []string) bool {
	if len(block) == 0 {
		return false
	}
	last := []rune(block[len(block)-1])
	return len(last) > 0 && blockPunct[last[len(last)-1]]
}

func startsWithPunct(block []string) bool {
	if len(block) == 0 {
		return false
	}
	first := []rune(block[0])
	return len(first) > 0 && blockPunct[first[0]]
}

func mergeCost(left, right []string) int {
	cost := 0
	for _, t := range left {
		cost += len(tokenCore(t))
	}
	for _, t := range right {
		cost += len(tokenCore(t))
	}
	if endsWithPunct(left) || startsWithPunct(right) {
		cost += punctBoundaryPenalty
	}
	return cost
}

// MergeTokens reduces tokens to at most max scramble blocks by repeatedly
// merging the cheapest adjacent pair. Tokens equal to the target word
// (case- and punctuation-insensitive) are protected: a protected block is
// never merged, so the target word always stands alone in the puzzle.
// Merged tokens are joined with BlockSeparator.
func MergeTokens(tokens []string, targetWord string, max int) []string {
	blocks := make([][]string, len(tokens))
	protected := make([]bool, len(tokens))
	targetCore := strings.ToLower(targetWord)
	for i, tok := range tokens {
		blocks[i] = []string{tok}
		protected[i] = tokenCore(tok) == targetCore
	}

	for len(blocks) > max {
		// Protection is block-level: a block is protected if any of its
		// tokens is.
		blockProt := make([]bool, len(blocks))
		idx := 0
		for i, b := range blocks {
			for k := range b {
				if protected[idx+k] {
					blockProt[i] = true
					break
				}
			}
			idx += len(b)
		}

		best, bestCost := -1, 0
		for i := 0; i < len(blocks)-1; i++ {
			if blockProt[i] || blockProt[i+1] {
				continue
			}
			c := mergeCost(blocks[i], blocks[i+1])
			if best < 0 || c < bestCost {
				best, bestCost = i, c
			}
		}
		if best < 0 {
			break // everything mergeable is protected
		}

		merged := append(blocks[best], blocks[best+1]...)
		blocks = append(blocks[:best+1], blocks[best+2:]...)
		blocks[best] = merged
	}

	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = strings.Join(b, BlockSeparator)
	}
	return out
}
