// Package question turns a word and its mastery stage into a renderable
// question: multiple-choice options at stages 1, 2 and 4, a scramble
// puzzle at stage 3. All selection and merge logic lives here so the
// round scheduler stays a pure state machine.
package question

import (
	"strings"

	"github.com/samber/lo"

	"github.com/minqi/vocadrill/internal/content"
)

// Distractor counts per question flavor.
const (
	definitionDistractors = 3
	wordDistractors       = 6
)

// Question is an ephemeral, renderable question derived from a WordItem
// and its current stage. Rebuilt every round; never persisted.
type Question struct {
	Word  string
	Stage int
	Item  content.WordItem

	// Options holds the shuffled choices for stages 1, 2 and 4.
	Options []string

	// Scrambled holds the shuffled puzzle blocks for stage 3. Tokens merged
	// into one block are joined with BlockSeparator.
	Scrambled []string

	// Answer is the canonical correct answer: the Chinese definition at
	// stages 1/2, the tier-resolved answer sentence at stage 3, the word
	// itself at stage 4.
	Answer string
}

// Build constructs the question for item at the given stage.
// Stage→type mapping is fixed:
//
//	1: multiple-choice definition, cued by the infer-meaning sentence
//	2: multiple-choice definition, word only
//	3: sentence-reordering puzzle
//	4: multiple-choice reverse lookup ("which word is it?")
func Build(item content.WordItem, stage int, pool []content.WordItem, tier string) Question {
	q := Question{Word: item.Word, Stage: stage, Item: item}

	switch stage {
	case 1, 2:
		q.Answer = item.Definition.CN
		opts := GenerateDistractors(item, pool, definitionDistractors, KindDefinition)
		q.Options = lo.Shuffle(append(opts, q.Answer))
	case 3:
		ex, _ := item.Exercise(content.ExerciseSentenceReordering)
		q.Answer = ex.SentenceAnswer.Select(tier)
		tokens := strings.Fields(strings.TrimSpace(q.Answer))
		if len(tokens) > MaxScrambleBlocks {
			tokens = MergeTokens(tokens, item.Word, MaxScrambleBlocks)
		}
		q.Scrambled = lo.Shuffle(tokens)
	case 4:
		q.Answer = item.Word
		opts := GenerateDistractors(item, pool, wordDistractors, KindWord)
		q.Options = lo.Shuffle(append(opts, q.Answer))
	}

	return q
}

// PreTest builds the stage-4 assessment question used before a session.
func PreTest(item content.WordItem, pool []content.WordItem) Question {
	return Build(item, 4, pool, "")
}

// Check evaluates a submitted answer against this question's stage rules.
func (q Question) Check(answer string) bool {
	switch q.Stage {
	case 1, 2:
		return answer == q.Answer
	case 3:
		return NormalizeAnswer(answer) == NormalizeAnswer(q.Answer)
	case 4:
		return strings.EqualFold(
			strings.TrimSpace(content.CleanWord(answer)),
			strings.TrimSpace(content.CleanWord(q.Word)),
		)
	}
	return false
}

// Reshuffle rearranges the scramble blocks in place. Used when a stage-3
// question must be solved again without the translation hint.
func (q *Question) Reshuffle() {
	q.Scrambled = lo.Shuffle(q.Scrambled)
}

// HintText resolves the Chinese translation hint for a stage-3 question:
// the tiered answer translation when present, otherwise the translation of
// the sample sentence matching the canonical answer, otherwise the first
// sample translation. Empty when nothing fits — the hint is then unavailable.
func (q Question) HintText(tier string) string {
	ex, ok := q.Item.Exercise(content.ExerciseSentenceReordering)
	if !ok {
		return ""
	}
	if cn := ex.SentenceAnswerCN.Select(tier); strings.TrimSpace(cn) != "" {
		return strings.TrimSpace(cn)
	}

	ans := NormalizeAnswer(ex.SentenceAnswer.Select(tier))
	if ans != "" {
		for _, s := range q.Item.SampleSentences {
			sen := NormalizeAnswer(s.Sentence)
			if sen == "" {
				continue
			}
			if sen == ans || strings.Contains(sen, ans) || strings.Contains(ans, sen) {
				if t := strings.TrimSpace(s.Translation); t != "" {
					return t
				}
			}
		}
		for _, s := range q.Item.SampleSentences {
			if t := strings.TrimSpace(s.Translation); t != "" {
				return t
			}
		}
	}
	return ""
}
