package practice

import (
	"github.com/samber/lo"

	"github.com/minqi/vocadrill/internal/question"
)

// MaxRoundSize caps how many words a round may contain.
const MaxRoundSize = 8

// learningWords returns the words still in StatusLearning, in stable item
// order so round composition is deterministic up to the final shuffle.
func (e *Engine) learningWords() []string {
	var out []string
	for _, it := range e.Items {
		if p, ok := e.Progress[it.Word]; ok && p.Status == StatusLearning {
			out = append(out, it.Word)
		}
	}
	return out
}

// nextRoundWords selects the words for the next round: every word whose
// last answer was incorrect comes first, then words whose last result was
// correct (or not yet answered) fill up to MaxRoundSize. If that somehow
// selects nothing while learning words remain, the first MaxRoundSize
// learning words are taken unconditionally.
func (e *Engine) nextRoundWords() []string {
	learning := e.learningWords()
	if len(learning) == 0 {
		return nil
	}

	incorrect := lo.Filter(learning, func(w string, _ int) bool {
		return e.Progress[w].LastResult == ResultIncorrect
	})
	rest := lo.Filter(learning, func(w string, _ int) bool {
		return e.Progress[w].LastResult != ResultIncorrect
	})

	round := incorrect
	for _, w := range rest {
		if len(round) >= MaxRoundSize {
			break
		}
		round = append(round, w)
	}

	if len(round) == 0 {
		round = learning
		if len(round) > MaxRoundSize {
			round = round[:MaxRoundSize]
		}
	}
	return round
}

// buildNextRound replaces the current round. When no learning words remain
// the session does not end directly: it raises the dictation offer.
func (e *Engine) buildNextRound() []Effect {
	words := e.nextRoundWords()
	if len(words) == 0 {
		e.Round = nil
		e.Index = 0
		e.Phase = PhaseDictationOffer
		return nil
	}

	round := lo.Map(words, func(w string, _ int) question.Question {
		return question.Build(e.itemsByWord[w], e.Progress[w].Stage, e.Items, e.Tier)
	})
	e.Round = lo.Shuffle(round)
	e.Index = 0
	e.resetQuestionFlags()
	return []Effect{PersistSnapshot{Snap: e.snapshot()}}
}

// restoreRound rebuilds a persisted round in its exact saved order. The
// saved order and index are what make a snapshot resumable, so no reshuffle
// happens here; questions themselves are rebuilt (options reshuffled) since
// they are ephemeral.
func (e *Engine) restoreRound(words []string, index int) bool {
	var round []question.Question
	for _, w := range words {
		it, ok := e.itemsByWord[w]
		if !ok {
			continue
		}
		p, ok := e.Progress[w]
		if !ok {
			continue
		}
		round = append(round, question.Build(it, p.Stage, e.Items, e.Tier))
	}
	if len(round) == 0 {
		return false
	}

	e.Round = round
	e.Index = min(max(index, 0), len(round)-1)
	e.resetQuestionFlags()
	return true
}
