// Package pretest runs the recognition check that precedes a learning
// session. Every word is asked once as a word-selection question; words
// answered correctly skip the staged loop entirely.
package pretest

import (
	"github.com/samber/lo"

	"github.com/minqi/vocadrill/internal/content"
	"github.com/minqi/vocadrill/internal/question"
)

// Answer records the outcome for a single word.
type Answer struct {
	Word    string
	Correct bool
}

// Session walks once through the session's words in order. It never
// revisits a word.
type Session struct {
	items     []content.WordItem
	questions []question.Question
	index     int
	answers   []Answer
}

// New builds a pre-test over items, using the whole set as the
// distractor pool for each question.
func New(items []content.WordItem) *Session {
	qs := lo.Map(items, func(it content.WordItem, _ int) question.Question {
		return question.PreTest(it, items)
	})
	return &Session{items: items, questions: qs}
}

// Done reports whether every word has been answered.
func (s *Session) Done() bool { return s.index >= len(s.questions) }

// Current returns the active question. Calling it after Done is a
// programming error.
func (s *Session) Current() question.Question { return s.questions[s.index] }

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Total returns the number of words in the pre-test.
func (s *Session) Total() int { return len(s.questions) }

// Submit grades the answer for the current word and advances.
func (s *Session) Submit(answer string) Answer {
	q := s.questions[s.index]
	a := Answer{Word: q.Word, Correct: q.Check(answer)}
	s.answers = append(s.answers, a)
	s.index++
	return a
}

// Answers returns all recorded outcomes in question order.
func (s *Session) Answers() []Answer { return s.answers }

// Partition splits the session's items into the set that still needs
// the staged loop and the set recognized on the pre-test, preserving
// the original item order.
func (s *Session) Partition() (toLearn, skipped []content.WordItem) {
	correct := make(map[string]bool, len(s.answers))
	for _, a := range s.answers {
		if a.Correct {
			correct[a.Word] = true
		}
	}
	for _, it := range s.items {
		if correct[it.Word] {
			skipped = append(skipped, it)
		} else {
			toLearn = append(toLearn, it)
		}
	}
	return toLearn, skipped
}

// SkippedWords returns the words recognized on the pre-test, in item
// order.
func (s *Session) SkippedWords() []string {
	_, skipped := s.Partition()
	return lo.Map(skipped, func(it content.WordItem, _ int) string { return it.Word })
}
