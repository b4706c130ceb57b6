// Package dictation implements the spelling-recall loop offered once all
// words in a practice session are mastered: type each word from memory,
// see an alignment diff when wrong, and repeat the wrong subset until the
// queue drains.
package dictation

import (
	"strings"

	"github.com/samber/lo"

	"github.com/minqi/vocadrill/internal/content"
)

// Session runs one dictation pass-until-empty loop. Each round's wrong
// words become the next round's queue, so the active queue strictly
// shrinks and the loop always terminates.
type Session struct {
	queue []string
	index int

	wrongOrder []string
	wrongSet   map[string]bool

	all  []string
	done bool
}

// Outcome reports one spelling submission.
type Outcome struct {
	Correct bool
	// Diff aligns the user's input against Expected when Correct is false.
	Diff     []DiffOp
	Expected string
}

// New creates a session over the given words, de-duplicated and shuffled.
func New(words []string) *Session {
	uniq := lo.Uniq(lo.Filter(words, func(w string, _ int) bool { return w != "" }))
	queue := lo.Shuffle(append([]string(nil), uniq...))
	return &Session{
		queue:    queue,
		wrongSet: make(map[string]bool),
		all:      uniq,
		done:     len(uniq) == 0,
	}
}

// Current returns the word being dictated, or false when the session is over.
func (s *Session) Current() (string, bool) {
	if s.done || s.index >= len(s.queue) {
		return "", false
	}
	return s.queue[s.index], true
}

// Total is the size of the active queue; Position is the 1-based index
// into it, for progress display.
func (s *Session) Total() int { return len(s.queue) }

func (s *Session) Position() int {
	return min(s.index+1, len(s.queue))
}

// Submit checks a typed spelling against the current word. A match (case-
// insensitive, surrounding whitespace ignored, disambiguator suffix
// stripped) advances immediately. A mismatch records the word for the redo
// queue and holds position until Acknowledge is called.
func (s *Session) Submit(input string) Outcome {
	word, ok := s.Current()
	if !ok {
		return Outcome{}
	}

	expected := strings.ToLower(strings.TrimSpace(content.CleanWord(word)))
	user := strings.ToLower(strings.TrimSpace(input))

	if user == expected {
		s.advance()
		return Outcome{Correct: true, Expected: expected}
	}

	if !s.wrongSet[word] {
		s.wrongSet[word] = true
		s.wrongOrder = append(s.wrongOrder, word)
	}
	return Outcome{Correct: false, Diff: LCSDiff(user, expected), Expected: expected}
}

// Acknowledge advances past a wrong answer after the learner has seen the
// diff.
func (s *Session) Acknowledge() {
	if _, ok := s.Current(); !ok {
		return
	}
	s.advance()
}

func (s *Session) advance() {
	s.index++
	if s.index < len(s.queue) {
		return
	}
	// End of pass: the wrong subset becomes the next queue.
	if len(s.wrongOrder) > 0 {
		s.queue = s.wrongOrder
		s.wrongOrder = nil
		s.wrongSet = make(map[string]bool)
		s.index = 0
		return
	}
	s.done = true
}

// Done reports whether every word has been spelled correctly at least once
// in a final pass.
func (s *Session) Done() bool { return s.done }

// Words returns the full dictation set, reported once as the
// dictation-complete set no matter how many redo rounds each word took.
func (s *Session) Words() []string {
	return append([]string(nil), s.all...)
}
