// Package practice implements the word-practice round scheduler: a finite
// state machine that moves each word through four mastery stages, demotes
// on mistakes, and terminates into a dictation offer once every word is
// mastered. Transitions mutate only engine state and return effects; all
// I/O (reporting, persistence, narration) is dispatched by the caller.
package practice

import (
	"strings"

	"github.com/samber/lo"

	"github.com/minqi/vocadrill/internal/content"
	"github.com/minqi/vocadrill/internal/dictation"
	"github.com/minqi/vocadrill/internal/question"
)

// Phase is the session-level state.
type Phase int

const (
	// PhaseAnswering: a round is active and questions are being served.
	PhaseAnswering Phase = iota
	// PhaseDictationOffer: all words mastered; awaiting accept/decline.
	PhaseDictationOffer
	// PhaseDictation: the dictation sub-session is running.
	PhaseDictation
	// PhaseFinished: terminal.
	PhaseFinished
)

// Config assembles a new engine. Progress must cover exactly the words the
// session should drive; Items must carry a content record for each.
type Config struct {
	Mode      Mode
	Tier      string
	SessionID string
	Items     []content.WordItem
	Progress  map[string]*WordProgress

	// PretestSkipped are words opted out at the pre-test confirmation;
	// they re-enter at dictation. SkippedItems carries their content
	// records so the dictation cue and narration still resolve them.
	PretestSkipped []string
	SkippedItems   []content.WordItem

	// ReviewWords is the full review list (review mode only); dictation
	// covers all of it rather than just the relearned words.
	ReviewWords []string

	// ResumeRoundWords and ResumeQuestionIndex restore a persisted round
	// verbatim when non-empty.
	ResumeRoundWords    []string
	ResumeQuestionIndex int
}

// Engine drives one practice session. Not safe for concurrent use; the
// UI event loop is its only caller.
type Engine struct {
	Mode      Mode
	Tier      string
	SessionID string
	Items     []content.WordItem
	Progress  map[string]*WordProgress

	Round []question.Question
	Index int
	Phase Phase

	// HintShown and RedoActive implement the stage-3 anti-gaming rule:
	// solving with the translation hint visible forces a hint-free redo.
	HintShown  bool
	RedoActive bool

	PretestSkipped []string
	ReviewWords    []string

	Dictation *dictation.Session

	itemsByWord map[string]content.WordItem
}

// Feedback describes the outcome of one answer submission for display.
type Feedback struct {
	Correct bool

	// Redo is set when a correct stage-3 answer was produced with the hint
	// shown: progress is unchanged and the puzzle must be solved again.
	Redo bool

	// Mastered is set when this submission pushed the word to mastery.
	Mastered bool

	// Reordering marks a wrong stage-3 answer, which gets the alignment
	// view and a fetched explanation instead of the standard study card.
	Reordering bool

	Question      question.Question
	CorrectAnswer string
	UserAnswer    string
}

// New builds an engine and its first round. If the config carries a resume
// order the round is restored verbatim; otherwise a fresh shuffled round is
// built. The returned effects include the initial snapshot write.
func New(cfg Config) (*Engine, []Effect) {
	e := &Engine{
		Mode:           cfg.Mode,
		Tier:           cfg.Tier,
		SessionID:      cfg.SessionID,
		Items:          cfg.Items,
		Progress:       cfg.Progress,
		PretestSkipped: cfg.PretestSkipped,
		ReviewWords:    cfg.ReviewWords,
		itemsByWord:    content.ByWord(append(append([]content.WordItem(nil), cfg.Items...), cfg.SkippedItems...)),
	}
	if e.Progress == nil {
		e.Progress = make(map[string]*WordProgress)
	}

	if len(cfg.ResumeRoundWords) > 0 && e.restoreRound(cfg.ResumeRoundWords, cfg.ResumeQuestionIndex) {
		return e, []Effect{PersistSnapshot{Snap: e.snapshot()}}
	}
	return e, e.buildNextRound()
}

// Current returns the active question, or false outside PhaseAnswering.
func (e *Engine) Current() (question.Question, bool) {
	if e.Phase != PhaseAnswering || e.Index >= len(e.Round) {
		return question.Question{}, false
	}
	return e.Round[e.Index], true
}

// ShowHint marks the stage-3 translation hint visible. Refused while a
// hint-free redo is pending.
func (e *Engine) ShowHint() bool {
	if e.RedoActive {
		return false
	}
	e.HintShown = true
	return true
}

// HideHint hides the hint. The redo rule keys off visibility at submit
// time, so hiding before submitting avoids the redo.
func (e *Engine) HideHint() {
	e.HintShown = false
}

// Submit evaluates an answer for the current question and applies the
// stage transition: correct answers advance the stage by one (mastering at
// stage 5), incorrect answers demote to stage 1. The special case is a
// correct stage-3 answer with the hint shown: the same question is
// reshuffled and must be solved again hint-free, with no progress change.
func (e *Engine) Submit(answer string) (Feedback, []Effect) {
	q, ok := e.Current()
	if !ok {
		return Feedback{}, nil
	}

	correct := q.Check(answer)
	fb := Feedback{
		Correct:       correct,
		Question:      q,
		CorrectAnswer: q.Answer,
		UserAnswer:    answer,
	}

	if correct && q.Stage == 3 && e.HintShown && !e.RedoActive {
		e.Round[e.Index].Reshuffle()
		e.RedoActive = true
		e.HintShown = false
		fb.Redo = true
		return fb, nil
	}

	p := e.Progress[q.Word]
	var effects []Effect
	if correct {
		p.Advance()
		if p.Status == StatusMastered {
			fb.Mastered = true
			effects = append(effects, e.masteryEffect(q.Word))
		}
	} else {
		p.Demote()
		if q.Stage == 3 {
			fb.Reordering = true
		}
	}

	effects = append(effects, PersistSnapshot{Snap: e.snapshot()})
	return fb, effects
}

// masteryEffect maps a word reaching mastery to the mode-appropriate
// report: learn mode marks it permanently mastered, review mode records a
// failed review (the word needed relearning).
func (e *Engine) masteryEffect(word string) Effect {
	if e.Mode == ModeReview {
		return ReportReview{Word: word, Result: ReviewFail}
	}
	return ReportMastered{Words: []string{word}}
}

// Advance moves past the current question once its feedback has been
// dismissed: to the next question in the round, or into the next round
// (or the dictation offer) when the round is exhausted.
func (e *Engine) Advance() []Effect {
	if e.Phase != PhaseAnswering {
		return nil
	}
	e.resetQuestionFlags()
	if e.Index < len(e.Round)-1 {
		e.Index++
		return []Effect{PersistSnapshot{Snap: e.snapshot()}}
	}
	return e.buildNextRound()
}

func (e *Engine) resetQuestionFlags() {
	e.HintShown = false
	e.RedoActive = false
}

// AcceptDictation starts the dictation sub-session over the session's
// full word set: practiced words plus pre-test skips in learn mode, the
// whole review list plus skips in review mode.
func (e *Engine) AcceptDictation() {
	if e.Phase != PhaseDictationOffer {
		return
	}
	var base []string
	if e.Mode == ModeReview {
		base = e.ReviewWords
	} else {
		for _, it := range e.Items {
			if _, ok := e.Progress[it.Word]; ok {
				base = append(base, it.Word)
			}
		}
	}
	words := lo.Uniq(append(append([]string(nil), base...), e.PretestSkipped...))
	e.Dictation = dictation.New(words)
	e.Phase = PhaseDictation
	if e.Dictation.Done() {
		// Nothing to dictate; fall through to the terminal state without
		// reporting an empty set.
		e.Phase = PhaseFinished
	}
}

// DeclineDictation ends the session with no dictation-derived reports.
func (e *Engine) DeclineDictation() []Effect {
	if e.Phase != PhaseDictationOffer {
		return nil
	}
	e.Phase = PhaseFinished
	return []Effect{ClearSnapshot{}}
}

// FinishDictation reports the dictation-complete set and terminates the
// session. Call once the dictation session reports Done.
func (e *Engine) FinishDictation() []Effect {
	if e.Phase != PhaseDictation || e.Dictation == nil || !e.Dictation.Done() {
		return nil
	}
	e.Phase = PhaseFinished

	words := e.Dictation.Words()
	effects := make([]Effect, 0, len(words)+2)
	if e.Mode == ModeReview {
		for _, w := range words {
			effects = append(effects, ReportReview{Word: w, Result: ReviewPass})
		}
	} else if len(words) > 0 {
		effects = append(effects, ReportMastered{Words: words})
	}
	return append(effects, ClearSnapshot{})
}

// Item returns the content record behind a session word.
func (e *Engine) Item(word string) (content.WordItem, bool) {
	it, ok := e.itemsByWord[word]
	return it, ok
}

// MasteredCount counts session words that have reached mastery.
func (e *Engine) MasteredCount() int {
	n := 0
	for _, p := range e.Progress {
		if p.Status == StatusMastered {
			n++
		}
	}
	return n
}

// Steps reports overall progress as completed/total stage steps: each word
// contributes four steps, one per stage cleared.
func (e *Engine) Steps() (done, total int) {
	total = len(e.Items) * (MasteryStage - 1)
	for _, p := range e.Progress {
		done += min(max(p.Stage-1, 0), MasteryStage-1)
	}
	return done, total
}

// NarrationFollowUp picks the sentence narrated after the word itself when
// auto-audio is on: the infer-meaning cue at stage 1, the canonical answer
// at stage 3, the synonym-replacement cue at stage 4, each only when the
// text is clearly English.
func (e *Engine) NarrationFollowUp(q question.Question) string {
	switch q.Stage {
	case 1:
		if ex, ok := q.Item.Exercise(content.ExerciseInferMeaning); ok {
			if content.IsEnglishDominant(ex.Sentence) && !content.HanDominates(ex.Sentence) {
				return ex.Sentence
			}
		}
	case 3:
		if ex, ok := q.Item.Exercise(content.ExerciseSentenceReordering); ok {
			ans := ex.SentenceAnswer.Select(e.Tier)
			return strings.ReplaceAll(ans, question.BlockSeparator, " ")
		}
	case 4:
		if ex, ok := q.Item.Exercise(content.ExerciseSynonymReplacement); ok {
			if content.IsEnglishDominant(ex.Sentence) && !content.HanDominates(ex.Sentence) {
				return ex.Sentence
			}
		}
	}
	return ""
}

func (e *Engine) snapshot() Snapshot {
	progress := make(map[string]WordProgress, len(e.Progress))
	for w, p := range e.Progress {
		progress[w] = *p
	}
	return Snapshot{
		SessionStatus: snapshotStatusLearning,
		SessionID:     e.SessionID,
		Mode:          e.Mode,
		Tier:          e.Tier,
		Items:         e.Items,
		Progress:      progress,
		RoundWords: lo.Map(e.Round, func(q question.Question, _ int) string {
			return q.Word
		}),
		QuestionIndex: e.Index,
	}
}

// FromSnapshot rebuilds an engine from a persisted snapshot, restoring the
// exact round order and position.
func FromSnapshot(snap Snapshot, pretestSkipped, reviewWords []string) (*Engine, []Effect) {
	progress := make(map[string]*WordProgress, len(snap.Progress))
	for w, p := range snap.Progress {
		cp := p
		progress[w] = &cp
	}
	return New(Config{
		Mode:                snap.Mode,
		Tier:                snap.Tier,
		SessionID:           snap.SessionID,
		Items:               snap.Items,
		Progress:            progress,
		PretestSkipped:      pretestSkipped,
		ReviewWords:         reviewWords,
		ResumeRoundWords:    snap.RoundWords,
		ResumeQuestionIndex: snap.QuestionIndex,
	})
}
