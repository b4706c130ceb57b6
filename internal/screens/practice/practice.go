// Package practice is the screen that drives the staged learning loop:
// it serves the engine's questions, shows feedback and study cards,
// narrates answers, and hands over to dictation when every word is
// mastered.
package practice

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/samber/lo"

	"github.com/minqi/vocadrill/internal/audio"
	"github.com/minqi/vocadrill/internal/content"
	prac "github.com/minqi/vocadrill/internal/practice"
	"github.com/minqi/vocadrill/internal/question"
	"github.com/minqi/vocadrill/internal/router"
	"github.com/minqi/vocadrill/internal/screen"
	"github.com/minqi/vocadrill/internal/screens"
	"github.com/minqi/vocadrill/internal/screens/dictation"
	"github.com/minqi/vocadrill/internal/screens/summary"
	"github.com/minqi/vocadrill/internal/ui/components"
	"github.com/minqi/vocadrill/internal/ui/layout"
)

// PracticeScreen runs one practice session against the engine.
type PracticeScreen struct {
	deps screens.Deps
	eng  *prac.Engine

	// pendingEffects are dispatched on Init when the engine was built
	// by the caller; loader builds it asynchronously when resuming a
	// snapshot.
	pendingEffects []prac.Effect
	loader         tea.Cmd

	autoAudio bool
	mc        components.MultiChoice
	picker    components.BlockPicker
	hintText  string

	feedback    *prac.Feedback
	explanation string

	narrating   bool
	narSeq      int
	audioCancel context.CancelFunc

	loading  bool
	loadNote string
	errMsg   string
	emptyMsg string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.HeaderStatsProvider = (*PracticeScreen)(nil)

// HeaderStats feeds the session tier and mastered count to the header.
func (s *PracticeScreen) HeaderStats() (string, int) {
	if s.eng == nil {
		return "", 0
	}
	return s.eng.Tier, s.eng.MasteredCount()
}

// New creates a practice screen over a prebuilt engine (learn mode,
// straight from the pre-test).
func New(deps screens.Deps, eng *prac.Engine, effects []prac.Effect) *PracticeScreen {
	s := &PracticeScreen{deps: deps, eng: eng, pendingEffects: effects}
	s.autoAudio, _ = deps.Store.AutoAudio()
	s.setupQuestion()
	return s
}

// NewResume creates a practice screen that restores a persisted
// session snapshot.
func NewResume(deps screens.Deps, snap prac.Snapshot) *PracticeScreen {
	s := &PracticeScreen{deps: deps, loading: true, loadNote: "Restoring your session..."}
	s.autoAudio, _ = deps.Store.AutoAudio()
	s.loader = func() tea.Msg {
		if len(snap.Items) == 0 {
			return engineReadyMsg{empty: true}
		}
		// A resumed review session rebuilds its dictation set from the
		// snapshot items; pre-test skips are not persisted.
		var reviewWords []string
		if snap.Mode == prac.ModeReview {
			for _, it := range snap.Items {
				reviewWords = append(reviewWords, it.Word)
			}
		}
		eng, effects := prac.FromSnapshot(snap, nil, reviewWords)
		return engineReadyMsg{eng: eng, effects: effects}
	}
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.deps.DispatchEffects(s.pendingEffects)}
	if s.loader != nil {
		cmds = append(cmds, s.loader)
	}
	return tea.Batch(cmds...)
}

func (s *PracticeScreen) Title() string {
	if s.eng != nil && s.eng.Mode == prac.ModeReview {
		return "Review"
	}
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "" || s.emptyMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.eng == nil:
		return nil
	case s.eng.Phase == prac.PhaseDictationOffer:
		return []layout.KeyHint{
			{Key: "Y", Description: "Start dictation"},
			{Key: "N", Description: "Finish without it"},
		}
	case s.narrating:
		return []layout.KeyHint{
			{Key: "S", Description: "Skip"},
			{Key: "R", Description: "Listen again"},
		}
	case s.feedback != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	default:
		q, ok := s.eng.Current()
		if ok && q.Stage == 3 {
			hints := []layout.KeyHint{
				{Key: "←→", Description: "Pick block"},
				{Key: "Enter", Description: "Place / submit"},
				{Key: "Backspace", Description: "Undo"},
				{Key: "H", Description: "Hint"},
			}
			return hints
		}
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
		}
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case engineReadyMsg:
		return s.handleEngineReady(msg)

	case explanationMsg:
		if s.feedback != nil && s.feedback.Reordering && msg.word == s.feedback.Question.Word {
			s.explanation = msg.text
		}
		return s, nil

	case narrationDoneMsg:
		if s.narrating && msg.seq == s.narSeq {
			s.narrating = false
			return s, s.advanceQuestion()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleEngineReady(msg engineReadyMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	switch {
	case msg.err != nil:
		s.errMsg = msg.err.Error()
		return s, nil
	case msg.empty:
		s.emptyMsg = "This session has nothing left to practice."
		return s, nil
	}
	s.eng = msg.eng
	s.setupQuestion()
	return s, s.deps.DispatchEffects(msg.effects)
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" || s.emptyMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.loading || s.eng == nil {
		return s, nil
	}

	if s.eng.Phase == prac.PhaseDictationOffer {
		switch key {
		case "y", "Y", "enter":
			return s.acceptDictation()
		case "n", "N":
			return s.declineDictation()
		}
		return s, nil
	}

	if s.narrating {
		switch key {
		case "s", "S":
			s.stopNarration()
			return s, s.advanceQuestion()
		case "r", "R":
			if s.audioCancel != nil {
				s.audioCancel()
			}
			return s, s.startNarration()
		}
		return s, nil
	}

	if s.feedback != nil {
		return s.dismissFeedback()
	}

	q, ok := s.eng.Current()
	if !ok {
		return s, nil
	}

	if q.Stage == 3 {
		switch key {
		case "h", "H":
			s.toggleHint(q)
			return s, nil
		case "p", "P":
			s.deps.Audio.Play(content.CleanWord(q.Word))
			return s, nil
		case "enter":
			if s.picker.Complete() {
				return s.submit(s.picker.Value())
			}
		}
		var cmd tea.Cmd
		s.picker, cmd = s.picker.Update(msg)
		return s, cmd
	}

	// Narrating the target word at stage 4 would give the answer away.
	if (key == "p" || key == "P") && q.Stage != 4 {
		s.deps.Audio.Play(content.CleanWord(q.Word))
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if s.mc.Submitted {
		return s.submit(s.mc.Value())
	}
	return s, cmd
}

func (s *PracticeScreen) toggleHint(q question.Question) {
	if s.eng.HintShown {
		s.eng.HideHint()
		s.hintText = ""
		return
	}
	if !s.eng.ShowHint() {
		return
	}
	s.hintText = q.HintText(s.eng.Tier)
	if s.hintText == "" {
		// No translation exists for this sentence; don't count it
		// as a consumed hint.
		s.eng.HideHint()
	}
}

func (s *PracticeScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	fb, effects := s.eng.Submit(answer)
	s.feedback = &fb
	s.explanation = ""

	s.deps.Audio.Stop()
	cmds := []tea.Cmd{s.deps.DispatchEffects(effects)}
	if fb.Reordering {
		cmds = append(cmds, s.explainCmd(fb))
	}
	return s, tea.Batch(cmds...)
}

func (s *PracticeScreen) dismissFeedback() (screen.Screen, tea.Cmd) {
	fb := s.feedback

	if fb.Redo {
		// Same question, reshuffled, hint off.
		s.feedback = nil
		if q, ok := s.eng.Current(); ok {
			s.picker = components.NewBlockPicker(q.Scrambled)
		}
		s.hintText = ""
		return s, nil
	}

	if s.autoAudio && s.deps.Audio.Enabled() {
		return s, s.startNarration()
	}
	return s, s.advanceQuestion()
}

func (s *PracticeScreen) advanceQuestion() tea.Cmd {
	effects := s.eng.Advance()
	s.feedback = nil
	s.explanation = ""
	s.hintText = ""
	if s.eng.Phase == prac.PhaseAnswering {
		s.setupQuestion()
	}
	return s.deps.DispatchEffects(effects)
}

func (s *PracticeScreen) setupQuestion() {
	if s.eng == nil {
		return
	}
	q, ok := s.eng.Current()
	if !ok {
		return
	}
	s.hintText = ""
	if q.Stage == 3 {
		s.picker = components.NewBlockPicker(q.Scrambled)
		return
	}
	opts := q.Options
	if q.Stage == 4 {
		// Stage-4 options are words; hide disambiguators per the
		// display setting. Checking cleans both sides, so a cleaned
		// selection still matches the raw answer.
		opts = lo.Map(opts, func(o string, _ int) string { return s.deps.DisplayWord(o) })
	}
	s.mc = components.NewMultiChoice("", opts)
}

// startNarration narrates the answered word and its follow-up sentence,
// holding the screen until playback finishes or the learner skips.
func (s *PracticeScreen) startNarration() tea.Cmd {
	q := s.feedback.Question
	s.narrating = true
	s.narSeq++
	seq := s.narSeq

	ctx, cancel := context.WithCancel(context.Background())
	s.audioCancel = cancel

	follow := s.eng.NarrationFollowUp(q)
	ctrl := s.deps.Audio
	word := content.CleanWord(q.Word)
	return func() tea.Msg {
		ctrl.PlayAndWait(ctx, word, audio.WordWait)
		if follow != "" && ctx.Err() == nil {
			ctrl.PlayAndWait(ctx, follow, audio.SentenceWait)
		}
		return narrationDoneMsg{seq: seq}
	}
}

func (s *PracticeScreen) stopNarration() {
	s.narrating = false
	if s.audioCancel != nil {
		s.audioCancel()
		s.audioCancel = nil
	}
	s.deps.Audio.Stop()
}

func (s *PracticeScreen) explainCmd(fb prac.Feedback) tea.Cmd {
	svc := s.deps.Explain
	word, user, correct := fb.Question.Word, fb.UserAnswer, fb.CorrectAnswer
	return func() tea.Msg {
		text := svc.Explain(context.Background(), word, user, correct)
		return explanationMsg{word: word, text: text}
	}
}

func (s *PracticeScreen) acceptDictation() (screen.Screen, tea.Cmd) {
	eng := s.eng
	eng.AcceptDictation()

	if eng.Phase == prac.PhaseDictation {
		deps := s.deps
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: dictation.New(deps, eng)}
		}
	}

	// Nothing to dictate; the session is already over.
	return s.finish(summary.Stats{
		Mode:     eng.Mode,
		Tier:     eng.Tier,
		Mastered: eng.MasteredCount(),
	}, []prac.Effect{prac.ClearSnapshot{}})
}

func (s *PracticeScreen) declineDictation() (screen.Screen, tea.Cmd) {
	eng := s.eng
	effects := eng.DeclineDictation()
	return s.finish(summary.Stats{
		Mode:              eng.Mode,
		Tier:              eng.Tier,
		Mastered:          eng.MasteredCount(),
		DictationDeclined: true,
	}, effects)
}

func (s *PracticeScreen) finish(stats summary.Stats, effects []prac.Effect) (screen.Screen, tea.Cmd) {
	deps := s.deps
	return s, tea.Batch(
		deps.DispatchEffects(effects),
		deps.SaveLastSession(stats.Mode, stats.Tier),
		func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(deps, stats)}
		},
	)
}
