// Package pretest is the recognition check screen shown before a
// session: one word-selection question per word, then a confirmation
// of which recognized words stay skipped and which rejoin the loop.
package pretest

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/minqi/vocadrill/internal/audio"
	"github.com/minqi/vocadrill/internal/content"
	"github.com/minqi/vocadrill/internal/practice"
	pre "github.com/minqi/vocadrill/internal/pretest"
	"github.com/minqi/vocadrill/internal/question"
	"github.com/minqi/vocadrill/internal/router"
	"github.com/minqi/vocadrill/internal/screen"
	"github.com/minqi/vocadrill/internal/screens"
	practicescreen "github.com/minqi/vocadrill/internal/screens/practice"
	"github.com/minqi/vocadrill/internal/ui/components"
	"github.com/minqi/vocadrill/internal/ui/layout"
	"github.com/minqi/vocadrill/internal/ui/theme"
)

// PretestScreen runs the pre-test loop and the skip confirmation.
type PretestScreen struct {
	deps screens.Deps
	mode practice.Mode
	pt   *pre.Session
	tier string

	// reviewWords is the full due list (review mode); dictation covers
	// all of it regardless of pre-test outcomes.
	reviewWords []string

	loader   tea.Cmd
	loading  bool
	errMsg   string
	emptyMsg string

	// cur is the question being shown; it outlives the session's
	// cursor so the feedback reveal still has it after Submit.
	cur        question.Question
	mc         components.MultiChoice
	answered   *pre.Answer
	confirming bool

	// narrating holds the feedback overlay until the word's narration
	// command returns; narSeq discards stale completions.
	narrating bool
	narSeq    int

	// optedIn marks recognized words the learner pulled back into the
	// staged loop at the confirmation step.
	optedIn map[string]bool
	cursor  int

	autoAudio bool
}

var _ screen.Screen = (*PretestScreen)(nil)
var _ screen.KeyHintProvider = (*PretestScreen)(nil)

// narratedMsg reports that a correct answer's narration finished.
type narratedMsg struct {
	seq int
}

// readyMsg carries the fetched review material.
type readyMsg struct {
	items       []content.WordItem
	tier        string
	reviewWords []string
	empty       bool
	err         error
}

// New creates the pre-test screen over already-fetched learn items.
func New(deps screens.Deps, items []content.WordItem, tier string) *PretestScreen {
	s := &PretestScreen{
		deps:    deps,
		mode:    practice.ModeLearn,
		tier:    tier,
		optedIn: make(map[string]bool),
	}
	s.autoAudio, _ = deps.Store.AutoAudio()
	s.begin(items)
	return s
}

// NewReview creates a pre-test screen that first fetches the
// due-for-review list and its practice material.
func NewReview(deps screens.Deps) *PretestScreen {
	s := &PretestScreen{
		deps:    deps,
		mode:    practice.ModeReview,
		optedIn: make(map[string]bool),
		loading: true,
	}
	s.autoAudio, _ = deps.Store.AutoAudio()
	s.loader = func() tea.Msg {
		ctx := context.Background()
		words, err := deps.API.ReviewWords(ctx)
		if err != nil {
			return readyMsg{err: err}
		}
		if len(words) == 0 {
			return readyMsg{empty: true}
		}

		tier := deps.Config.Practice.Tier
		if sum, err := deps.API.Summary(ctx); err == nil && sum.Tier != "" {
			tier = sum.Tier
		}

		ps, err := deps.API.FetchPracticeSession(ctx, words, tier)
		if err != nil {
			return readyMsg{err: err}
		}
		if len(ps.Missing) > 0 {
			deps.Log.WithField("words", ps.Missing).Info("dropping review words without content")
			deps.API.CleanupWords(ctx, ps.Missing)
		}
		if len(ps.Items) == 0 {
			return readyMsg{empty: true}
		}
		return readyMsg{items: ps.Items, tier: tier, reviewWords: words}
	}
	return s
}

func (s *PretestScreen) begin(items []content.WordItem) {
	s.pt = pre.New(items)
	if !s.pt.Done() {
		s.cur = s.pt.Current()
		s.mc = s.newChoice(s.cur)
	} else {
		s.confirming = true
	}
}

// Options are words here; apply the display setting. Checking cleans
// both sides, so a cleaned selection still matches.
func (s *PretestScreen) newChoice(q question.Question) components.MultiChoice {
	opts := lo.Map(q.Options, func(o string, _ int) string { return s.deps.DisplayWord(o) })
	return components.NewMultiChoice("", opts)
}

func (s *PretestScreen) Init() tea.Cmd {
	return s.loader
}

func (s *PretestScreen) Title() string {
	return "Pre-Test"
}

func (s *PretestScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "" || s.emptyMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.loading:
		return nil
	case s.confirming:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Start practice"}}
		if _, known := s.pt.Partition(); len(known) > 0 {
			hints = append(hints,
				layout.KeyHint{Key: "↑↓", Description: "Select known word"},
				layout.KeyHint{Key: "Space", Description: "Practice it anyway"})
		}
		return hints
	case s.answered != nil:
		if s.narrating {
			return nil
		}
		return []layout.KeyHint{{Key: "any key", Description: "Next"}}
	default:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
		}
	}
}

func (s *PretestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if nmsg, ok := msg.(narratedMsg); ok {
		if nmsg.seq == s.narSeq {
			s.narrating = false
		}
		return s, nil
	}

	if rmsg, ok := msg.(readyMsg); ok {
		s.loading = false
		switch {
		case rmsg.err != nil:
			s.errMsg = rmsg.err.Error()
		case rmsg.empty:
			s.emptyMsg = "No words are due for review. Nice work."
		default:
			s.tier = rmsg.tier
			s.reviewWords = rmsg.reviewWords
			s.begin(rmsg.items)
		}
		return s, nil
	}

	kmsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return s, nil
	}

	if s.errMsg != "" || s.emptyMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.loading {
		return s, nil
	}

	if s.confirming {
		return s.handleConfirmKey(kmsg)
	}

	// Feedback overlay: any key moves on, once narration has finished.
	if s.answered != nil {
		if s.narrating {
			return s, nil
		}
		s.answered = nil
		if s.pt.Done() {
			s.confirming = true
		} else {
			s.cur = s.pt.Current()
			s.mc = s.newChoice(s.cur)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if s.mc.Submitted {
		ans := s.pt.Submit(s.mc.Value())
		s.answered = &ans
		if s.autoAudio && ans.Correct && s.deps.Audio.Enabled() {
			s.narrating = true
			s.narSeq++
			seq := s.narSeq
			ctrl := s.deps.Audio
			word := content.CleanWord(ans.Word)
			cmd = tea.Batch(cmd, func() tea.Msg {
				ctrl.PlayAndWait(context.Background(), word, audio.PreTestWait)
				return narratedMsg{seq: seq}
			})
		}
	}
	return s, cmd
}

func (s *PretestScreen) handleConfirmKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	_, known := s.pt.Partition()
	switch msg.String() {
	case "enter":
		return s.startPractice()
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(known)-1 {
			s.cursor++
		}
	case " ", "space":
		if s.cursor < len(known) {
			w := known[s.cursor].Word
			s.optedIn[w] = !s.optedIn[w]
		}
	}
	return s, nil
}

// startPractice applies the confirmation choices and moves into the
// staged loop. Recognized words left skipped are reported right away:
// mastered in learn mode, a passed review otherwise.
func (s *PretestScreen) startPractice() (screen.Screen, tea.Cmd) {
	toLearn, known := s.pt.Partition()
	var skipped []content.WordItem
	for _, it := range known {
		if s.optedIn[it.Word] {
			toLearn = append(toLearn, it)
		} else {
			skipped = append(skipped, it)
		}
	}
	learnWords := itemWords(toLearn)
	skipWords := itemWords(skipped)

	var eng *practice.Engine
	var effects []practice.Effect

	if s.mode == practice.ModeReview {
		// Skipped review words stay in the session pre-seeded mastered,
		// so an all-known pre-test degrades straight to the dictation
		// offer over the full review list.
		progress := practice.NewProgress(learnWords)
		for w, p := range practice.MasteredProgress(skipWords) {
			progress[w] = p
		}
		eng, effects = practice.New(practice.Config{
			Mode:        practice.ModeReview,
			Tier:        s.tier,
			SessionID:   uuid.New().String(),
			Items:       append(append([]content.WordItem(nil), toLearn...), skipped...),
			Progress:    progress,
			ReviewWords: s.reviewWords,
		})
		for _, w := range skipWords {
			effects = append(effects, practice.ReportReview{Word: w, Result: practice.ReviewPass})
		}
	} else {
		eng, effects = practice.New(practice.Config{
			Mode:           practice.ModeLearn,
			Tier:           s.tier,
			SessionID:      uuid.New().String(),
			Items:          toLearn,
			Progress:       practice.NewProgress(learnWords),
			PretestSkipped: skipWords,
			SkippedItems:   skipped,
		})
		if len(skipWords) > 0 {
			effects = append(effects, practice.ReportMastered{Words: skipWords})
		}
	}

	deps := s.deps
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: practicescreen.New(deps, eng, effects)}
	}
}

func itemWords(items []content.WordItem) []string {
	words := make([]string, len(items))
	for i, it := range items {
		words[i] = it.Word
	}
	return words
}

func (s *PretestScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n" + s.errMsg + "\n\nPress any key to go back")
	case s.emptyMsg != "":
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render("\n\n" + s.emptyMsg + "\n\nPress any key to go back")
	case s.loading:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nPreparing your review...")
	case s.confirming:
		return s.renderConfirm(width)
	}

	q := s.cur
	// After Submit the cursor has already advanced; the shown number
	// is the answered one while feedback is up.
	qnum := s.pt.Index() + 1
	if s.answered != nil {
		qnum = s.pt.Index()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", qnum, s.pt.Total())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Which word means: " + q.Item.Definition.CN))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View(s.deps.DisplayWord(q.Answer))))

	if s.answered != nil {
		b.WriteString("\n")
		verdict := theme.Correct.Render("Correct — this word will be skipped")
		if !s.answered.Correct {
			verdict = theme.Incorrect.Render("Not quite — this word joins the session")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, verdict))
		if s.narrating {
			b.WriteString("\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Render("🔊 "+s.deps.DisplayWord(s.answered.Word))))
		}
	}

	return b.String()
}

func (s *PretestScreen) renderConfirm(width int) string {
	toLearn, known := s.pt.Partition()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Pre-test complete"))
	b.WriteString("\n\n")

	learnWords := lo.Map(itemWords(toLearn), func(w string, _ int) string { return s.deps.DisplayWord(w) })
	for _, it := range known {
		if s.optedIn[it.Word] {
			learnWords = append(learnWords, s.deps.DisplayWord(it.Word))
		}
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(fmt.Sprintf("To practice (%d):", len(learnWords))),
		lipgloss.NewStyle().Foreground(theme.Text).Render("  " + joinOrNone(learnWords)),
		"",
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("Already known (%d) — skip recommended:", len(known))),
	}
	if len(known) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("  (none)"))
	}
	for i, it := range known {
		marker := "   "
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.cursor {
			marker = " ▸ "
			style = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		}
		tag := ""
		if s.optedIn[it.Word] {
			tag = lipgloss.NewStyle().Foreground(theme.Accent).Render("  [practice anyway]")
		}
		lines = append(lines, marker+style.Render(s.deps.DisplayWord(it.Word))+tag)
	}

	note := "Skipped words are marked mastered and rejoin at the dictation stage."
	if s.mode == practice.ModeReview {
		note = "Recognized words count as passed reviews and rejoin at dictation."
	}
	lines = append(lines, "", theme.Hint.Render(note))

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n")))
	return b.String()
}

func joinOrNone(words []string) string {
	if len(words) == 0 {
		return "(none)"
	}
	return strings.Join(words, ", ")
}
