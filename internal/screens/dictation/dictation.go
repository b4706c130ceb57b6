// Package dictation is the spelling-check screen: each word is narrated
// and typed from memory, with an aligned diff shown on mistakes.
package dictation

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minqi/vocadrill/internal/audio"
	"github.com/minqi/vocadrill/internal/content"
	dict "github.com/minqi/vocadrill/internal/dictation"
	prac "github.com/minqi/vocadrill/internal/practice"
	"github.com/minqi/vocadrill/internal/router"
	"github.com/minqi/vocadrill/internal/screen"
	"github.com/minqi/vocadrill/internal/screens"
	"github.com/minqi/vocadrill/internal/screens/summary"
	"github.com/minqi/vocadrill/internal/ui/components"
	"github.com/minqi/vocadrill/internal/ui/layout"
	"github.com/minqi/vocadrill/internal/ui/theme"
)

// How long the confirmation stays up after a correct spelling.
const correctFlash = 800 * time.Millisecond

// DictationScreen drives the engine's dictation sub-session.
type DictationScreen struct {
	deps screens.Deps
	eng  *prac.Engine

	input   components.TextInput
	outcome *dict.Outcome

	// flashWord is shown between a correct spelling and the next word;
	// flashSeq discards stale timer messages.
	flashWord string
	flashSeq  int
}

// flashDoneMsg ends the correct-spelling confirmation.
type flashDoneMsg struct {
	seq int
}

var _ screen.Screen = (*DictationScreen)(nil)
var _ screen.KeyHintProvider = (*DictationScreen)(nil)
var _ screen.HeaderStatsProvider = (*DictationScreen)(nil)

// HeaderStats feeds the session tier and mastered count to the header.
func (d *DictationScreen) HeaderStats() (string, int) {
	return d.eng.Tier, d.eng.MasteredCount()
}

// New creates the dictation screen over an engine already in the
// dictation phase.
func New(deps screens.Deps, eng *prac.Engine) *DictationScreen {
	return &DictationScreen{
		deps:  deps,
		eng:   eng,
		input: components.NewTextInput("Type the word...", false, 40),
	}
}

func (d *DictationScreen) Init() tea.Cmd {
	return tea.Batch(d.playCmd(), d.input.Init())
}

// playCmd narrates the current word off the update loop, waiting out the
// clip (capped) so a replay request doesn't overlap it.
func (d *DictationScreen) playCmd() tea.Cmd {
	word, ok := d.eng.Dictation.Current()
	if !ok {
		return nil
	}
	ctrl := d.deps.Audio
	text := content.CleanWord(word)
	return func() tea.Msg {
		ctrl.PlayAndWait(context.Background(), text, audio.DictationWait)
		return nil
	}
}

func (d *DictationScreen) Title() string {
	return "Dictation"
}

func (d *DictationScreen) KeyHints() []layout.KeyHint {
	if d.flashWord != "" {
		return nil
	}
	if d.outcome != nil {
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Check"}}
	if d.deps.Audio.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Hear again"})
	}
	return hints
}

func (d *DictationScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if fmsg, ok := msg.(flashDoneMsg); ok {
		if fmsg.seq != d.flashSeq || d.flashWord == "" {
			return d, nil
		}
		d.flashWord = ""
		return d.nextWord()
	}
	if d.flashWord != "" {
		return d, nil
	}

	kmsg, isKey := msg.(tea.KeyMsg)

	if d.outcome != nil {
		if !isKey {
			return d, nil
		}
		d.eng.Dictation.Acknowledge()
		d.outcome = nil
		return d.nextWord()
	}

	if isKey {
		switch kmsg.String() {
		case "enter":
			return d.check()
		case "ctrl+r":
			return d, d.playCmd()
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d *DictationScreen) check() (screen.Screen, tea.Cmd) {
	typed := strings.TrimSpace(d.input.Value())
	if typed == "" {
		return d, nil
	}
	out := d.eng.Dictation.Submit(typed)
	if !out.Correct {
		d.outcome = &out
		return d, nil
	}

	d.flashWord = out.Expected
	d.flashSeq++
	seq := d.flashSeq
	return d, tea.Tick(correctFlash, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

func (d *DictationScreen) nextWord() (screen.Screen, tea.Cmd) {
	d.input.Reset()
	if _, ok := d.eng.Dictation.Current(); ok {
		return d, tea.Batch(d.playCmd(), d.input.Init())
	}
	return d.finish()
}

func (d *DictationScreen) finish() (screen.Screen, tea.Cmd) {
	eng := d.eng
	effects := eng.FinishDictation()
	stats := summary.Stats{
		Mode:           eng.Mode,
		Tier:           eng.Tier,
		Mastered:       eng.MasteredCount(),
		DictationWords: len(eng.Dictation.Words()),
	}
	deps := d.deps
	return d, tea.Batch(
		deps.DispatchEffects(effects),
		deps.SaveLastSession(eng.Mode, eng.Tier),
		func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(deps, stats)}
		},
	)
}

func (d *DictationScreen) View(width, height int) string {
	if d.flashWord != "" {
		var b strings.Builder
		b.WriteString("\n\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Correct.Render("✓ "+d.flashWord)))
		return b.String()
	}

	sess := d.eng.Dictation
	word, ok := sess.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Word %d of %d", sess.Position(), sess.Total())))
	b.WriteString("\n\n")

	// The Chinese gloss is the cue; the spelling is what's being tested.
	cue := "(listen and type)"
	if item, found := d.eng.Item(word); found && item.Definition.CN != "" {
		cue = item.Definition.CN
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(cue))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, d.input.View()))

	if d.outcome != nil {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render("Not quite — it will come around again:")))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderDiff(d.outcome.Diff)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("expected: "+d.outcome.Expected)))
	}

	return b.String()
}

// renderDiff colors the aligned spelling: matches green, extra typed
// characters red, missing characters amber underline.
func renderDiff(ops []dict.DiffOp) string {
	var b strings.Builder
	for _, op := range ops {
		ch := string(op.Ch)
		switch op.Kind {
		case dict.DiffEqual:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(ch))
		case dict.DiffInsert:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Strikethrough(true).Render(ch))
		case dict.DiffDelete:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Underline(true).Render(ch))
		}
	}
	return b.String()
}
