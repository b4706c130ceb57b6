// Package preview shows the session's words with their definitions
// before the pre-test, with narration on demand.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minqi/vocadrill/internal/content"
	"github.com/minqi/vocadrill/internal/router"
	"github.com/minqi/vocadrill/internal/screen"
	"github.com/minqi/vocadrill/internal/screens"
	pretestscreen "github.com/minqi/vocadrill/internal/screens/pretest"
	"github.com/minqi/vocadrill/internal/ui/layout"
	"github.com/minqi/vocadrill/internal/ui/theme"
)

// PreviewScreen lists the fetched word material before practice starts.
type PreviewScreen struct {
	deps  screens.Deps
	words []string
	tier  string

	items  []content.WordItem
	cursor int
	loaded bool
	errMsg string
}

var _ screen.Screen = (*PreviewScreen)(nil)
var _ screen.KeyHintProvider = (*PreviewScreen)(nil)

// contentMsg carries the fetched word material.
type contentMsg struct {
	items []content.WordItem
	err   error
}

// New creates a preview screen for the chosen words.
func New(deps screens.Deps, words []string, tier string) *PreviewScreen {
	return &PreviewScreen{deps: deps, words: words, tier: tier}
}

func (p *PreviewScreen) Init() tea.Cmd {
	deps := p.deps
	words := p.words
	tier := p.tier
	return func() tea.Msg {
		ctx := context.Background()
		ps, err := deps.API.FetchPracticeSession(ctx, words, tier)
		if err != nil {
			return contentMsg{err: err}
		}
		if len(ps.Missing) > 0 {
			deps.Log.WithField("words", ps.Missing).Info("dropping words without content")
			deps.API.CleanupWords(ctx, ps.Missing)
		}
		if len(ps.Items) == 0 {
			return contentMsg{err: errors.New("no practice material available for these words")}
		}
		return contentMsg{items: ps.Items}
	}
}

func (p *PreviewScreen) Title() string {
	return "Word Preview"
}

func (p *PreviewScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Enter", Description: "Begin pre-test"},
	}
	if p.deps.Audio.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Pronounce"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (p *PreviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentMsg:
		if msg.err != nil {
			p.errMsg = msg.err.Error()
			return p, nil
		}
		p.items = msg.items
		p.loaded = true
		return p, nil

	case tea.KeyMsg:
		if p.errMsg != "" {
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		}
		if !p.loaded {
			return p, nil
		}
		switch msg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.items)-1 {
				p.cursor++
			}
		case "p":
			p.deps.Audio.Play(content.CleanWord(p.items[p.cursor].Word))
		case "enter":
			deps := p.deps
			items := p.items
			tier := p.tier
			return p, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: pretestscreen.New(deps, items, tier)}
			}
		}
	}
	return p, nil
}

func (p *PreviewScreen) View(width, height int) string {
	if p.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n" + p.errMsg + "\n\nPress any key to go back")
	}
	if !p.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nFetching practice material...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("This session covers %d words", len(p.items))))
	b.WriteString("\n\n")

	var rows []string
	for i, it := range p.items {
		marker := "   "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == p.cursor {
			marker = " ▸ "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		word := style.Render(fmt.Sprintf("%-18s", p.deps.DisplayWord(it.Word)))
		def := lipgloss.NewStyle().Foreground(theme.TextDim).Render(it.Definition.CN)
		rows = append(rows, marker+word+def)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))

	return b.String()
}
