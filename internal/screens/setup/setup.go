// Package setup asks how many words the learning session should cover
// and hands the chosen slice of the study queue to the preview screen.
package setup

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
	"github.com/minqi/vocadrill/internal/screens/preview"
	"github.com/minqi/vocadrill/internal/ui/components"
	"github.com/minqi/vocadrill/internal/ui/layout"
	"github.com/minqi/vocadrill/internal/ui/theme"
)

// SetupScreen collects the word count for a learning session.
type SetupScreen struct {
	deps  screens.Deps
	input components.TextInput

	queue  []string
	tier   string
	loaded bool
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// queueMsg carries the study queue fetched from the backend.
type queueMsg struct {
	queue []string
	tier  string
	err   error
}

// New creates the setup screen.
func New(deps screens.Deps) *SetupScreen {
	input := components.NewTextInput(fmt.Sprintf("%d", deps.Config.Practice.WordCount), true, 3)
	return &SetupScreen{deps: deps, input: input}
}

func (s *SetupScreen) Init() tea.Cmd {
	deps := s.deps
	return tea.Batch(
		s.input.Init(),
		func() tea.Msg {
			sum, err := deps.API.Summary(context.Background())
			if err != nil {
				return queueMsg{err: err}
			}
			queue := sum.LearnQueue()
			if len(queue) == 0 {
				return queueMsg{err: errors.New("no words in the study queue")}
			}
			tier := sum.Tier
			if tier == "" {
				tier = deps.Config.Practice.Tier
			}
			return queueMsg{queue: queue, tier: tier}
		},
	)
}

func (s *SetupScreen) Title() string {
	return "New Session"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case queueMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.queue = msg.queue
		s.tier = msg.tier
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if s.errMsg != "" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		if msg.String() == "enter" && s.loaded {
			return s.start()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	n, err := s.input.NumericValue()
	if err != nil || n <= 0 {
		n = s.deps.Config.Practice.WordCount
	}
	if n > len(s.queue) {
		n = len(s.queue)
	}
	words := make([]string, 0, n)
	for _, w := range s.queue[:n] {
		words = append(words, content.CleanWord(w))
	}

	deps := s.deps
	tier := s.tier
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: preview.New(deps, words, tier)}
	}
}

func (s *SetupScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n" + s.errMsg + "\n\nPress any key to go back")
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nFetching your study queue...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%d words waiting in your queue", len(s.queue))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Difficulty tier: %s", s.tier)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		"How many this session?  "+s.input.View()))

	return b.String()
}
