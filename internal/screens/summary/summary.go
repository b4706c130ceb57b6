// Package summary shows the end-of-session recap.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minqi/vocadrill/internal/practice"
	"github.com/minqi/vocadrill/internal/router"
	"github.com/minqi/vocadrill/internal/screen"
	"github.com/minqi/vocadrill/internal/screens"
	"github.com/minqi/vocadrill/internal/ui/layout"
	"github.com/minqi/vocadrill/internal/ui/theme"
)

// Stats is what the recap displays.
type Stats struct {
	Mode              practice.Mode
	Tier              string
	Mastered          int
	DictationWords    int
	DictationDeclined bool
}

// SummaryScreen displays the session recap.
type SummaryScreen struct {
	deps  screens.Deps
	stats Stats
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates the summary screen.
func New(deps screens.Deps, stats Stats) *SummaryScreen {
	return &SummaryScreen{deps: deps, stats: stats}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Home"}}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, tea.Sequence(
				func() tea.Msg { return router.PopScreenMsg{} },
				func() tea.Msg { return screens.RefreshHomeMsg{} },
			)
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	st := s.stats
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")

	mode := "learning"
	if st.Mode == practice.ModeReview {
		mode = "review"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s session · %s", mode, st.Tier)))
	b.WriteString("\n\n")

	lines := []string{
		fmt.Sprintf("Words mastered:    %d", st.Mastered),
	}
	switch {
	case st.DictationDeclined:
		lines = append(lines, "Dictation:         skipped")
	default:
		lines = append(lines, fmt.Sprintf("Dictation words:   %d", st.DictationWords))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(lines, "\n"))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to return home"))

	return b.String()
}
