package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/minqi/vocadrill/internal/router"
	"github.com/minqi/vocadrill/internal/screen"
	"github.com/minqi/vocadrill/internal/screens"
	"github.com/minqi/vocadrill/internal/screens/home"
	"github.com/minqi/vocadrill/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   screens.Deps
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel rooted at the home screen.
func newAppModel(deps screens.Deps) AppModel {
	return AppModel{
		deps:   deps,
		router: router.New(home.New(deps)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.deps.Audio.Stop()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				// Leaving a screen kills whatever it was narrating.
				m.deps.Audio.Stop()
				return m, tea.Sequence(
					func() tea.Msg { return router.PopScreenMsg{} },
					func() tea.Msg { return screens.RefreshHomeMsg{} },
				)
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	tier := m.deps.Config.Practice.Tier
	mastered := 0
	if sp, ok := active.(screen.HeaderStatsProvider); ok {
		if t, n := sp.HeaderStats(); t != "" {
			tier, mastered = t, n
		}
	}

	header := layout.RenderHeader(title, tier, mastered, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	if m.router.Depth() > 1 {
		footerHints = append(footerHints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}

	footer := layout.RenderFooter(footerHints, m.width)
	content := m.router.View(m.width, layout.ContentHeight(m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(deps screens.Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
