package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minqi/vocadrill/internal/practice"
	"github.com/minqi/vocadrill/internal/router"
	"github.com/minqi/vocadrill/internal/screen"
	"github.com/minqi/vocadrill/internal/screens"
	practicescreen "github.com/minqi/vocadrill/internal/screens/practice"
	pretestscreen "github.com/minqi/vocadrill/internal/screens/pretest"
	"github.com/minqi/vocadrill/internal/screens/setup"
	"github.com/minqi/vocadrill/internal/ui/components"
	"github.com/minqi/vocadrill/internal/ui/theme"
)

// HomeScreen is the main menu: start a learning or review session,
// resume an interrupted one, or repeat the last finished one.
type HomeScreen struct {
	deps screens.Deps
	menu components.Menu

	resume    *practice.Snapshot
	last      *practice.LastSession
	autoAudio bool

	queueCount  int
	reviewCount int
	statsLoaded bool
	statsErr    error
}

var _ screen.Screen = (*HomeScreen)(nil)

// statsMsg carries the backend counts shown on the menu.
type statsMsg struct {
	queueCount  int
	reviewCount int
	err         error
}

// audioToggledMsg flips the narration preference. Routed through a
// message so the menu rebuild survives the component update cycle.
type audioToggledMsg struct{}

// New creates the home screen. Local session state (resume snapshot,
// last session, audio preference) is read synchronously from the
// store; backend counts arrive via Init.
func New(deps screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.refresh()
	return h
}

// refresh re-reads store state and rebuilds the menu around it.
func (h *HomeScreen) refresh() {
	h.resume, _ = h.deps.Store.LoadResume()
	h.last, _ = h.deps.Store.LoadLastSession()
	h.autoAudio, _ = h.deps.Store.AutoAudio()
	h.menu = components.NewMenu(h.buildMenu())
}

func (h *HomeScreen) buildMenu() []components.MenuItem {
	deps := h.deps
	var items []components.MenuItem

	if h.resume != nil {
		snap := *h.resume
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("RESUME SESSION (%d words)", len(snap.Items)),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: practicescreen.NewResume(deps, snap)}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{
			Label: "LEARN NEW WORDS",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: setup.New(deps)}
				}
			},
		},
		components.MenuItem{
			Label: "REVIEW DUE WORDS",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: pretestscreen.NewReview(deps)}
				}
			},
		},
	)

	if h.last != nil {
		last := *h.last
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("PRACTICE AGAIN (%s)", last.Mode),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					if last.Mode == practice.ModeReview {
						return router.PushScreenMsg{Screen: pretestscreen.NewReview(deps)}
					}
					return router.PushScreenMsg{Screen: setup.New(deps)}
				}
			},
		})
	}

	audioLabel := "AUDIO NARRATION: OFF"
	if h.autoAudio {
		audioLabel = "AUDIO NARRATION: ON"
	}
	if !deps.Audio.Enabled() {
		audioLabel = "AUDIO NARRATION: UNAVAILABLE"
	}
	items = append(items,
		components.MenuItem{
			Label:    audioLabel,
			Disabled: !deps.Audio.Enabled(),
			Action: func() tea.Cmd {
				return func() tea.Msg { return audioToggledMsg{} }
			},
		},
		components.MenuItem{
			Label:  "EXIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	return items
}

func (h *HomeScreen) Init() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx := context.Background()
		sum, err := deps.API.Summary(ctx)
		if err != nil {
			return statsMsg{err: err}
		}
		review, err := deps.API.ReviewWords(ctx)
		if err != nil {
			return statsMsg{queueCount: len(sum.LearnQueue()), err: err}
		}
		return statsMsg{queueCount: len(sum.LearnQueue()), reviewCount: len(review)}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		h.statsLoaded = true
		h.queueCount = msg.queueCount
		h.reviewCount = msg.reviewCount
		h.statsErr = msg.err
		return h, nil

	case screens.RefreshHomeMsg:
		h.refresh()
		return h, h.Init()

	case audioToggledMsg:
		h.autoAudio = !h.autoAudio
		if err := h.deps.Store.SetAutoAudio(h.autoAudio); err != nil {
			h.deps.Log.WithError(err).Warn("audio preference write failed")
		}
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.buildMenu())
		h.menu.Selected = selected
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("VocaDrill"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("staged word practice with dictation"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.renderStats()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) renderStats() string {
	switch {
	case !h.statsLoaded:
		return theme.Hint.Render("loading study queue...")
	case h.statsErr != nil:
		return theme.Hint.Render("backend unreachable; counts unavailable")
	default:
		return lipgloss.NewStyle().Foreground(theme.Text).Render(
			fmt.Sprintf("%d words to learn   %d due for review", h.queueCount, h.reviewCount))
	}
}
