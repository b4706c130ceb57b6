package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/minqi/vocadrill/internal/practice"
	"github.com/minqi/vocadrill/internal/screens"
)

func testStats() Stats {
	return Stats{
		Mode:           practice.ModeLearn,
		Tier:           "4A",
		Mastered:       5,
		DictationWords: 7,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(screens.Deps{}, testStats())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(screens.Deps{}, testStats())
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty summary view")
	}
	if !strings.Contains(view, "Session complete!") {
		t.Error("expected completion banner in view")
	}
	if !strings.Contains(view, "learning session") {
		t.Error("expected mode line in view")
	}
}

func TestSummaryScreen_DictationDeclined(t *testing.T) {
	st := testStats()
	st.DictationDeclined = true
	s := New(screens.Deps{}, st)
	view := s.View(80, 24)
	if !strings.Contains(view, "skipped") {
		t.Error("expected declined dictation to show as skipped")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(screens.Deps{}, testStats())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(screens.Deps{}, testStats())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(screens.Deps{}, testStats())
	hints := s.KeyHints()
	if len(hints) != 1 {
		t.Errorf("KeyHints length = %d, want 1", len(hints))
	}
}
