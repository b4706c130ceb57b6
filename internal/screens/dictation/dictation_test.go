package dictation

import (
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/minqi/vocadrill/internal/audio"
	"github.com/minqi/vocadrill/internal/config"
	"github.com/minqi/vocadrill/internal/content"
	"github.com/minqi/vocadrill/internal/logging"
	prac "github.com/minqi/vocadrill/internal/practice"
	"github.com/minqi/vocadrill/internal/screens"
	"github.com/minqi/vocadrill/internal/store"
)

func testItem(word, cn string) content.WordItem {
	return content.WordItem{
		Word:       word,
		WordRoot:   word,
		Definition: content.Definition{EN: word, CN: cn},
	}
}

func testDeps(t *testing.T) screens.Deps {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	log, _ := logging.New("", "info")
	return screens.Deps{
		Config: &config.Config{},
		Log:    log,
		Store:  st,
		Audio:  audio.NewController(nil, nil, nil),
	}
}

func testEngine() *prac.Engine {
	items := []content.WordItem{
		testItem("apple", "苹果"),
		testItem("banana", "香蕉"),
	}
	e, _ := prac.New(prac.Config{
		Mode:     prac.ModeLearn,
		Tier:     "tier_3",
		Items:    items,
		Progress: prac.MasteredProgress([]string{"apple", "banana"}),
	})
	e.AcceptDictation()
	return e
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestDictationScreen_CorrectFlashGatesInput(t *testing.T) {
	s := New(testDeps(t), testEngine())
	word, ok := s.eng.Dictation.Current()
	if !ok {
		t.Fatal("no dictation word")
	}

	s.input.Model.SetValue(word)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a flash timer command")
	}
	if s.flashWord == "" {
		t.Fatal("correct spelling should raise the confirmation")
	}
	view := s.View(80, 24)
	if !strings.Contains(view, s.flashWord) {
		t.Error("view should show the confirmed word")
	}

	s.Update(keyPress('x'))
	if s.flashWord == "" {
		t.Error("keys must not cut the confirmation short")
	}

	s.Update(flashDoneMsg{seq: s.flashSeq})
	if s.flashWord != "" {
		t.Error("timer should clear the confirmation")
	}
	if s.input.Value() != "" {
		t.Error("input should reset for the next word")
	}
}

func TestDictationScreen_StaleFlashTimerIgnored(t *testing.T) {
	s := New(testDeps(t), testEngine())
	word, _ := s.eng.Dictation.Current()
	s.input.Model.SetValue(word)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	s.Update(flashDoneMsg{seq: s.flashSeq - 1})
	if s.flashWord == "" {
		t.Error("stale timer must not end the confirmation")
	}
}

func TestDictationScreen_WrongSpellingShowsDiff(t *testing.T) {
	s := New(testDeps(t), testEngine())
	s.input.Model.SetValue("zzz")
	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.outcome == nil || s.outcome.Correct {
		t.Fatal("wrong spelling should hold with an outcome")
	}
	if s.flashWord != "" {
		t.Error("no confirmation on a miss")
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "expected:") {
		t.Error("view should show the expected spelling")
	}
}
