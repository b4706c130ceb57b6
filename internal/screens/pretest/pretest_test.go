package pretest

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/minqi/vocadrill/internal/audio"
	"github.com/minqi/vocadrill/internal/config"
	"github.com/minqi/vocadrill/internal/content"
	"github.com/minqi/vocadrill/internal/logging"
	"github.com/minqi/vocadrill/internal/router"
	"github.com/minqi/vocadrill/internal/screens"
	"github.com/minqi/vocadrill/internal/store"
)

func testItem(word, cn, sentence string) content.WordItem {
	return content.WordItem{
		Word:       word,
		WordRoot:   word,
		Definition: content.Definition{EN: word, CN: cn},
		Exercises: []content.Exercise{
			{Type: content.ExerciseInferMeaning, Sentence: sentence},
			{Type: content.ExerciseSentenceReordering, SentenceAnswer: plainTier(sentence)},
		},
	}
}

func plainTier(s string) content.TierText {
	var tt content.TierText
	if err := tt.UnmarshalJSON([]byte(`"` + s + `"`)); err != nil {
		panic(err)
	}
	return tt
}

func testItems() []content.WordItem {
	return []content.WordItem{
		testItem("apple", "苹果", "I ate an apple"),
		testItem("banana", "香蕉", "She peeled a banana"),
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

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// answer submits the current question, picking the right or a wrong
// option by digit key, and dismisses the feedback.
func answer(t *testing.T, s *PretestScreen, correct bool) {
	t.Helper()
	want := s.cur.Answer
	idx := -1
	for i, opt := range s.mc.Options {
		if (opt == want) == correct {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatalf("no option with correct=%v among %v", correct, s.mc.Options)
	}
	s.Update(keyPress(rune('1' + idx)))
	if s.answered == nil {
		t.Fatal("expected feedback after answering")
	}
	if s.answered.Correct != correct {
		t.Fatalf("answered.Correct = %v, want %v", s.answered.Correct, correct)
	}
	s.Update(keyPress(' '))
}

func TestPretestScreen_FlowToConfirmation(t *testing.T) {
	s := New(testDeps(t), testItems(), "tier_3")
	if s.Title() != "Pre-Test" {
		t.Errorf("Title = %q", s.Title())
	}

	answer(t, s, true)
	if s.confirming {
		t.Fatal("confirmation raised before the last question")
	}
	answer(t, s, false)
	if !s.confirming {
		t.Fatal("expected confirmation after the last question")
	}

	toLearn, known := s.pt.Partition()
	if len(toLearn) != 1 || len(known) != 1 {
		t.Errorf("partition = %d/%d, want 1/1", len(toLearn), len(known))
	}
}

func TestPretestScreen_OptInTogglesKnownWord(t *testing.T) {
	s := New(testDeps(t), testItems(), "tier_3")
	answer(t, s, true)
	answer(t, s, true)
	if !s.confirming {
		t.Fatal("expected confirmation")
	}

	s.Update(keyPress(' '))
	_, known := s.pt.Partition()
	if !s.optedIn[known[0].Word] {
		t.Error("space should opt the selected known word back in")
	}
	s.Update(keyPress(' '))
	if s.optedIn[known[0].Word] {
		t.Error("space should toggle the opt-in off again")
	}
}

func TestPretestScreen_StartPracticeReplaces(t *testing.T) {
	s := New(testDeps(t), testItems(), "tier_3")
	answer(t, s, false)
	answer(t, s, false)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg := cmd()
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Errorf("msg = %T, want ReplaceScreenMsg", msg)
	}
}

type stubSynth struct{}

func (stubSynth) Synthesize(_ context.Context, _ string) ([]byte, error) {
	return []byte("pcm"), nil
}

type stubPlayer struct{}

func (stubPlayer) Play(_ context.Context, _ []byte) error { return nil }

func TestPretestScreen_FeedbackWaitsForNarration(t *testing.T) {
	deps := testDeps(t)
	deps.Audio = audio.NewController(stubSynth{}, stubPlayer{}, nil)
	s := New(deps, testItems(), "tier_3")
	s.autoAudio = true

	idx := -1
	for i, opt := range s.mc.Options {
		if opt == s.cur.Answer {
			idx = i
			break
		}
	}
	_, cmd := s.Update(keyPress(rune('1' + idx)))
	if cmd == nil {
		t.Fatal("expected a narration command")
	}
	if !s.narrating {
		t.Fatal("narration gate should be up after a correct answer")
	}

	s.Update(keyPress(' '))
	if s.answered == nil {
		t.Error("keys must not dismiss the feedback while narrating")
	}

	s.Update(narratedMsg{seq: s.narSeq})
	if s.narrating {
		t.Fatal("completion should drop the narration gate")
	}
	s.Update(keyPress(' '))
	if s.answered != nil {
		t.Error("feedback should dismiss once narration has finished")
	}
}

func TestPretestScreen_ConfirmView(t *testing.T) {
	s := New(testDeps(t), testItems(), "tier_3")
	answer(t, s, true)
	answer(t, s, false)

	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty confirmation view")
	}
}
