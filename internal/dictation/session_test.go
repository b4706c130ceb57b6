package dictation

import "testing"

// drain plays the session to completion, answering each word wrong as
// many times as the budget in wrong allows, then correctly. Returns the
// total number of submissions made.
func drain(t *testing.T, s *Session, wrong map[string]int) int {
	t.Helper()
	submissions := 0
	for {
		w, ok := s.Current()
		if !ok {
			break
		}
		submissions++
		if submissions > 1000 {
			t.Fatal("dictation did not terminate")
		}
		if wrong[w] > 0 {
			wrong[w]--
			if out := s.Submit("xyz"); out.Correct {
				t.Fatalf("wrong spelling accepted for %s", w)
			}
			s.Acknowledge()
		} else {
			if out := s.Submit(w); !out.Correct {
				t.Fatalf("correct spelling rejected for %s", w)
			}
		}
	}
	if !s.Done() {
		t.Fatal("queue drained but session not done")
	}
	return submissions
}

func TestSession_AllCorrectOnePass(t *testing.T) {
	s := New([]string{"apple", "banana", "cherry"})
	if got := drain(t, s, nil); got != 3 {
		t.Errorf("took %d submissions, want 3", got)
	}
}

func TestSession_WrongWordsRequeue(t *testing.T) {
	s := New([]string{"apple", "banana", "cherry"})
	// banana wrong once: 3 first-pass submissions plus one redo.
	if got := drain(t, s, map[string]int{"banana": 1}); got != 4 {
		t.Errorf("took %d submissions, want 4", got)
	}
}

func TestSession_RepeatedMistakesStillTerminate(t *testing.T) {
	s := New([]string{"apple", "banana"})
	// 2 first-pass + 5 wrong retries spread over redo rounds + final
	// correct answers for both words.
	if got := drain(t, s, map[string]int{"apple": 3, "banana": 2}); got != 7 {
		t.Errorf("took %d submissions, want 7", got)
	}
}

func TestSession_WordsReturnsFullSet(t *testing.T) {
	s := New([]string{"apple", "banana", "apple", ""})
	words := s.Words()
	if len(words) != 2 {
		t.Fatalf("got %v, want deduplicated non-empty set", words)
	}
	drain(t, s, map[string]int{"banana": 1})
	if got := s.Words(); len(got) != 2 {
		t.Errorf("full set changed to %v after redo rounds", got)
	}
}

func TestSession_CaseAndSuffixInsensitive(t *testing.T) {
	s := New([]string{"Apple②"})
	out := s.Submit("apple")
	if !out.Correct {
		t.Error("clean lowercase spelling rejected")
	}
	if !s.Done() {
		t.Error("session should finish")
	}
}

func TestSession_WrongOnlyCountedOnce(t *testing.T) {
	s := New([]string{"apple"})
	s.Submit("wrong1")
	// Still on the same word: a second wrong attempt before Acknowledge
	// must not duplicate it in the redo queue.
	s.Submit("wrong2")
	s.Acknowledge()
	if s.Done() {
		t.Fatal("wrong word must requeue")
	}
	if s.Total() != 1 {
		t.Errorf("redo queue size = %d, want 1", s.Total())
	}
}

func TestSession_EmptyInputDoneImmediately(t *testing.T) {
	s := New(nil)
	if !s.Done() {
		t.Error("empty session should start done")
	}
}

func TestSession_DiffProvidedOnMistake(t *testing.T) {
	s := New([]string{"apple"})
	out := s.Submit("aple")
	if out.Correct {
		t.Fatal("misspelling accepted")
	}
	if len(out.Diff) == 0 {
		t.Error("no diff for a wrong answer")
	}
	if out.Expected != "apple" {
		t.Errorf("expected = %q, want apple", out.Expected)
	}
}

func TestSession_CaseTrimmed(t *testing.T) {
	s := New([]string{"apple"})
	if out := s.Submit("  APPLE  "); !out.Correct {
		t.Error("case/whitespace variants must match")
	}
}
