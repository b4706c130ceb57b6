package pretest

import (
	"testing"

	"github.com/minqi/vocadrill/internal/content"
)

func items() []content.WordItem {
	mk := func(w, cn string) content.WordItem {
		return content.WordItem{Word: w, WordRoot: w, Definition: content.Definition{CN: cn}}
	}
	return []content.WordItem{
		mk("apple", "苹果"),
		mk("banana", "香蕉"),
		mk("cherry", "樱桃"),
	}
}

func TestSession_AsksEachWordOnce(t *testing.T) {
	s := New(items())
	if s.Total() != 3 {
		t.Fatalf("total = %d, want 3", s.Total())
	}
	seen := make(map[string]bool)
	for !s.Done() {
		q := s.Current()
		if seen[q.Word] {
			t.Fatalf("word %s asked twice", q.Word)
		}
		seen[q.Word] = true
		s.Submit(q.Word)
	}
	if len(seen) != 3 {
		t.Errorf("asked %d words, want 3", len(seen))
	}
}

func TestSession_Partition(t *testing.T) {
	s := New(items())
	// apple correct, banana wrong, cherry correct.
	answers := map[string]string{"apple": "apple", "banana": "grape", "cherry": "cherry"}
	for !s.Done() {
		q := s.Current()
		s.Submit(answers[q.Word])
	}

	toLearn, skipped := s.Partition()
	if len(toLearn) != 1 || toLearn[0].Word != "banana" {
		t.Errorf("toLearn = %v, want [banana]", toLearn)
	}
	if len(skipped) != 2 || skipped[0].Word != "apple" || skipped[1].Word != "cherry" {
		t.Errorf("skipped = %v, want [apple cherry] in item order", skipped)
	}
	got := s.SkippedWords()
	if len(got) != 2 || got[0] != "apple" {
		t.Errorf("skipped words = %v", got)
	}
}

func TestSession_QuestionsAreWordSelection(t *testing.T) {
	s := New(items())
	q := s.Current()
	if q.Stage != 4 {
		t.Errorf("stage = %d, want 4 (reverse lookup)", q.Stage)
	}
	if len(q.Options) != 3 {
		t.Errorf("got %d options, want the whole pool", len(q.Options))
	}
}
