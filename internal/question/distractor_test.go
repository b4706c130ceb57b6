package question

import (
	"testing"

	"github.com/minqi/vocadrill/internal/content"
)

func poolItem(word, root, cn string) content.WordItem {
	return content.WordItem{
		Word:       word,
		WordRoot:   root,
		Definition: content.Definition{CN: cn},
	}
}

func testPool() []content.WordItem {
	return []content.WordItem{
		poolItem("apple", "apple", "苹果"),
		poolItem("apples", "apple", "苹果(复数)"),
		poolItem("banana", "banana", "香蕉"),
		poolItem("cherry", "cherry", "樱桃"),
		poolItem("date", "date", "枣"),
		poolItem("elder", "elder", "接骨木"),
		poolItem("fig", "fig", "无花果"),
		poolItem("grape", "grape", "葡萄"),
	}
}

func TestGenerateDistractors_NeverContainsTarget(t *testing.T) {
	pool := testPool()
	for i := 0; i < 20; i++ {
		got := GenerateDistractors(pool[0], pool, 6, KindWord)
		for _, d := range got {
			if d == "apple" {
				t.Fatal("distractors contain the target word")
			}
		}
	}
}

func TestGenerateDistractors_Unique(t *testing.T) {
	pool := testPool()
	for i := 0; i < 20; i++ {
		got := GenerateDistractors(pool[0], pool, 6, KindWord)
		seen := make(map[string]bool)
		for _, d := range got {
			if seen[d] {
				t.Fatalf("duplicate distractor %q", d)
			}
			seen[d] = true
		}
	}
}

func TestGenerateDistractors_PrefersDifferentRoot(t *testing.T) {
	pool := testPool()
	// Six other-root words exist, so the same-root sibling must not appear.
	for i := 0; i < 20; i++ {
		got := GenerateDistractors(pool[0], pool, 6, KindWord)
		for _, d := range got {
			if d == "apples" {
				t.Fatal("same-root sibling chosen while other-root candidates sufficed")
			}
		}
	}
}

func TestGenerateDistractors_WidensWhenPoolSmall(t *testing.T) {
	pool := []content.WordItem{
		poolItem("apple", "apple", "苹果"),
		poolItem("apples", "apple", "苹果(复数)"),
		poolItem("banana", "banana", "香蕉"),
	}
	got := GenerateDistractors(pool[0], pool, 3, KindWord)
	if len(got) != 2 {
		t.Fatalf("got %d distractors, want 2 (whole pool minus target)", len(got))
	}
}

func TestGenerateDistractors_DefinitionKind(t *testing.T) {
	pool := testPool()
	got := GenerateDistractors(pool[0], pool, 3, KindDefinition)
	if len(got) != 3 {
		t.Fatalf("got %d distractors, want 3", len(got))
	}
	for _, d := range got {
		if d == "苹果" {
			t.Error("distractors contain the target definition")
		}
	}
}
