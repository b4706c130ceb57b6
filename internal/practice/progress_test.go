package practice

import "testing"

func TestWordProgress_AdvanceToMastery(t *testing.T) {
	p := &WordProgress{Stage: FirstStage, Status: StatusLearning}
	for i := 0; i < 3; i++ {
		p.Advance()
		if p.Status != StatusLearning {
			t.Fatalf("mastered at stage %d, want only at %d", p.Stage, MasteryStage)
		}
	}
	p.Advance()
	if p.Stage != MasteryStage {
		t.Errorf("stage = %d, want %d", p.Stage, MasteryStage)
	}
	if p.Status != StatusMastered {
		t.Error("status = learning, want mastered")
	}
	if p.LastResult != ResultCorrect {
		t.Errorf("last result = %q, want correct", p.LastResult)
	}
}

func TestWordProgress_DemoteResetsToFirstStage(t *testing.T) {
	p := &WordProgress{Stage: 4, Status: StatusLearning, LastResult: ResultCorrect}
	p.Demote()
	if p.Stage != FirstStage {
		t.Errorf("stage = %d, want %d", p.Stage, FirstStage)
	}
	if p.LastResult != ResultIncorrect {
		t.Errorf("last result = %q, want incorrect", p.LastResult)
	}
}

func TestWordProgress_MasteryInvariant(t *testing.T) {
	p := &WordProgress{Stage: FirstStage, Status: StatusLearning}
	for i := 0; i < 10; i++ {
		p.Advance()
		mastered := p.Status == StatusMastered
		if mastered != (p.Stage >= MasteryStage) {
			t.Fatalf("invariant broken at stage %d: status %q", p.Stage, p.Status)
		}
	}
}

func TestNewProgress(t *testing.T) {
	m := NewProgress([]string{"a", "b"})
	if len(m) != 2 {
		t.Fatalf("got %d entries, want 2", len(m))
	}
	if m["a"].Stage != FirstStage || m["a"].Status != StatusLearning || m["a"].LastResult != ResultNone {
		t.Errorf("fresh progress = %+v", m["a"])
	}
}

func TestMasteredProgress(t *testing.T) {
	m := MasteredProgress([]string{"a"})
	if m["a"].Status != StatusMastered || m["a"].Stage != MasteryStage {
		t.Errorf("pre-seeded progress = %+v", m["a"])
	}
}
