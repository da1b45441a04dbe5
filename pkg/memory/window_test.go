package memory

import (
	"fmt"
	"testing"
)

func TestWindowEvictsOldestExchange(t *testing.T) {
	w := NewWindow(10)

	for i := 0; i < 11; i++ {
		w.RecordExchange(question(i), answer(i))
	}

	if w.Len() != 20 {
		t.Fatalf("Len = %d, want 20", w.Len())
	}

	turns := w.Turns()
	if turns[0].Content != question(1) {
		t.Errorf("oldest turn = %q, want %q", turns[0].Content, question(1))
	}
	if turns[len(turns)-1].Content != answer(10) {
		t.Errorf("newest turn = %q, want %q", turns[len(turns)-1].Content, answer(10))
	}
}

func TestWindowSeedTrimsToCap(t *testing.T) {
	w := NewWindow(2)

	seed := []Turn{
		{Role: RoleUser, Content: "q0"},
		{Role: RoleAssistant, Content: "a0"},
		{Role: RoleUser, Content: "q1"},
		{Role: RoleAssistant, Content: "a1"},
		{Role: RoleUser, Content: "q2"},
		{Role: RoleAssistant, Content: "a2"},
	}
	w.Seed(seed)

	turns := w.Turns()
	if len(turns) != 4 {
		t.Fatalf("len = %d, want 4", len(turns))
	}
	if turns[0].Content != "q1" {
		t.Errorf("oldest kept turn = %q, want q1", turns[0].Content)
	}
}

func TestWindowSeedIsOneShot(t *testing.T) {
	w := NewWindow(5)
	w.RecordExchange("live question", "live answer")

	w.Seed([]Turn{{Role: RoleUser, Content: "stale"}})

	turns := w.Turns()
	if len(turns) != 2 || turns[0].Content != "live question" {
		t.Errorf("seeding a non-empty window must be a no-op, got %+v", turns)
	}
}

func TestWindowLastTurns(t *testing.T) {
	w := NewWindow(10)
	for i := 0; i < 4; i++ {
		w.RecordExchange(question(i), answer(i))
	}

	last := w.LastTurns(3)
	if len(last) != 3 {
		t.Fatalf("len = %d, want 3", len(last))
	}
	if last[0].Content != answer(2) {
		t.Errorf("last[0] = %q, want %q", last[0].Content, answer(2))
	}

	all := w.LastTurns(100)
	if len(all) != 8 {
		t.Errorf("LastTurns beyond size = %d turns, want 8", len(all))
	}
}

func question(i int) string { return fmt.Sprintf("question-%d", i) }
func answer(i int) string   { return fmt.Sprintf("answer-%d", i) }
