package memory

import "sync"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// DefaultMaxExchanges caps the window at 10 question/answer pairs.
	DefaultMaxExchanges = 10
)

// Turn is one utterance in a conversation.
type Turn struct {
	Role    string
	Content string
}

// Window is a bounded FIFO conversation history. When the cap is
// reached, recording a new exchange evicts the oldest one.
type Window struct {
	mu           sync.Mutex
	turns        []Turn
	maxExchanges int
}

func NewWindow(maxExchanges int) *Window {
	if maxExchanges <= 0 {
		maxExchanges = DefaultMaxExchanges
	}
	return &Window{
		maxExchanges: maxExchanges,
	}
}

// Seed loads persisted turns into an empty window. Turns beyond the cap
// are dropped from the oldest end. Seeding a non-empty window is a no-op.
func (w *Window) Seed(turns []Turn) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.turns) > 0 {
		return
	}

	maxTurns := w.maxExchanges * 2
	if len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}
	w.turns = append(w.turns, turns...)
}

// RecordExchange appends a user question and assistant answer, evicting
// the oldest exchange if the window is full.
func (w *Window) RecordExchange(question, answer string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.turns = append(w.turns,
		Turn{Role: RoleUser, Content: question},
		Turn{Role: RoleAssistant, Content: answer},
	)

	maxTurns := w.maxExchanges * 2
	if len(w.turns) > maxTurns {
		w.turns = w.turns[len(w.turns)-maxTurns:]
	}
}

// LastTurns returns a copy of up to n most recent turns, oldest first.
func (w *Window) LastTurns(n int) []Turn {
	w.mu.Lock()
	defer w.mu.Unlock()

	if n <= 0 || len(w.turns) == 0 {
		return nil
	}
	if n > len(w.turns) {
		n = len(w.turns)
	}
	out := make([]Turn, n)
	copy(out, w.turns[len(w.turns)-n:])
	return out
}

// Turns returns a copy of the full window, oldest first.
func (w *Window) Turns() []Turn {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.turns)
}
