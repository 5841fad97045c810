package rag

import (
	"sync"
	"time"
)

// Turn is one question and its answer within a session.
type Turn struct {
	Query   string    `json:"query"`
	Answer  string    `json:"answer"`
	Sources []Source  `json:"sources"`
	AskedAt time.Time `json:"asked_at"`
}

// History is an append-only record of a session's turns. Safe for
// concurrent use.
type History struct {
	mu    sync.RWMutex
	turns []Turn
}

func NewHistory() *History {
	return &History{turns: make([]Turn, 0)}
}

// Append records a completed turn.
func (h *History) Append(turn Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, turn)
}

// Turns returns a copy of all recorded turns, oldest first.
func (h *History) Turns() []Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len reports the number of recorded turns.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}
