package service

import (
	"sync"
	"time"
)

const (
	// maxTurns bounds how many turns the session retains.
	maxTurns = 20
	// DisplayTurns is how many recent turns the presentation layer shows.
	DisplayTurns = 10
)

// Turn is one (question, answer) exchange held in session memory.
// Turns are never persisted to the index.
type Turn struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}

// Session holds the bounded conversation history for the running process.
// Safe for concurrent use.
type Session struct {
	mu    sync.Mutex
	turns []Turn
}

// NewSession creates an empty conversation session.
func NewSession() *Session {
	return &Session{}
}

// Append records one exchange, evicting the oldest turn once the bound is hit.
func (s *Session) Append(question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, Turn{
		Question: question,
		Answer:   answer,
		AskedAt:  time.Now(),
	})
	if len(s.turns) > maxTurns {
		s.turns = s.turns[len(s.turns)-maxTurns:]
	}
}

// Recent returns up to n of the most recent turns, oldest first.
func (s *Session) Recent(n int) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || len(s.turns) == 0 {
		return nil
	}
	start := len(s.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(s.turns)-start)
	copy(out, s.turns[start:])
	return out
}

// Len returns the number of retained turns.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Clear drops all retained turns.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}
