package service

import (
	"fmt"
	"testing"
)

func TestSession_AppendAndRecent(t *testing.T) {
	session := NewSession()

	session.Append("first question", "first answer")
	session.Append("second question", "second answer")

	turns := session.Recent(10)
	if len(turns) != 2 {
		t.Fatalf("Recent(10) returned %d turns, want 2", len(turns))
	}
	if turns[0].Question != "first question" || turns[1].Question != "second question" {
		t.Errorf("Recent() order = %q, %q, want oldest first", turns[0].Question, turns[1].Question)
	}
	if turns[0].AskedAt.IsZero() {
		t.Error("AskedAt not set")
	}
}

func TestSession_RecentLimits(t *testing.T) {
	session := NewSession()
	for i := 0; i < 5; i++ {
		session.Append(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	tests := []struct {
		name      string
		n         int
		wantLen   int
		wantFirst string
	}{
		{"fewer than stored", 2, 2, "q3"},
		{"exactly stored", 5, 5, "q0"},
		{"more than stored", 10, 5, "q0"},
		{"zero", 0, 0, ""},
		{"negative", -1, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turns := session.Recent(tt.n)
			if len(turns) != tt.wantLen {
				t.Fatalf("Recent(%d) returned %d turns, want %d", tt.n, len(turns), tt.wantLen)
			}
			if tt.wantLen > 0 && turns[0].Question != tt.wantFirst {
				t.Errorf("Recent(%d)[0].Question = %q, want %q", tt.n, turns[0].Question, tt.wantFirst)
			}
		})
	}
}

func TestSession_BoundedRetention(t *testing.T) {
	session := NewSession()
	for i := 0; i < maxTurns+7; i++ {
		session.Append(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	if session.Len() != maxTurns {
		t.Fatalf("Len() = %d, want %d", session.Len(), maxTurns)
	}
	turns := session.Recent(maxTurns)
	if turns[0].Question != "q7" {
		t.Errorf("oldest retained turn = %q, want %q", turns[0].Question, "q7")
	}
	if turns[len(turns)-1].Question != fmt.Sprintf("q%d", maxTurns+6) {
		t.Errorf("newest retained turn = %q", turns[len(turns)-1].Question)
	}
}

func TestSession_Clear(t *testing.T) {
	session := NewSession()
	session.Append("q", "a")
	session.Clear()

	if session.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", session.Len())
	}
	if turns := session.Recent(5); len(turns) != 0 {
		t.Errorf("Recent() after Clear returned %d turns, want 0", len(turns))
	}
}
