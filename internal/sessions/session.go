package sessions

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

type CheckResult struct {
	Severity string              `json:"severity"`
	Evidence map[string]*float64 `json:"evidence"`
}

type Rep struct {
	RepIndex   int                    `json:"rep_index"`
	Confidence map[string]any         `json:"confidence"`
	Checks     map[string]CheckResult `json:"checks"`
}

type Session struct {
	ID        int       `json:"id"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RepCount  int       `json:"rep_count"`
	Reps      []Rep     `json:"reps"`
}
