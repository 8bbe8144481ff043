package watcher

import (
	"time"
)

// Conversion states.
const (
	StatusPending = "PENDING"
	StatusOK      = "OK"
	StatusFailed  = "FAILED"
)

// MaxBackoff is the maximum delay before retrying a failing input.
const MaxBackoff = time.Minute

// State tracks the conversion history of the watched input.
type State struct {
	Input          string
	Status         string
	PreviousStatus string
	LastRun        time.Time
	Conversions    int
	ConsecFails    int
	BackoffUntil   time.Time
	LastError      string
}

// ShouldRun returns true if the input is not in a failure backoff window.
func (s *State) ShouldRun(now time.Time) bool {
	return now.After(s.BackoffUntil) || now.Equal(s.BackoffUntil)
}

// RecordSuccess records a completed conversion.
// Returns true if the status changed (a transition occurred).
func (s *State) RecordSuccess(now time.Time) bool {
	s.PreviousStatus = s.Status
	s.Status = StatusOK
	s.LastRun = now
	s.Conversions++
	s.ConsecFails = 0
	s.BackoffUntil = time.Time{}
	s.LastError = ""
	return s.IsTransition()
}

// RecordFailure records a failed attempt and calculates backoff.
// Returns true if the status changed.
func (s *State) RecordFailure(baseInterval time.Duration, now time.Time, err error) bool {
	s.PreviousStatus = s.Status
	s.Status = StatusFailed
	s.ConsecFails++
	s.LastRun = now
	if err != nil {
		s.LastError = err.Error()
	}

	// base * 2^(fails-1), capped at MaxBackoff
	backoff := baseInterval
	for i := 1; i < s.ConsecFails; i++ {
		backoff *= 2
		if backoff > MaxBackoff {
			backoff = MaxBackoff
			break
		}
	}
	s.BackoffUntil = now.Add(backoff)
	return s.IsTransition()
}

// IsTransition returns true if the current status differs from the previous.
func (s *State) IsTransition() bool {
	return s.PreviousStatus != "" && s.PreviousStatus != StatusPending && s.PreviousStatus != s.Status
}
