package notify

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Bell rings the terminal bell when a conversion lands in one of the
// trigger states, at most once per debounce window.
type Bell struct {
	out       io.Writer
	debounce  time.Duration
	lastRing  time.Time
	suspended bool
	triggerOn map[string]bool
}

// NewBell creates a Bell with the given debounce interval and trigger states.
func NewBell(debounce time.Duration, states []string) *Bell {
	triggerOn := make(map[string]bool, len(states))
	for _, s := range states {
		triggerOn[s] = true
	}
	return &Bell{
		out:       os.Stderr,
		debounce:  debounce,
		triggerOn: triggerOn,
	}
}

// Ring attempts to ring the terminal bell for the given status.
// Returns true if the bell actually rang.
func (b *Bell) Ring(status string, now time.Time) bool {
	if b == nil || b.suspended {
		return false
	}
	if !b.triggerOn[status] {
		return false
	}
	if !b.lastRing.IsZero() && now.Sub(b.lastRing) < b.debounce {
		return false
	}

	fmt.Fprint(b.out, "\a")
	b.lastRing = now
	return true
}

// Suspend disables bell ringing.
func (b *Bell) Suspend() {
	b.suspended = true
}

// Resume re-enables bell ringing.
func (b *Bell) Resume() {
	b.suspended = false
}

// IsSuspended returns whether the bell is currently suspended.
func (b *Bell) IsSuspended() bool {
	return b.suspended
}
