package notify

import (
	"fmt"
	"time"
)

// Event records the outcome of one conversion attempt.
type Event struct {
	Input     string
	Status    string
	Detail    string // summary on success, error text on failure
	Timestamp time.Time
}

// Bar keeps the most recent conversion events, oldest first.
type Bar struct {
	items    []Event
	maxStore int
	visible  int
}

// NewBar creates an event bar that buffers maxStore events and shows the
// newest visible ones.
func NewBar(maxStore, visible int) *Bar {
	if visible <= 0 {
		visible = 1
	}
	return &Bar{
		items:    make([]Event, 0, maxStore),
		maxStore: maxStore,
		visible:  visible,
	}
}

// Push adds an event, trimming oldest if at capacity.
func (b *Bar) Push(e Event) {
	b.items = append(b.items, e)
	if len(b.items) > b.maxStore {
		b.items = b.items[len(b.items)-b.maxStore:]
	}
}

// Visible returns the newest events, oldest first.
func (b *Bar) Visible() []Event {
	if len(b.items) <= b.visible {
		return b.items
	}
	return b.items[len(b.items)-b.visible:]
}

// Latest returns the newest event.
func (b *Bar) Latest() (Event, bool) {
	if len(b.items) == 0 {
		return Event{}, false
	}
	return b.items[len(b.items)-1], true
}

// Len returns the total number of buffered events.
func (b *Bar) Len() int {
	return len(b.items)
}

// Render formats the visible events on one line, truncated to width runes.
func (b *Bar) Render(width int, now time.Time) string {
	visible := b.Visible()
	if len(visible) == 0 {
		return ""
	}

	result := ""
	for i := len(visible) - 1; i >= 0; i-- {
		if result != "" {
			result += " │ "
		}
		result += FormatEvent(visible[i], now)
	}
	return Truncate(result, width)
}

// FormatEvent renders a single event like "● sheet.json OK: 12 assets (3s ago)".
func FormatEvent(e Event, now time.Time) string {
	text := fmt.Sprintf("● %s %s", e.Input, e.Status)
	if e.Detail != "" {
		text += ": " + e.Detail
	}
	return fmt.Sprintf("%s (%s)", text, age(now.Sub(e.Timestamp)))
}

func age(d time.Duration) string {
	d = d.Truncate(time.Second)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// Truncate shortens s to at most width runes, marking the cut with "…".
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 0 {
		return ""
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
