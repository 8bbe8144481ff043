package notify

import (
	"strings"
	"testing"
	"time"
)

func TestBar_PushAndVisible(t *testing.T) {
	b := NewBar(20, 2)
	now := time.Now()

	b.Push(Event{Input: "a.json", Status: "OK", Timestamp: now})
	b.Push(Event{Input: "b.json", Status: "FAILED", Timestamp: now})
	b.Push(Event{Input: "c.json", Status: "OK", Timestamp: now})

	visible := b.Visible()
	if len(visible) != 2 {
		t.Fatalf("Visible() = %d items, want 2", len(visible))
	}
	if visible[0].Input != "b.json" {
		t.Errorf("visible[0].Input = %q, want b.json", visible[0].Input)
	}
	if visible[1].Input != "c.json" {
		t.Errorf("visible[1].Input = %q, want c.json", visible[1].Input)
	}
}

func TestBar_VisibleEmpty(t *testing.T) {
	b := NewBar(20, 2)
	if len(b.Visible()) != 0 {
		t.Error("empty bar should have no visible items")
	}
	if _, ok := b.Latest(); ok {
		t.Error("empty bar should have no latest event")
	}
}

func TestBar_MaxBuffer(t *testing.T) {
	b := NewBar(3, 2)
	now := time.Now()

	for i := 0; i < 10; i++ {
		b.Push(Event{Input: string(rune('a' + i)), Timestamp: now})
	}

	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (max buffer)", b.Len())
	}

	latest, ok := b.Latest()
	if !ok || latest.Input != "j" {
		t.Errorf("Latest() = %q, want j", latest.Input)
	}
}

func TestBar_Render(t *testing.T) {
	b := NewBar(20, 2)
	now := time.Now()

	b.Push(Event{
		Input:     "sheet.json",
		Status:    "FAILED",
		Detail:    "missing \"sprites\" field",
		Timestamp: now.Add(-2 * time.Minute),
	})
	b.Push(Event{
		Input:     "sheet.json",
		Status:    "OK",
		Detail:    "12 assets",
		Timestamp: now.Add(-3 * time.Second),
	})

	result := b.Render(200, now)
	if !strings.HasPrefix(result, "● sheet.json OK: 12 assets (3s ago)") {
		t.Errorf("newest event should render first, got: %q", result)
	}
	if !strings.Contains(result, "FAILED") || !strings.Contains(result, "2m ago") {
		t.Errorf("render should contain the older failure, got: %q", result)
	}
}

func TestBar_RenderEmpty(t *testing.T) {
	b := NewBar(20, 2)
	if b.Render(80, time.Now()) != "" {
		t.Error("empty bar should render empty string")
	}
}

func TestBar_RenderTruncation(t *testing.T) {
	b := NewBar(20, 2)
	now := time.Now()

	b.Push(Event{Input: "very-long-sheet-name.json", Status: "OK", Detail: "120 assets", Timestamp: now})
	b.Push(Event{Input: "another-long-sheet.json", Status: "FAILED", Detail: "boom", Timestamp: now})

	result := b.Render(30, now)
	runes := []rune(result)
	if len(runes) != 30 {
		t.Errorf("render should be truncated to 30 runes, got %d: %q", len(runes), result)
	}
	if !strings.HasSuffix(result, "…") {
		t.Errorf("truncated render should end with ellipsis, got %q", result)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trun…"},
		{"ab", 1, "a"},
		{"ab", 0, ""},
		{"héllo", 3, "hé…"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
