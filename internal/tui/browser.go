package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/JPM1118/assetconv/internal/convert"
	"github.com/JPM1118/assetconv/internal/grouper"
	"github.com/JPM1118/assetconv/internal/notify"
	"github.com/JPM1118/assetconv/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	colBase     = 32
	colKind     = 12
	colSlots    = 8
	minWidth    = 60
	minHeight   = 12
	headerLines = 4 // header + subheader + column header + separator
	footerLines = 2 // status bar + notification bar
)

// Messages

type assetsLoadedMsg struct {
	result convert.Result
	err    error
}

type watchUpdateMsg struct {
	update watcher.Update
}

// Option configures a Browser.
type Option func(*Browser)

// WithWatcher makes the browser follow a running watcher instead of
// converting once.
func WithWatcher(w *watcher.Watcher) Option {
	return func(b *Browser) { b.watcher = w }
}

// WithBell rings the bell when a watched conversion fails.
func WithBell(bell *notify.Bell) Option {
	return func(b *Browser) { b.bell = bell }
}

// WithEventBar records conversion events in bar.
func WithEventBar(bar *notify.Bar) Option {
	return func(b *Browser) { b.bar = bar }
}

// Browser is a Bubble Tea model listing the grouped assets of one sheet.
type Browser struct {
	conv     convert.Converter
	input    string
	watcher  *watcher.Watcher
	bell     *notify.Bell
	bar      *notify.Bar
	assets   *grouper.Assets
	keys     []string
	summary  grouper.Summary
	cursor   int
	expanded bool
	width    int
	height   int
	err      error
	loading  bool
	lastErr  string // transient error shown in notification bar
	now      func() time.Time
}

// NewBrowser creates a browser for the sheet at input.
func NewBrowser(conv convert.Converter, input string, opts ...Option) Browser {
	b := Browser{
		conv:    conv,
		input:   input,
		loading: true,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	if b.bar == nil {
		b.bar = notify.NewBar(20, 2)
	}
	return b
}

// Err returns the load error if the sheet never loaded.
func (b Browser) Err() error {
	return b.err
}

// Init loads the assets, or waits for the watcher's first conversion.
func (b Browser) Init() tea.Cmd {
	if b.watcher != nil {
		return b.waitForUpdate()
	}
	return b.loadAssets()
}

func (b Browser) loadAssets() tea.Cmd {
	conv := b.conv
	return func() tea.Msg {
		res, err := conv.Convert(context.Background())
		return assetsLoadedMsg{result: res, err: err}
	}
}

func (b Browser) waitForUpdate() tea.Cmd {
	ch := b.watcher.Updates()
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return watchUpdateMsg{update: u}
	}
}

// Update handles messages.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return b.handleKey(msg)

	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil

	case assetsLoadedMsg:
		b.loading = false
		if msg.err != nil {
			if b.assets == nil {
				b.err = msg.err
			}
			b.recordFailure(msg.err.Error())
		} else {
			b.err = nil
			b.apply(msg.result)
		}
		return b, nil

	case watchUpdateMsg:
		b.loading = false
		u := msg.update
		if u.Result != nil {
			b.apply(*u.Result)
		} else {
			b.recordFailure(u.State.LastError)
			b.bell.Ring(u.State.Status, b.now())
		}
		return b, b.waitForUpdate()
	}

	return b, nil
}

func (b *Browser) apply(res convert.Result) {
	b.assets = res.Assets
	b.keys = res.Assets.Keys()
	b.summary = res.Summary
	b.lastErr = ""
	b.bar.Push(notify.Event{
		Input:     b.input,
		Status:    watcher.StatusOK,
		Detail:    fmt.Sprintf("%d assets", res.Summary.Assets),
		Timestamp: b.now(),
	})

	// Clamp cursor
	if b.cursor >= len(b.keys) {
		b.cursor = max(0, len(b.keys)-1)
	}
	if len(b.keys) == 0 {
		b.expanded = false
	}
}

func (b *Browser) recordFailure(msg string) {
	if b.assets == nil {
		// First load failed, nothing to show
		b.lastErr = msg
	} else {
		// Reload failed, keep stale data
		b.lastErr = fmt.Sprintf("Reload failed: %s", msg)
	}
	b.bar.Push(notify.Event{
		Input:     b.input,
		Status:    watcher.StatusFailed,
		Detail:    msg,
		Timestamp: b.now(),
	})
}

func (b Browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return b, tea.Quit

	case "esc":
		b.expanded = false
		return b, nil

	case "j", "down":
		if b.cursor < len(b.keys)-1 {
			b.cursor++
		}
		return b, nil

	case "k", "up":
		if b.cursor > 0 {
			b.cursor--
		}
		return b, nil

	case "enter":
		if len(b.keys) > 0 {
			b.expanded = !b.expanded
		}
		return b, nil

	case "r":
		b.loading = true
		if b.watcher != nil {
			b.watcher.TriggerNow()
			return b, nil
		}
		return b, b.loadAssets()

	case "G":
		if len(b.keys) > 0 {
			b.cursor = len(b.keys) - 1
		}
		return b, nil

	case "g":
		b.cursor = 0
		return b, nil
	}

	return b, nil
}

// View renders the browser.
func (b Browser) View() string {
	if b.width < minWidth || b.height < minHeight {
		return fmt.Sprintf("\n  Terminal too small (need %dx%d, got %dx%d)\n", minWidth, minHeight, b.width, b.height)
	}

	var s strings.Builder

	s.WriteString(b.renderHeader())
	s.WriteString("\n")
	s.WriteString(b.renderSubheader())
	s.WriteString("\n")
	s.WriteString(b.renderColumnHeaders())
	s.WriteString("\n")
	s.WriteString(b.renderSeparator())
	s.WriteString("\n")

	listHeight := b.height - headerLines - footerLines
	if b.expanded {
		s.WriteString(b.renderFrames(listHeight))
	} else {
		s.WriteString(b.renderAssetList(listHeight))
	}

	s.WriteString(b.renderNotificationBar())
	s.WriteString("\n")
	s.WriteString(b.renderStatusBar())

	return s.String()
}

func (b Browser) renderHeader() string {
	title := headerStyle.Render("assetconv")

	right := ""
	if b.summary.Holes > 0 {
		right = badgeStyle.Render(fmt.Sprintf("[%d missing frames]", b.summary.Holes))
	}

	gap := b.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + right
}

func (b Browser) renderSubheader() string {
	status := fmt.Sprintf("%s: %d assets, %d animations, %d slots",
		b.input, b.summary.Assets, b.summary.Animations, b.summary.Slots)
	if b.lastErr != "" {
		status = b.input + ": Error"
	}
	if b.loading {
		status = b.input + ": Loading..."
	}
	if b.watcher != nil {
		status += " (watching)"
	}
	return subheaderStyle.Render(truncate(status, b.width))
}

func (b Browser) renderColumnHeaders() string {
	if b.expanded {
		return columnHeaderStyle.Render(padRight("SLOT", colKind) + "METADATA")
	}
	header := padRight("BASE KEY", colBase) + padRight("KIND", colKind) + padRight("SLOTS", colSlots) + "HOLES"
	return columnHeaderStyle.Render(header)
}

func (b Browser) renderSeparator() string {
	if b.expanded {
		return subheaderStyle.Render(padRight(strings.Repeat("─", colKind-1), colKind) + strings.Repeat("─", 16))
	}
	sep := padRight(strings.Repeat("─", colBase-1), colBase) +
		padRight(strings.Repeat("─", colKind-1), colKind) +
		padRight(strings.Repeat("─", colSlots-1), colSlots) +
		strings.Repeat("─", 8)
	return subheaderStyle.Render(sep)
}

func (b Browser) renderAssetList(height int) string {
	if b.loading && b.assets == nil {
		return padLines("  Loading sprites...\n", height)
	}

	if len(b.keys) == 0 {
		msg := "  No assets.\n\n  The sheet's \"sprites\" object is empty or could not be read.\n"
		return padLines(msg, height)
	}

	// Calculate visible range (scroll if needed)
	start := 0
	if b.cursor >= height {
		start = b.cursor - height + 1
	}
	end := min(start+height, len(b.keys))

	var s strings.Builder
	for i := start; i < end; i++ {
		key := b.keys[i]
		seq, _ := b.assets.Get(key)

		prefix := "  "
		if i == b.cursor {
			prefix = cursorStyle.Render("▸ ")
		}

		name := padRight(truncate(key, colBase-3), colBase-2) // -2 for prefix
		kind := grouper.Describe(seq)
		styledKind := kindStyle(kind).Render(padRight(kind, colKind))
		slots := padRight(fmt.Sprintf("%d", len(seq)), colSlots)

		line := prefix + name + styledKind + slots
		if holes := seq.Holes(); len(holes) > 0 {
			line += holeStyle.Render(formatHoles(holes))
		}

		s.WriteString(line)
		s.WriteString("\n")
	}

	return padLines(s.String(), height)
}

func (b Browser) renderFrames(height int) string {
	key := b.keys[b.cursor]
	seq, _ := b.assets.Get(key)

	var s strings.Builder
	s.WriteString(cursorStyle.Render("▸ "+key) + "\n")

	rows := height - 1
	shown := len(seq)
	if shown > rows {
		shown = max(0, rows-1) // keep a row for the overflow marker
	}
	for i := 0; i < shown; i++ {
		slot := padRight(fmt.Sprintf("  #%02d", i+1), colKind)
		if !seq[i].Set {
			s.WriteString(slot + holeStyle.Render("(missing)") + "\n")
			continue
		}
		meta := truncate(compactMeta(seq[i].Meta), b.width-colKind)
		s.WriteString(slot + metaStyle.Render(meta) + "\n")
	}
	if shown < len(seq) {
		s.WriteString(subheaderStyle.Render(fmt.Sprintf("  … %d more", len(seq)-shown)) + "\n")
	}

	return padLines(s.String(), height)
}

func (b Browser) renderNotificationBar() string {
	if b.lastErr != "" {
		return notificationBarStyle.Render("  " + truncate(b.lastErr, b.width-4))
	}
	return notificationBarStyle.Render("  " + b.bar.Render(b.width-4, b.now()))
}

func (b Browser) renderStatusBar() string {
	return statusBarStyle.Render("  j/k:navigate  Enter:frames  Esc:back  r:reload  q:quit")
}

// Helpers

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

func truncate(s string, maxLen int) string {
	return notify.Truncate(s, maxLen)
}

func padLines(content string, height int) string {
	lines := strings.Count(content, "\n")
	padding := height - lines
	if padding > 0 {
		content += strings.Repeat("\n", padding)
	}
	return content
}

func compactMeta(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// formatHoles renders unset slot indices 1-based, as they appear in sprite keys.
func formatHoles(holes []int) string {
	parts := make([]string, 0, len(holes))
	for i, h := range holes {
		if i == 4 {
			parts = append(parts, "…")
			break
		}
		parts = append(parts, fmt.Sprintf("%02d", h+1))
	}
	return strings.Join(parts, ",")
}
