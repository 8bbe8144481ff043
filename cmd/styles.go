package cmd

import (
	"fmt"
	"time"

	"github.com/JPM1118/assetconv/internal/convert"
	"github.com/JPM1118/assetconv/internal/grouper"
	"github.com/JPM1118/assetconv/internal/watcher"
	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	animStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	staticStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// formatResult renders a one-line summary of a finished conversion.
func formatResult(res convert.Result) string {
	line := fmt.Sprintf("%s %d sprites → %d assets (%d animations",
		okStyle.Render("✓"), res.Sprites, res.Summary.Assets, res.Summary.Animations)
	if res.Summary.Holes > 0 {
		line += fmt.Sprintf(", %s", errorStyle.Render(fmt.Sprintf("%d missing frames", res.Summary.Holes)))
	}
	line += ")"
	if res.Output != "" {
		line += mutedStyle.Render(" → " + displayOutput(res.Output))
	}
	return line
}

// formatUpdate renders one watch-mode line.
func formatUpdate(u watcher.Update) string {
	stamp := mutedStyle.Render(u.State.LastRun.Format(time.TimeOnly))
	if u.Result != nil {
		return stamp + " " + formatResult(*u.Result)
	}
	return fmt.Sprintf("%s %s %s", stamp, errorStyle.Render("✗"), u.State.LastError)
}

func kindLabel(seq grouper.Sequence) string {
	kind := grouper.Describe(seq)
	switch kind {
	case "animation":
		return animStyle.Render(kind)
	case "static":
		return staticStyle.Render(kind)
	default:
		return mutedStyle.Render(kind)
	}
}

func displayOutput(p string) string {
	if p == "-" {
		return "stdout"
	}
	return p
}
