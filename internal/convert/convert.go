package convert

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/JPM1118/assetconv/internal/grouper"
	"github.com/JPM1118/assetconv/internal/sheet"
)

// Job describes one conversion from a sprite sheet to a grouped document.
type Job struct {
	Input  string
	Output string
	Indent int

	// DryRun skips writing the output document.
	DryRun bool
}

// Result describes a finished conversion.
type Result struct {
	Input    string
	Output   string // empty for dry runs
	Assets   *grouper.Assets
	Summary  grouper.Summary
	Sprites  int
	Duration time.Duration
}

// Converter runs conversions and reports whether the input has changed.
// Job implements it; the watcher depends on the interface.
type Converter interface {
	Convert(ctx context.Context) (Result, error)
	Fingerprint() (string, error)
}

var _ Converter = Job{}

// Convert loads the input, groups it and writes the output document.
// Nothing is written if loading fails.
func (j Job) Convert(ctx context.Context) (Result, error) {
	start := time.Now()

	s, err := sheet.Load(j.Input)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	assets := grouper.Group(s.Sprites)
	res := Result{
		Input:   j.Input,
		Assets:  assets,
		Summary: grouper.Summarize(assets),
		Sprites: len(s.Sprites),
	}

	if !j.DryRun {
		if err := sheet.WriteJSON(j.Output, grouper.Document{Frames: assets}, j.Indent); err != nil {
			return Result{}, err
		}
		res.Output = j.Output
	}

	res.Duration = time.Since(start)
	return res, nil
}

// Fingerprint identifies the current contents of the input by size and
// modification time.
func (j Job) Fingerprint() (string, error) {
	if j.Input == sheet.StdioPath {
		return "", fmt.Errorf("cannot fingerprint standard input")
	}
	info, err := os.Stat(j.Input)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", j.Input, err)
	}
	return fmt.Sprintf("%d-%d", info.Size(), info.ModTime().UnixNano()), nil
}
