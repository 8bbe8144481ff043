package cmd

import (
	"context"
	"fmt"

	"github.com/JPM1118/assetconv/internal/config"
	"github.com/JPM1118/assetconv/internal/convert"
	"github.com/JPM1118/assetconv/internal/notify"
	"github.com/JPM1118/assetconv/internal/sheet"
	"github.com/JPM1118/assetconv/internal/tui"
	"github.com/JPM1118/assetconv/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var browseWatch bool

var browseCmd = &cobra.Command{
	Use:   "browse <sprite-sheet.json>",
	Short: "Browse grouped assets interactively",
	Long: `Browse the assets a sheet groups into, and the frames of each one.

With --watch the sheet is re-converted (and the output written) whenever it
changes, and the view follows along.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runBrowse(cmd.Context(), args[0], cfg)
	},
}

func init() {
	browseCmd.Flags().BoolVarP(&browseWatch, "watch", "w", false, "re-convert and refresh when the sheet changes")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(ctx context.Context, input string, cfg config.Config) error {
	if input == sheet.StdioPath {
		return fmt.Errorf("browse reads keys from standard input; pass a file path")
	}

	job := convert.Job{
		Input:  input,
		Output: cfg.Output.Path,
		Indent: cfg.Output.Indent,
		DryRun: !browseWatch,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := []tui.Option{tui.WithEventBar(notify.NewBar(20, 2))}
	if browseWatch {
		if _, err := job.Fingerprint(); err != nil {
			return err
		}
		w := watcher.New(job, watcher.Config{
			Input:        input,
			PollInterval: cfg.Watch.PollInterval.Duration,
		})
		w.Start(ctx)
		opts = append(opts, tui.WithWatcher(w))

		if cfg.Notifications.TerminalBell {
			opts = append(opts, tui.WithBell(notify.NewBell(cfg.Notifications.BellDebounce.Duration, []string{watcher.StatusFailed})))
		}
	}

	model := tui.NewBrowser(job, input, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	finalModel, err := program.Run()
	cancel() // Stop watcher
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	if m, ok := finalModel.(tui.Browser); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
