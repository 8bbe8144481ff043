package cmd

import (
	"fmt"

	"github.com/JPM1118/assetconv/internal/convert"
	"github.com/JPM1118/assetconv/internal/notify"
	"github.com/JPM1118/assetconv/internal/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <sprite-sheet.json>",
	Short: "Re-convert a sheet every time it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		job := convert.Job{
			Input:  args[0],
			Output: cfg.Output.Path,
			Indent: cfg.Output.Indent,
		}
		if _, err := job.Fingerprint(); err != nil {
			return err
		}

		w := watcher.New(job, watcher.Config{
			Input:        args[0],
			PollInterval: cfg.Watch.PollInterval.Duration,
		})

		var bell *notify.Bell
		if cfg.Notifications.TerminalBell {
			bell = notify.NewBell(cfg.Notifications.BellDebounce.Duration, []string{watcher.StatusFailed})
		}

		ctx := cmd.Context()
		w.Start(ctx)

		out := cmd.ErrOrStderr()
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("watching %s every %s (Ctrl+C to stop)", args[0], cfg.Watch.PollInterval)))
		for {
			select {
			case <-ctx.Done():
				return nil
			case u := <-w.Updates():
				fmt.Fprintln(out, formatUpdate(u))
				bell.Ring(u.State.Status, u.State.LastRun)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
