package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/JPM1118/assetconv/internal/config"
	"github.com/JPM1118/assetconv/internal/convert"
	"github.com/spf13/cobra"
)

var (
	configFile string
	outputPath string
	indent     int
)

var rootCmd = &cobra.Command{
	Use:   "assetconv <sprite-sheet.json>",
	Short: "Group sprite-sheet frames into animation sequences",
	Long: `assetconv reads a sprite-sheet descriptor ({"sprites": {...}}) and writes
a grouped asset descriptor ({"frames": {...}}).

Keys ending in a one- or two-digit frame number ("walk/01", "walk/02") are
collected, in frame order, under their base key ("walk"). Every other key
becomes a single-entry list under its full name.

Use "-" as the input to read from standard input.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
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
		res, err := job.Convert(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), formatResult(res))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/assetconv/config.yml)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", `output file, "-" for stdout (default "assets.json")`)
	rootCmd.PersistentFlags().IntVar(&indent, "indent", 2, "spaces of JSON indentation, 0 for compact output")
}

// loadConfig reads the config file and environment, then applies flags that
// were set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFrom(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Path = outputPath
	}
	if flags.Changed("indent") {
		cfg.Output.Indent = indent
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		return err
	}
	return nil
}
