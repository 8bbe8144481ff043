package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/JPM1118/assetconv/internal/convert"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <sprite-sheet.json>",
	Short: "Print how a sheet groups, without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job := convert.Job{Input: args[0], DryRun: true}
		res, err := job.Convert(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if res.Assets.Len() == 0 {
			fmt.Fprintln(out, "No sprites in sheet.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BASE KEY\tKIND\tSLOTS\tMISSING")
		fmt.Fprintln(w, "────────\t────\t─────\t───────")
		for _, key := range res.Assets.Keys() {
			seq, _ := res.Assets.Get(key)
			missing := "-"
			if holes := seq.Holes(); len(holes) > 0 {
				parts := make([]string, len(holes))
				for i, h := range holes {
					parts[i] = fmt.Sprintf("%02d", h+1)
				}
				missing = strings.Join(parts, ",")
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", key, kindLabel(seq), len(seq), missing)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, formatResult(res))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
