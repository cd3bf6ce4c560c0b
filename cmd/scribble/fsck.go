// ABOUTME: Fsck command checking store consistency.
// ABOUTME: Reports dangling tags and abandoned temp files, optionally removing them.

package main

import (
	"fmt"

	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/ui"
	"github.com/spf13/cobra"
)

var fsckCmd = &cobra.Command{
	Use:   "fsck",
	Short: "Check the store for dangling tags and leftover temp files",
	RunE: func(cmd *cobra.Command, args []string) error {
		repair, _ := cmd.Flags().GetBool("repair")
		out := cmd.OutOrStdout()

		report, err := st.Fsck(repair)
		if err != nil {
			return fmt.Errorf("fsck failed: %w", err)
		}

		fmt.Fprintf(out, "%d objects\n", report.Objects)
		for _, a := range report.Dangling {
			fmt.Fprintln(out, ui.Warning(fmt.Sprintf("tag %q points at missing %s", a.Tag, models.Short(a.ID))))
		}
		for _, name := range report.TempFiles {
			fmt.Fprintln(out, ui.Warning(fmt.Sprintf("leftover temp file %s", name)))
		}

		problems := len(report.Dangling) + len(report.TempFiles)
		switch {
		case problems == 0:
			fmt.Fprintln(out, ui.Success("store is consistent"))
		case repair:
			fmt.Fprintln(out, ui.Success(fmt.Sprintf("repaired %d problems", report.Repaired)))
		default:
			return fmt.Errorf("%d problems found, rerun with --repair to fix", problems)
		}
		return nil
	},
}

func init() {
	fsckCmd.Flags().Bool("repair", false, "remove dangling tags and temp files")
	rootCmd.AddCommand(fsckCmd)
}
