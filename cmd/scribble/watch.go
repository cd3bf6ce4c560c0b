// ABOUTME: Watch command following new scribbles as they are added.
// ABOUTME: Prints one list line per scribble until interrupted.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/ui"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print scribbles as they are added",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		return st.Watch(ctx, func(e *models.Entry) {
			fmt.Fprint(out, ui.FormatEntry(e, time.Now()))
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
