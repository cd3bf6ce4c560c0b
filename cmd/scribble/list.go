// ABOUTME: List command for displaying recent scribbles.
// ABOUTME: Newest first, optionally restricted to one tag.

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scribbles",
	Long:  `List scribbles newest first with a one-line preview of each.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tagFlag, _ := cmd.Flags().GetString("tag")
		limitFlag, _ := cmd.Flags().GetInt("limit")
		jsonFlag, _ := cmd.Flags().GetBool("json")

		if !cmd.Flags().Changed("limit") {
			limitFlag = cfg.ListLimit
		}

		var entries []*models.Entry
		var err error
		if tagFlag != "" {
			entries, err = st.ListTagged(tagFlag, limitFlag)
		} else {
			entries, err = st.List(limitFlag)
		}
		if err != nil {
			return fmt.Errorf("failed to list scribbles: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonFlag {
			if entries == nil {
				entries = []*models.Entry{}
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No scribbles found.")
			return nil
		}
		fmt.Fprint(out, ui.FormatEntries(entries, time.Now()))
		return nil
	},
}

func init() {
	listCmd.Flags().IntP("limit", "n", 20, "max scribbles to show (0 for all)")
	listCmd.Flags().StringP("tag", "t", "", "only scribbles with this tag")
	listCmd.Flags().Bool("json", false, "print entries as JSON")
	rootCmd.AddCommand(listCmd)
}
