// ABOUTME: Remove command for deleting scribbles.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/harper/scribble/internal/listing"
	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove a scribble",
	Long:  `Delete a scribble and all its tag associations.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		sc, err := st.Get(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !force {
			fmt.Fprintf(out, "Delete scribble %s (%s)? [y/N] ", sc.ShortID(), firstLine(sc.Content))
			reader := bufio.NewReader(cmd.InOrStdin())
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		if err := st.Remove(sc.ID); err != nil {
			return fmt.Errorf("failed to delete scribble: %w", err)
		}

		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Deleted scribble %s", models.Short(sc.ID))))
		return nil
	},
}

func firstLine(content []byte) string {
	n := min(len(content), listing.PreviewWindow)
	line, _ := listing.Preview(content[:n], n < len(content))
	return line
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
