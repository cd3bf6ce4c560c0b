// ABOUTME: Show and cat commands for reading a scribble.
// ABOUTME: show renders markdown with metadata; cat writes the raw bytes.

package main

import (
	"fmt"

	"github.com/harper/scribble/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a scribble",
	Long:  `Display a scribble with its metadata, rendering text content as markdown.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")

		sc, err := st.Get(args[0])
		if err != nil {
			return err
		}
		tags, err := st.TagsOf(sc.ID)
		if err != nil {
			return fmt.Errorf("failed to read tags: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, ui.FormatHeader(sc, tags))

		if raw {
			_, err = out.Write(sc.Content)
			return err
		}
		rendered, err := ui.FormatContent(sc.Content)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

var catCmd = &cobra.Command{
	Use:   "cat <id-prefix>",
	Short: "Write a scribble's raw content to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolve(args[0])
		if err != nil {
			return err
		}
		content, err := st.Read(id)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(content)
		return err
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "print content without markdown rendering")
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(catCmd)
}
