// ABOUTME: Tag commands for managing scribble tags.
// ABOUTME: Provides add, rm and list subcommands plus the short "tag <tag> <id>" form.

package main

import (
	"fmt"

	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/ui"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag [<tag> <id-prefix>]",
	Short: "Manage tags",
	Long: `Add, remove, or list tags on scribbles.

"scribble tag <tag> <id-prefix>" is shorthand for "scribble tag add <id-prefix> <tag>".`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected <tag> <id-prefix>, got %d arguments", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return addTag(cmd, args[1], args[0])
	},
}

var tagAddCmd = &cobra.Command{
	Use:   "add <id-prefix> <tag>",
	Short: "Add a tag to a scribble",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addTag(cmd, args[0], args[1])
	},
}

func addTag(cmd *cobra.Command, prefix, tagName string) error {
	id, err := resolve(prefix)
	if err != nil {
		return err
	}
	if err := st.Tag(id, tagName); err != nil {
		return fmt.Errorf("failed to add tag: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Added tag %q to %s", tagName, models.Short(id))))
	return nil
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <id-prefix> <tag>",
	Short: "Remove a tag from a scribble",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolve(args[0])
		if err != nil {
			return err
		}
		tagName := args[1]

		if err := st.Untag(id, tagName); err != nil {
			return fmt.Errorf("failed to remove tag: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Removed tag %q from %s", tagName, models.Short(id))))
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags, most recently used first",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := st.AllTags()
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}

		if len(tags) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tags found.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.FormatTagList(tags))
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags <id-prefix>",
	Short: "List the tags of one scribble",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolve(args[0])
		if err != nil {
			return err
		}
		names, err := st.TagsOf(id)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRmCmd)
	tagCmd.AddCommand(tagListCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(tagsCmd)
}
