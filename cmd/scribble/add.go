// ABOUTME: Add command for storing new scribbles.
// ABOUTME: Content comes from arguments, --file, or stdin.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Store a new scribble",
	Long: `Store a new scribble and print its id. Arguments are joined with spaces;
with no arguments the content is read from --file or stdin, byte for byte.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tagsFlag, _ := cmd.Flags().GetString("tags")
		fileFlag, _ := cmd.Flags().GetString("file")

		var content []byte
		var err error

		switch {
		case len(args) > 0:
			content = []byte(strings.Join(args, " "))
		case fileFlag != "":
			content, err = os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
		default:
			content, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}

		if strings.TrimSpace(string(content)) == "" {
			return fmt.Errorf("scribble content cannot be empty")
		}

		id, err := st.Add(content)
		if err != nil {
			return fmt.Errorf("failed to store scribble: %w", err)
		}

		for _, tag := range splitTags(tagsFlag) {
			if err := st.Tag(id, tag); err != nil {
				return fmt.Errorf("failed to add tag %q: %w", tag, err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

// splitTags parses a comma-separated --tags value.
func splitTags(flag string) []string {
	var tags []string
	for _, tag := range strings.Split(flag, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func init() {
	addCmd.Flags().StringP("tags", "t", "", "comma-separated tags")
	addCmd.Flags().String("file", "", "read content from file")
	rootCmd.AddCommand(addCmd)
}
