// ABOUTME: Config command to show and change settings.
// ABOUTME: Values are written back to the YAML config file.

package main

import (
	"fmt"

	"github.com/harper/scribble/internal/config"
	"github.com/harper/scribble/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Show or change configuration",
	Long: `With no arguments, print the effective configuration. With a key, print
that setting. With a key and value, update the config file.

Keys: root, tag_backend (symlink|hardlink|kv), strict_tags, list_limit.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		path := configFile(cmd)

		switch len(args) {
		case 0:
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "# %s\n%s", path, data)
			return nil
		case 1:
			var values map[string]any
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			if err := yaml.Unmarshal(data, &values); err != nil {
				return err
			}
			value, ok := values[args[0]]
			if !ok {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			fmt.Fprintln(out, value)
			return nil
		}

		// Only the named key is written, so neither --root nor
		// $SCRIBBLE_HOME is persisted by accident.
		if err := config.Update(path, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Set %s = %s in %s", args[0], args[1], path)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
