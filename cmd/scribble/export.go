// ABOUTME: Export command for backing up scribbles.
// ABOUTME: Supports JSON and markdown-with-frontmatter export formats.

package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const encodingBase64 = "base64"

type ExportScribble struct {
	ID        string    `json:"id" yaml:"id"`
	Content   string    `json:"content" yaml:"-"`
	Encoding  string    `json:"encoding,omitempty" yaml:"-"`
	Tags      []string  `json:"tags" yaml:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created"`
}

type ExportData struct {
	ExportedAt time.Time        `json:"exported_at"`
	Version    string           `json:"version"`
	Scribbles  []ExportScribble `json:"scribbles"`
}

// Bytes returns the scribble content, decoding base64 when needed.
func (e *ExportScribble) Bytes() ([]byte, error) {
	if e.Encoding == encodingBase64 {
		return base64.StdEncoding.DecodeString(e.Content)
	}
	return []byte(e.Content), nil
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scribbles",
	Long:  `Export scribbles to JSON or to a directory of markdown files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		tagFlag, _ := cmd.Flags().GetString("tag")

		var entries []*models.Entry
		var err error
		if tagFlag != "" {
			entries, err = st.ListTagged(tagFlag, 0)
		} else {
			entries, err = st.List(0)
		}
		if err != nil {
			return fmt.Errorf("failed to list scribbles: %w", err)
		}

		scribbles := make([]ExportScribble, 0, len(entries))
		for _, e := range entries {
			content, err := st.Read(e.ID)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", models.Short(e.ID), err)
			}
			tags, err := st.TagsOf(e.ID)
			if err != nil {
				return fmt.Errorf("failed to read tags of %s: %w", models.Short(e.ID), err)
			}
			es := ExportScribble{ID: e.ID, Tags: tags, CreatedAt: e.CreatedAt}
			if utf8.Valid(content) {
				es.Content = string(content)
			} else {
				es.Content = base64.StdEncoding.EncodeToString(content)
				es.Encoding = encodingBase64
			}
			scribbles = append(scribbles, es)
		}

		switch format {
		case "json":
			return exportJSON(cmd.OutOrStdout(), scribbles, outputPath)
		case "md":
			return exportMarkdown(cmd.OutOrStdout(), scribbles, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func exportJSON(out io.Writer, scribbles []ExportScribble, outputPath string) error {
	export := ExportData{
		ExportedAt: time.Now(),
		Version:    "1.0",
		Scribbles:  scribbles,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}

	if outputPath == "" || outputPath == "-" {
		fmt.Fprintln(out, string(data))
		return nil
	}

	return os.WriteFile(outputPath, data, 0o644)
}

// exportMarkdown writes one <id>.md per text scribble, content verbatim
// after the frontmatter. Binary scribbles go to <id>.bin untouched, with
// their creation time as the file's mtime.
func exportMarkdown(out io.Writer, scribbles []ExportScribble, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	for _, es := range scribbles {
		content, err := es.Bytes()
		if err != nil {
			return err
		}

		if es.Encoding == encodingBase64 {
			// .bin files carry no frontmatter; the mtime records creation.
			path := filepath.Join(outputDir, es.ID+".bin")
			if err := os.WriteFile(path, content, 0o644); err != nil {
				return err
			}
			if err := os.Chtimes(path, es.CreatedAt, es.CreatedAt); err != nil {
				return err
			}
			continue
		}

		var sb strings.Builder
		sb.WriteString("---\n")
		frontmatter, err := yaml.Marshal(es)
		if err != nil {
			return err
		}
		sb.Write(frontmatter)
		sb.WriteString("---\n")
		sb.Write(content)

		if err := os.WriteFile(filepath.Join(outputDir, es.ID+".md"), []byte(sb.String()), 0o644); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Exported %d scribbles to %s", len(scribbles), outputDir)))
	return nil
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|md)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	exportCmd.Flags().StringP("tag", "t", "", "only scribbles with this tag")
	rootCmd.AddCommand(exportCmd)
}
