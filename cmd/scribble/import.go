// ABOUTME: Import command for restoring scribbles from backup.
// ABOUTME: Reads JSON exports, markdown files and directories of either.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import scribbles",
	Long: `Import scribbles from a JSON export, a markdown file, or a directory of
markdown (.md) and raw (.bin) files. Ids are recomputed from content.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out := cmd.OutOrStdout()

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		if info.IsDir() {
			return importDir(out, path)
		}

		if strings.HasSuffix(path, ".json") {
			return importJSON(out, path)
		}

		if err := importFile(out, path); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success("Imported 1 scribble"))
		return nil
	},
}

func importJSON(out io.Writer, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return err
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		return err
	}

	// Exports list newest first; adding oldest first keeps the listing
	// order of the source store.
	scribbles := slices.Clone(export.Scribbles)
	slices.SortStableFunc(scribbles, func(a, b ExportScribble) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	count := 0
	for _, es := range scribbles {
		content, err := es.Bytes()
		if err != nil {
			fmt.Fprintln(out, ui.Warning(fmt.Sprintf("skipping %s: %v", models.Short(es.ID), err)))
			continue
		}
		if err := storeImported(out, content, es.Tags, es.ID); err != nil {
			fmt.Fprintln(out, ui.Warning(fmt.Sprintf("failed to import %s: %v", models.Short(es.ID), err)))
			continue
		}
		count++
	}

	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Imported %d scribbles", count)))
	return nil
}

// importedFile is one exported file parsed and waiting to be stored.
type importedFile struct {
	path    string
	content []byte
	id      string
	tags    []string
	created time.Time
}

func importDir(out io.Writer, dir string) error {
	var files []*importedFile

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || (!strings.HasSuffix(path, ".md") && !strings.HasSuffix(path, ".bin")) {
			return nil
		}

		f, err := readImportFile(path)
		if err != nil {
			fmt.Fprintln(out, ui.Warning(fmt.Sprintf("failed to import %s: %v", path, err)))
			return nil
		}
		files = append(files, f)
		return nil
	})

	if err != nil {
		return err
	}

	slices.SortStableFunc(files, func(a, b *importedFile) int {
		return a.created.Compare(b.created)
	})

	count := 0
	for _, f := range files {
		if err := storeImported(out, f.content, f.tags, f.id); err != nil {
			fmt.Fprintln(out, ui.Warning(fmt.Sprintf("failed to import %s: %v", f.path, err)))
			continue
		}
		count++
	}

	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Imported %d scribbles", count)))
	return nil
}

// importFile stores one exported file.
func importFile(out io.Writer, path string) error {
	f, err := readImportFile(path)
	if err != nil {
		return err
	}
	return storeImported(out, f.content, f.tags, f.id)
}

// readImportFile parses one exported file. Markdown frontmatter, when
// present, supplies id, tags and creation time; everything after it is
// content, byte for byte. Files without a recorded time use their mtime.
func readImportFile(path string) (*importedFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return nil, err
	}

	f := &importedFile{path: path, content: data}
	var frontmatter struct {
		ID      string    `yaml:"id"`
		Tags    []string  `yaml:"tags"`
		Created time.Time `yaml:"created"`
	}

	if strings.HasSuffix(path, ".md") && strings.HasPrefix(string(data), "---\n") {
		parts := strings.SplitN(string(data), "---\n", 3)
		if len(parts) == 3 {
			if err := yaml.Unmarshal([]byte(parts[1]), &frontmatter); err == nil {
				f.content = []byte(parts[2])
				f.id, f.tags, f.created = frontmatter.ID, frontmatter.Tags, frontmatter.Created
			}
		}
	}

	if strings.TrimSpace(string(f.content)) == "" {
		return nil, fmt.Errorf("scribble content cannot be empty")
	}
	if f.created.IsZero() {
		if info, err := os.Stat(path); err == nil {
			f.created = info.ModTime()
		}
	}
	return f, nil
}

// storeImported adds content and its tags, warning when the recorded id no
// longer matches the content.
func storeImported(out io.Writer, content []byte, tags []string, recorded string) error {
	id, err := st.Add(content)
	if err != nil {
		return err
	}
	if recorded != "" && recorded != id {
		fmt.Fprintln(out, ui.Warning(fmt.Sprintf("content of %s changed, stored as %s", models.Short(recorded), models.Short(id))))
	}
	for _, tag := range tags {
		if err := st.Tag(id, tag); err != nil {
			fmt.Fprintln(out, ui.Warning(fmt.Sprintf("failed to add tag %q: %v", tag, err)))
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
