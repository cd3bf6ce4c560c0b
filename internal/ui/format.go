// ABOUTME: Terminal UI formatting for scribble output.
// ABOUTME: Uses glamour for markdown, fatih/color for styling and humanize for times.

package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harper/scribble/internal/models"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// FormatEntry renders one list line: short id, preview and relative age.
func FormatEntry(e *models.Entry, now time.Time) string {
	preview := e.Preview
	if e.Binary {
		preview = yellow(preview)
	} else {
		preview = bold(preview)
	}
	return fmt.Sprintf("  %s  %s  %s\n",
		faint(models.Short(e.ID)),
		preview,
		faint(humanize.RelTime(e.CreatedAt, now, "ago", "from now")))
}

// FormatEntries renders a whole listing.
func FormatEntries(entries []*models.Entry, now time.Time) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(FormatEntry(e, now))
	}
	return sb.String()
}

// FormatHeader renders the metadata block printed above a scribble.
func FormatHeader(s *models.Scribble, tags []string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), bold(s.ID)))
	sb.WriteString(fmt.Sprintf("%s %s %s\n",
		faint("Created:"),
		faint(s.CreatedAt.Format("2006-01-02 15:04")),
		faint("("+humanize.Time(s.CreatedAt)+")")))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Size:"), faint(humanize.Bytes(uint64(len(s.Content))))))

	if len(tags) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), cyan(strings.Join(tags, ", "))))
	}

	sb.WriteString(Separator())
	return sb.String()
}

// FormatContent renders text content as markdown. Content that is not
// valid UTF-8 is returned untouched.
func FormatContent(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return string(content), nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return string(content), nil //nolint:nilerr // raw content is a fine fallback
	}

	out, err := renderer.Render(string(content))
	if err != nil {
		return string(content), nil //nolint:nilerr // raw content is a fine fallback
	}
	return out, nil
}

// FormatTagList renders tags with their member counts.
func FormatTagList(tags []*models.Tag) string {
	var sb strings.Builder

	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			cyan(t.Name),
			faint(fmt.Sprintf("(%d)", t.Count)),
			faint(humanize.Time(t.UpdatedAt))))
	}

	return sb.String()
}

// FormatCandidates lists the ids an ambiguous prefix matched.
func FormatCandidates(ids []string) string {
	var sb strings.Builder
	for _, id := range ids {
		short := models.Short(id)
		sb.WriteString(fmt.Sprintf("  %s%s\n", bold(short), faint(id[len(short):])))
	}
	return sb.String()
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}
