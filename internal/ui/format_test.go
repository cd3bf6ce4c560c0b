// ABOUTME: Tests for terminal UI formatting functions.
// ABOUTME: Validates entry, header, tag and candidate rendering.

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/harper/scribble/internal/models"
)

const testID = "3a7bd3e2360a3d29eea436fcfb7e44c735d117c42d1c1835420b6b9942dd4f1b"

func TestFormatEntry(t *testing.T) {
	now := time.Now()
	entry := &models.Entry{
		ID:        testID,
		Preview:   "groceries for tuesday",
		CreatedAt: now.Add(-2 * time.Hour),
	}

	output := FormatEntry(entry, now)

	if !strings.Contains(output, "3a7bd3e2") {
		t.Error("expected output to contain short id")
	}
	if strings.Contains(output, testID) {
		t.Error("expected list line to abbreviate the id")
	}
	if !strings.Contains(output, "groceries for tuesday") {
		t.Error("expected output to contain preview")
	}
	if !strings.Contains(output, "2 hours ago") {
		t.Errorf("expected relative age, got %q", output)
	}
}

func TestFormatEntries(t *testing.T) {
	now := time.Now()
	entries := []*models.Entry{
		{ID: testID, Preview: "one", CreatedAt: now},
		{ID: strings.Repeat("b", 64), Preview: `\x00\xff`, Binary: true, CreatedAt: now},
	}

	output := FormatEntries(entries, now)

	if got := strings.Count(output, "\n"); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}
	if !strings.Contains(output, `\x00\xff`) {
		t.Error("expected escaped preview to be printed verbatim")
	}
}

func TestFormatHeader(t *testing.T) {
	s := &models.Scribble{
		ID:        testID,
		Content:   []byte("hello"),
		CreatedAt: time.Now(),
	}

	output := FormatHeader(s, []string{"home", "work"})

	if !strings.Contains(output, testID) {
		t.Error("expected header to contain the full id")
	}
	if !strings.Contains(output, "home, work") {
		t.Error("expected header to contain tags")
	}
	if !strings.Contains(output, "5 B") {
		t.Errorf("expected header to contain size, got %q", output)
	}
}

func TestFormatContent(t *testing.T) {
	output, err := FormatContent([]byte("# Hello\n\nThis is **bold** text."))
	if err != nil {
		t.Fatalf("failed to format content: %v", err)
	}
	if output == "" {
		t.Error("expected non-empty output")
	}
}

func TestFormatContentBinaryPassthrough(t *testing.T) {
	raw := []byte{0xff, 0xfe, 'x'}

	output, err := FormatContent(raw)
	if err != nil {
		t.Fatalf("failed to format content: %v", err)
	}
	if output != string(raw) {
		t.Error("expected invalid UTF-8 to pass through unchanged")
	}
}

func TestFormatTagList(t *testing.T) {
	tags := []*models.Tag{
		{Name: "work", Count: 5, UpdatedAt: time.Now()},
		{Name: "personal", Count: 3, UpdatedAt: time.Now()},
	}

	output := FormatTagList(tags)

	if !strings.Contains(output, "work") {
		t.Error("expected output to contain 'work'")
	}
	if !strings.Contains(output, "(5)") {
		t.Error("expected output to contain count '5'")
	}
}

func TestFormatCandidates(t *testing.T) {
	output := FormatCandidates([]string{testID, "abc"})

	if !strings.Contains(output, "3a7bd3e2") || !strings.Contains(output, testID[8:]) {
		t.Error("expected full candidate id split across styles")
	}
	if !strings.Contains(output, "abc") {
		t.Error("expected short candidate to be printed whole")
	}
}
