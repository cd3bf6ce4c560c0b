// ABOUTME: Tag model for labelling scribbles.
// ABOUTME: Names are trimmed but otherwise used verbatim as directory names.

package models

import (
	"strings"
	"time"
)

type Tag struct {
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewTag(name string) *Tag {
	return &Tag{
		Name: NormalizeTagName(name),
	}
}

// NormalizeTagName strips surrounding whitespace. Case is preserved.
func NormalizeTagName(name string) string {
	return strings.TrimSpace(name)
}
