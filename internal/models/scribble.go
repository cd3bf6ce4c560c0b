// ABOUTME: Scribble model representing one content-addressed note.
// ABOUTME: The id is derived from content; creation time comes from the store.

package models

import "time"

type Scribble struct {
	ID        string
	Content   []byte
	CreatedAt time.Time
}

// ShortID returns the abbreviated id used in listings.
func (s *Scribble) ShortID() string {
	return Short(s.ID)
}

// Short abbreviates a full id for display.
func Short(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// ShortIDLength is the number of hex characters shown for an id.
const ShortIDLength = 8

// Entry is one row of a listing: an id and a bounded, safe preview.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Preview   string    `json:"preview" yaml:"preview"`
	Binary    bool      `json:"binary,omitempty" yaml:"binary,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created"`
}
