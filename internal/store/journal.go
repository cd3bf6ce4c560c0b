// ABOUTME: Append-only recency journal recording when each object was created.
// ABOUTME: Replaces filesystem mtimes as the source of listing order.

package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
)

const journalFile = "journal"

// journalRecord is the first creation record seen for an id.
type journalRecord struct {
	created time.Time
	seq     int
}

// appendJournal records id as created at t. Removals are recorded with a
// leading '-' on the id so a later re-creation starts afresh. Each record
// is a single write on an O_APPEND descriptor, so concurrent writers never
// interleave inside a line.
func (s *Store) appendJournal(id string, t time.Time, removed bool) error {
	f, err := os.OpenFile(s.journalPath(), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return ioError("open journal", err)
	}
	if removed {
		id = "-" + id
	}
	line := fmt.Sprintf("%d %s\n", t.UnixNano(), id)
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return ioError("append journal", err)
	}
	if err := f.Close(); err != nil {
		return ioError("close journal", err)
	}
	return nil
}

// maxJournalLine bounds a journal line. Real records are well under it;
// anything longer is corrupt and skipped whole.
const maxJournalLine = 4096

// readJournal loads the journal. Only the first record for an id since its
// last removal counts. Lines that do not parse (a torn tail after a crash,
// say) are skipped.
func (s *Store) readJournal() (map[string]journalRecord, error) {
	records := make(map[string]journalRecord)

	f, err := os.Open(s.journalPath())
	if errors.Is(err, fs.ErrNotExist) {
		return records, nil
	}
	if err != nil {
		return nil, ioError("open journal", err)
	}
	defer func() { _ = f.Close() }()

	r := bufio.NewReaderSize(f, maxJournalLine)
	seq := 0
	for {
		line, err := r.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			for errors.Is(err, bufio.ErrBufferFull) {
				_, err = r.ReadSlice('\n')
			}
			line = nil
		}
		if len(line) > 0 {
			seq = parseJournalLine(records, strings.TrimSuffix(string(line), "\n"), seq)
		}
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, ioError("read journal", err)
		}
	}
}

// parseJournalLine applies one line to records and returns the updated
// creation sequence number.
func parseJournalLine(records map[string]journalRecord, line string, seq int) int {
	stamp, id, ok := strings.Cut(line, " ")
	if !ok {
		return seq
	}
	nanos, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return seq
	}
	if removed, found := strings.CutPrefix(id, "-"); found {
		if ValidID(removed) {
			delete(records, removed)
		}
		return seq
	}
	if !ValidID(id) {
		return seq
	}
	seq++
	if _, seen := records[id]; !seen {
		records[id] = journalRecord{created: time.Unix(0, nanos), seq: seq}
	}
	return seq
}
