// ABOUTME: Badger-backed linker for platforms where directory links are unsuitable.
// ABOUTME: Keys t/<tag>/<id> hold the link time, u/<tag> the tag's last change.

package tags

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/harper/scribble/internal/models"
	"github.com/harper/scribble/internal/store"
)

// KVDir is the badger directory under the store root.
const KVDir = "tagdb"

const (
	linkPrefix  = "t/"
	usedPrefix  = "u/"
	keySeparate = "/"
)

// KVLinker keeps associations in an embedded badger database. Badger
// holds a directory lock, so only one process can use it at a time.
type KVLinker struct {
	db  *badger.DB
	now func() time.Time
}

// OpenKVLinker opens (or creates) the badger index at path.
func OpenKVLinker(path string) (*KVLinker, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(true)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open tag index: %w", store.ErrIO, err)
	}
	return &KVLinker{db: db, now: time.Now}, nil
}

func linkKey(tag, id string) []byte {
	return []byte(linkPrefix + tag + keySeparate + id)
}

func usedKey(tag string) []byte {
	return []byte(usedPrefix + tag)
}

func encodeTime(t time.Time) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(t.UnixNano()))
	return buf
}

func decodeTime(val []byte) time.Time {
	if len(val) != 8 {
		return time.Time{}
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(val)))
}

func (l *KVLinker) Link(tag, id string) error {
	err := l.db.Update(func(txn *badger.Txn) error {
		key := linkKey(tag, id)
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		now := encodeTime(l.now())
		if err := txn.Set(key, now); err != nil {
			return err
		}
		return txn.Set(usedKey(tag), now)
	})
	if err != nil {
		return fmt.Errorf("%w: link %s into %q: %w", store.ErrIO, id, tag, err)
	}
	return nil
}

func (l *KVLinker) Unlink(tag, id string) error {
	var missing bool
	err := l.db.Update(func(txn *badger.Txn) error {
		key := linkKey(tag, id)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			missing = true
			return nil
		} else if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		if countPrefix(txn, []byte(linkPrefix+tag+keySeparate)) == 0 {
			return txn.Delete(usedKey(tag))
		}
		return txn.Set(usedKey(tag), encodeTime(l.now()))
	})
	if err != nil {
		return fmt.Errorf("%w: unlink %s from %q: %w", store.ErrIO, id, tag, err)
	}
	if missing {
		return fmt.Errorf("%w: %s is not tagged %q", store.ErrNotFound, id, tag)
	}
	return nil
}

func countPrefix(txn *badger.Txn, prefix []byte) int {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	n := 0
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		n++
	}
	return n
}

func (l *KVLinker) Has(tag, id string) (bool, error) {
	var found bool
	err := l.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(linkKey(tag, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: read tag index: %w", store.ErrIO, err)
	}
	return found, nil
}

func (l *KVLinker) Members(tag string) ([]string, error) {
	prefix := []byte(linkPrefix + tag + keySeparate)
	var ids []string
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: read tag index: %w", store.ErrIO, err)
	}
	return ids, nil
}

func (l *KVLinker) Tags() ([]*models.Tag, error) {
	byName := make(map[string]*models.Tag)
	err := l.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(linkPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rest := strings.TrimPrefix(string(it.Item().Key()), linkPrefix)
			name, _, ok := strings.Cut(rest, keySeparate)
			if !ok {
				continue
			}
			tag, exists := byName[name]
			if !exists {
				tag = &models.Tag{Name: name}
				byName[name] = tag
			}
			tag.Count++
		}

		prefix = []byte(usedPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			tag, exists := byName[strings.TrimPrefix(string(item.Key()), usedPrefix)]
			if !exists {
				continue
			}
			err := item.Value(func(val []byte) error {
				tag.UpdatedAt = decodeTime(val)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: read tag index: %w", store.ErrIO, err)
	}

	result := make([]*models.Tag, 0, len(byName))
	for _, tag := range byName {
		result = append(result, tag)
	}
	return result, nil
}

func (l *KVLinker) Close() error {
	return l.db.Close()
}
