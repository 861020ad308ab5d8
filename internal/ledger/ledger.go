// Package ledger persists one collection of records as a JSON array in a
// single file.
//
// Every mutation is a whole-collection cycle: Load, change in memory, Save.
// Update runs that cycle under a per-Ledger mutex so concurrent writers in the
// same process serialize instead of overwriting each other. Save replaces the
// file by renaming a fully written temp file over it, so readers see either the
// old or the new collection and never a partial write. Writers in other
// processes are not coordinated.
package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

type Ledger[T any] struct {
	path string
	mu   sync.Mutex
}

func New[T any](path string) *Ledger[T] { return &Ledger[T]{path: path} }

func (l *Ledger[T]) Path() string { return l.path }

// Load reads the collection. A missing or empty file is an empty collection.
func (l *Ledger[T]) Load() ([]T, error) {
	b, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("ledger %s: read: %w", l.path, err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return []T{}, nil
	}
	if b[0] != '[' {
		return nil, &CorruptError{Path: l.path, Err: errNotArray}
	}
	out := []T{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, &CorruptError{Path: l.path, Err: err}
	}
	return out, nil
}

// Save overwrites the collection.
func (l *Ledger[T]) Save(records []T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.save(records)
}

// Update loads the collection, hands it to fn and saves what fn returns, all
// while holding the write lock. Nothing is written when fn fails.
func (l *Ledger[T]) Update(fn func([]T) ([]T, error)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur, err := l.Load()
	if err != nil {
		return err
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	return l.save(next)
}

func (l *Ledger[T]) save(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &WriteError{Path: l.path, Err: err}
	}
	if err := writeAtomic(l.path, data); err != nil {
		return &WriteError{Path: l.path, Err: err}
	}
	return nil
}

// writeAtomic replaces path with data through a temp file in the same
// directory. A new file is created empty with mode 0644 first so the
// replacement keeps that mode; an empty file loads as an empty collection.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
