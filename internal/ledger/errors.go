package ledger

import (
	"errors"
	"fmt"
)

var errNotArray = errors.New("content is not a JSON array")

// CorruptError means the collection file exists but cannot be read back as a
// JSON array.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("ledger %s: corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// WriteError means the collection could not be persisted. The mutation that
// triggered the write is not committed.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("ledger %s: write: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func IsCorrupt(err error) bool {
	var ce *CorruptError
	return errors.As(err, &ce)
}

func IsWrite(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}
