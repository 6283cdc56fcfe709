package repository

import (
	"errors"
	"fmt"
)

// Error taxonomy of the log-write pipeline. Concrete errors wrap one of these
// with %w; callers classify with errors.Is.
var (
	ErrInvalidSignal = errors.New("invalid signal")
	ErrCorruptedLog  = errors.New("corrupted log file")
	ErrFileSystem    = errors.New("file system error")
	ErrUnexpected    = errors.New("unexpected error")
)

// StoreError is an I/O or decode failure of the signal store. Kind is one of
// the sentinels above.
type StoreError struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error { return []error{e.Kind, e.Err} }
