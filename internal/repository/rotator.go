package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	domrepo "SignalLog/internal/domain/repository"
)

// Rotator shifts the active log into numbered backups.
type Rotator interface {
	Rotate(path string, backupCount int) error
}

// FileRotator renames path.(i-1) to path.i for i = backupCount..1 (path itself
// for i = 1), dropping the oldest backup, then resets path to an empty array.
type FileRotator struct{}

// NewFileRotator creates a FileRotator.
func NewFileRotator() *FileRotator { return &FileRotator{} }

// BackupPath returns the name of the i-th backup of path.
func BackupPath(path string, i int) string {
	if i <= 0 {
		return path
	}
	return fmt.Sprintf("%s.%d", path, i)
}

func (r *FileRotator) Rotate(path string, backupCount int) error {
	for i := backupCount; i >= 1; i-- {
		src := BackupPath(path, i-1)
		dst := BackupPath(path, i)
		if _, err := os.Stat(src); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return &domrepo.StoreError{Kind: domrepo.ErrFileSystem, Op: "rotate stat", Path: src, Err: err}
		}
		if err := os.Rename(src, dst); err != nil {
			return &domrepo.StoreError{Kind: domrepo.ErrFileSystem, Op: "rotate rename", Path: src, Err: err}
		}
	}
	if err := writeFileAtomic(path, emptyArray); err != nil {
		return &domrepo.StoreError{Kind: domrepo.ErrFileSystem, Op: "rotate reset", Path: path, Err: err}
	}
	return nil
}
