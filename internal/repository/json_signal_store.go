package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"SignalLog/internal/domain/models"
	domrepo "SignalLog/internal/domain/repository"
	applogger "SignalLog/pkg/logger"
	"SignalLog/pkg/metrics"
)

const (
	DefaultMaxLogSize  = 1000
	DefaultBackupCount = 3
)

var emptyArray = []byte("[]")

// JSONSignalStore keeps every signal in one pretty-printed JSON array file.
// Each append loads and rewrites the whole array under a single mutex.
type JSONSignalStore struct {
	mu          sync.Mutex
	path        string
	maxLogSize  int
	backupCount int
	rotator     Rotator
	sink        domrepo.DiagnosticSink
	metrics     domrepo.Metrics
}

// StoreOption configures JSONSignalStore.
type StoreOption func(*JSONSignalStore)

// WithMaxLogSize sets the record count that triggers rotation.
func WithMaxLogSize(n int) StoreOption {
	return func(s *JSONSignalStore) {
		if n > 0 {
			s.maxLogSize = n
		}
	}
}

// WithBackupCount sets how many numbered backups are retained.
func WithBackupCount(n int) StoreOption {
	return func(s *JSONSignalStore) {
		if n >= 0 {
			s.backupCount = n
		}
	}
}

// WithRotator replaces the file rotator.
func WithRotator(r Rotator) StoreOption {
	return func(s *JSONSignalStore) { s.rotator = r }
}

// WithSink sets the diagnostic sink.
func WithSink(sink domrepo.DiagnosticSink) StoreOption {
	return func(s *JSONSignalStore) { s.sink = sink }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m domrepo.Metrics) StoreOption {
	return func(s *JSONSignalStore) { s.metrics = m }
}

// NewJSONSignalStore opens the store at path, creating an empty array file if
// none exists.
func NewJSONSignalStore(path string, opts ...StoreOption) (*JSONSignalStore, error) {
	if path == "" {
		return nil, fmt.Errorf("signal store: path is required")
	}
	s := &JSONSignalStore{
		path:        path,
		maxLogSize:  DefaultMaxLogSize,
		backupCount: DefaultBackupCount,
		rotator:     NewFileRotator(),
		sink:        applogger.Nop(),
		metrics:     metrics.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initialize(); err != nil {
		s.sink.Error("Error initializing log file", applogger.String("path", s.path), applogger.Error(err))
		return nil, err
	}
	return s, nil
}

// Path returns the active log file path.
func (s *JSONSignalStore) Path() string { return s.path }

// Count returns the number of records in the active file.
func (s *JSONSignalStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Append adds rec as the last element of the array. When autoRotate is set and
// the array already holds maxLogSize records, the file is rotated first.
// Either the full updated array is written or the file is left untouched.
func (s *JSONSignalStore) Append(rec models.Signal, autoRotate bool) (count int, size int64, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &domrepo.StoreError{Kind: domrepo.ErrUnexpected, Op: "append", Path: s.path, Err: fmt.Errorf("panic: %v", r)}
		}
		s.metrics.RecordLatency("append", time.Since(start).Seconds())
	}()

	payload, err := json.Marshal(rec)
	if err != nil {
		return 0, 0, &domrepo.StoreError{Kind: domrepo.ErrUnexpected, Op: "encode signal", Path: s.path, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return 0, 0, err
	}

	if autoRotate && len(records) >= s.maxLogSize {
		s.rotate()
		// Continue with whatever the filesystem holds now: an empty array
		// after a clean rotation, the old records if the cascade failed early.
		if records, err = s.load(); err != nil {
			return 0, 0, err
		}
	}

	records = append(records, payload)
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return 0, 0, &domrepo.StoreError{Kind: domrepo.ErrUnexpected, Op: "encode log", Path: s.path, Err: err}
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return 0, 0, &domrepo.StoreError{Kind: domrepo.ErrFileSystem, Op: "write", Path: s.path, Err: err}
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, 0, &domrepo.StoreError{Kind: domrepo.ErrFileSystem, Op: "stat", Path: s.path, Err: err}
	}

	s.metrics.RecordStoreSize(len(records), info.Size())
	return len(records), info.Size(), nil
}

// rotate is best effort: failures are logged and swallowed.
func (s *JSONSignalStore) rotate() {
	if err := s.rotator.Rotate(s.path, s.backupCount); err != nil {
		s.metrics.RecordRotation(false)
		s.sink.Error("Error rotating logs", applogger.String("path", s.path), applogger.Error(err))
		return
	}
	s.metrics.RecordRotation(true)
	s.sink.Info("Rotated log file", applogger.String("path", s.path), applogger.Int("backups", s.backupCount))
}

// initialize must be called with mu held.
func (s *JSONSignalStore) initialize() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &domrepo.StoreError{Kind: domrepo.ErrFileSystem, Op: "stat", Path: s.path, Err: err}
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domrepo.StoreError{Kind: domrepo.ErrFileSystem, Op: "create directory", Path: dir, Err: err}
		}
	}
	if err := writeFileAtomic(s.path, emptyArray); err != nil {
		return &domrepo.StoreError{Kind: domrepo.ErrFileSystem, Op: "create", Path: s.path, Err: err}
	}
	s.sink.Info("Created new log file: " + s.path)
	return nil
}

// load must be called with mu held. A missing file reads as an empty array.
func (s *JSONSignalStore) load() ([]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []json.RawMessage{}, nil
		}
		return nil, &domrepo.StoreError{Kind: domrepo.ErrFileSystem, Op: "read", Path: s.path, Err: err}
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &domrepo.StoreError{Kind: domrepo.ErrCorruptedLog, Op: "decode", Path: s.path, Err: err}
	}
	if records == nil {
		return nil, &domrepo.StoreError{Kind: domrepo.ErrCorruptedLog, Op: "decode", Path: s.path, Err: errors.New("not a JSON array")}
	}
	return records, nil
}

// writeFileAtomic replaces path with data via a synced temp file and rename,
// so readers never observe a partially written array.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
