package repository

import (
	"SignalLog/internal/domain/models"
	applogger "SignalLog/pkg/logger"
)

// SignalStore persists signal records as one append-only JSON array.
type SignalStore interface {
	// Append adds rec under the store lock and reports the resulting record
	// count and file size in bytes.
	Append(rec models.Signal, autoRotate bool) (count int, size int64, err error)
	Count() (int, error)
	Path() string
}

// Clock returns the current wall-clock time as a formatted string.
type Clock interface {
	Now() string
}

// DiagnosticSink receives human-readable lifecycle lines.
type DiagnosticSink interface {
	Info(msg string, fields ...applogger.Field)
	Warn(msg string, fields ...applogger.Field)
	Error(msg string, fields ...applogger.Field)
}

type Metrics interface {
	RecordSignal(status string)
	RecordRotation(ok bool)
	RecordStoreSize(records int, bytes int64)
	RecordLatency(op string, seconds float64)
}
