package usecase

import (
	"errors"
	"fmt"
	"time"

	"SignalLog/internal/domain/models"
	drepo "SignalLog/internal/domain/repository"
	applogger "SignalLog/pkg/logger"
	xutil "SignalLog/pkg/util"
)

// Result messages.
const (
	MsgInvalidSignal = "Invalid signal format"
	MsgCorruptedLog  = "Corrupted log file"
	msgFileError     = "File error: "
	msgUnexpected    = "Unexpected error: "
)

// SignalValidator checks a signal against the record schema.
type SignalValidator interface {
	Validate(sig models.Signal) error
}

// SignalLogger validates, stamps and appends trading signals.
type SignalLogger struct {
	store   drepo.SignalStore
	schema  SignalValidator
	clock   drepo.Clock
	sink    drepo.DiagnosticSink
	metrics drepo.Metrics
}

// NewSignalLogger creates a new SignalLogger instance.
func NewSignalLogger(
	store drepo.SignalStore,
	schema SignalValidator,
	clock drepo.Clock,
	sink drepo.DiagnosticSink,
	metrics drepo.Metrics,
) *SignalLogger {
	return &SignalLogger{
		store:   store,
		schema:  schema,
		clock:   clock,
		sink:    sink,
		metrics: metrics,
	}
}

// LogOptions are the per-call switches of LogSignal.
type LogOptions struct {
	Validate   bool
	AutoRotate bool
}

// LogOption configures a single LogSignal call.
type LogOption func(*LogOptions)

// WithValidate toggles the schema check (default on).
func WithValidate(v bool) LogOption {
	return func(o *LogOptions) { o.Validate = v }
}

// WithAutoRotate toggles rotation at the size threshold (default on).
func WithAutoRotate(v bool) LogOption {
	return func(o *LogOptions) { o.AutoRotate = v }
}

// LogSignal appends a stamped copy of sig to the store. It never panics and
// never returns an error value: every outcome is a LogResult. sig itself is
// not modified.
func (l *SignalLogger) LogSignal(sig models.Signal, opts ...LogOption) (res models.LogResult) {
	o := LogOptions{Validate: true, AutoRotate: true}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = l.failure(fmt.Errorf("%w: panic: %v", drepo.ErrUnexpected, r))
		}
		l.metrics.RecordLatency("log_signal", time.Since(start).Seconds())
	}()

	if o.Validate {
		if err := l.schema.Validate(sig); err != nil {
			l.metrics.RecordSignal("invalid")
			l.sink.Warn(MsgInvalidSignal, applogger.Error(err))
			return models.LogResult{Status: models.StatusError, Message: MsgInvalidSignal, Err: err}
		}
	}

	ts := l.clock.Now()
	logID := xutil.LogID(ts)
	record := sig.Stamped(ts, logID)

	count, size, err := l.store.Append(record, o.AutoRotate)
	if err != nil {
		return l.failure(err)
	}

	l.metrics.RecordSignal(string(models.StatusSuccess))
	l.sink.Info("Signal logged: " + logID)
	return models.LogResult{
		Status:    models.StatusSuccess,
		LogID:     logID,
		TotalLogs: count,
		FileSize:  size,
		Record:    record,
	}
}

func (l *SignalLogger) failure(err error) models.LogResult {
	var msg, kind string
	switch {
	case errors.Is(err, drepo.ErrCorruptedLog):
		msg, kind = MsgCorruptedLog, "corrupted"
	case errors.Is(err, drepo.ErrFileSystem):
		msg, kind = msgFileError+err.Error(), "file_error"
	default:
		msg, kind = msgUnexpected+err.Error(), "unexpected"
	}
	l.metrics.RecordSignal(kind)
	l.sink.Error("Error logging signal", applogger.String("kind", kind), applogger.String("path", l.store.Path()), applogger.Error(err))
	return models.LogResult{Status: models.StatusError, Message: msg, Err: err}
}
