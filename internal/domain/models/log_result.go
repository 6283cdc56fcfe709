package models

// Status is the outcome tag of a log call.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// LogResult is produced once per LogSignal call and never persisted.
type LogResult struct {
	Status    Status `json:"status"`
	LogID     string `json:"log_id,omitempty"`
	TotalLogs int    `json:"total_logs,omitempty"`
	FileSize  int64  `json:"file_size,omitempty"`
	Message   string `json:"message,omitempty"`

	// Record is the enriched copy that was persisted (success only).
	Record Signal `json:"-"`
	// Err carries the classified cause on error results.
	Err error `json:"-"`
}

// OK reports whether the call succeeded.
func (r LogResult) OK() bool { return r.Status == StatusSuccess }
