package http

import (
	"fmt"
	"net/http"
)

// Error codes returned in the response envelope.
const (
	CodeBadRequest    = "ERR_BAD_REQUEST"
	CodeInvalidSignal = "ERR_INVALID_SIGNAL"
	CodeCorruptedLog  = "ERR_CORRUPTED_LOG"
	CodeFileSystem    = "ERR_FILESYSTEM"
	CodeUnavailable   = "ERR_UNAVAILABLE"
	CodeInternal      = "ERR_INTERNAL"
)

// AppError is an error that knows its HTTP status and envelope code.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Status  int                    `json:"-"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(code, field, message string, status int) *AppError {
	return &AppError{Code: code, Field: field, Message: message, Status: status}
}

// WithParam attaches a detail to the envelope entry.
func (e *AppError) WithParam(key string, value interface{}) *AppError {
	if e.Params == nil {
		e.Params = map[string]interface{}{}
	}
	e.Params[key] = value
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func BadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, "", message, http.StatusBadRequest)
}

// InvalidSignalError reports the first schema violation of a submitted signal.
// An empty field means the schema could not name one.
func InvalidSignalError(message, field, reason string) *AppError {
	e := NewAppError(CodeInvalidSignal, field, message, http.StatusBadRequest)
	if reason != "" {
		e.WithParam("reason", reason)
	}
	return e
}

// StorageError reports a signal store failure under code.
func StorageError(code, message string) *AppError {
	return NewAppError(code, "", message, http.StatusInternalServerError)
}

func UnavailableError(message string) *AppError {
	return NewAppError(CodeUnavailable, "", message, http.StatusServiceUnavailable)
}

func InternalError(message string) *AppError {
	return NewAppError(CodeInternal, "", message, http.StatusInternalServerError)
}
