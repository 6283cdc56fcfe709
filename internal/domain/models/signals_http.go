package models

// LogSignalQuery carries the per-call switches of POST /api/signals.
type LogSignalQuery struct {
	Validate   string `query:"validate" json:"validate" default:"true" validate:"oneof=true false 1 0"`
	AutoRotate string `query:"auto_rotate" json:"auto_rotate" default:"true" validate:"oneof=true false 1 0"`
}
