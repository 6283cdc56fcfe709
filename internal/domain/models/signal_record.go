package models

import "maps"

// Field names injected into every persisted signal.
const (
	FieldTimestamp = "timestamp"
	FieldLogID     = "log_id"
)

// Signal is a trading-signal record: decision, confidence, entry, stop_loss,
// take_profit plus any extra fields the caller wants to keep
// (logic_used, components, risk_reward, ...).
type Signal map[string]any

// TakeProfitLevel is one rung of a laddered take-profit.
type TakeProfitLevel struct {
	Level  float64 `json:"level"`
	Weight float64 `json:"weight"`
}

// Stamped returns a shallow copy of s carrying timestamp and log id.
// The receiver is left untouched.
func (s Signal) Stamped(timestamp, logID string) Signal {
	out := make(Signal, len(s)+2)
	maps.Copy(out, s)
	out[FieldTimestamp] = timestamp
	out[FieldLogID] = logID
	return out
}
