package util

import (
	"strconv"
	"strings"
)

// LogIDPrefix tags every generated log id.
const LogIDPrefix = "LAE_"

// LogID derives a log id from a formatted timestamp: spaces become hyphens and
// colons are dropped. Resolution is one second, so two signals stamped within
// the same second share an id.
func LogID(timestamp string) string {
	id := strings.ReplaceAll(timestamp, " ", "-")
	id = strings.ReplaceAll(id, ":", "")
	return LogIDPrefix + id
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ParseBoolDefault parses string to bool or returns default if empty/invalid.
func ParseBoolDefault(s string, def bool) bool {
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}
