package repository

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"

	applogger "SignalLog/pkg/logger"

	"github.com/stretchr/testify/require"
)

type sinkLine struct {
	level string
	msg   string
}

type recordingSink struct {
	mu    sync.Mutex
	lines []sinkLine
}

func (s *recordingSink) add(level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, sinkLine{level: level, msg: msg})
}

func (s *recordingSink) Info(msg string, _ ...applogger.Field)  { s.add("info", msg) }
func (s *recordingSink) Warn(msg string, _ ...applogger.Field)  { s.add("warn", msg) }
func (s *recordingSink) Error(msg string, _ ...applogger.Field) { s.add("error", msg) }

func (s *recordingSink) has(level, prefix string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lines {
		if l.level == level && strings.HasPrefix(l.msg, prefix) {
			return true
		}
	}
	return false
}

func readArray(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}
