package usecase

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"SignalLog/internal/domain/models"
	"SignalLog/internal/repository"
	"SignalLog/internal/service/clock"
	"SignalLog/internal/service/schema"
	applogger "SignalLog/pkg/logger"
	"SignalLog/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *recordingSink) add(level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, level+" - "+msg)
}

func (s *recordingSink) Info(msg string, _ ...applogger.Field)  { s.add("INFO", msg) }
func (s *recordingSink) Warn(msg string, _ ...applogger.Field)  { s.add("WARNING", msg) }
func (s *recordingSink) Error(msg string, _ ...applogger.Field) { s.add("ERROR", msg) }

func (s *recordingSink) contains(line string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lines {
		if l == line {
			return true
		}
	}
	return false
}

type fixture struct {
	logger *SignalLogger
	store  *repository.JSONSignalStore
	sink   *recordingSink
}

func newFixture(t *testing.T, stamps []string, opts ...repository.StoreOption) fixture {
	t.Helper()
	sink := &recordingSink{}
	path := filepath.Join(t.TempDir(), "lae_signal_log.json")
	store, err := repository.NewJSONSignalStore(path, append([]repository.StoreOption{repository.WithSink(sink)}, opts...)...)
	require.NoError(t, err)
	return fixture{
		logger: NewSignalLogger(store, schema.New(), clock.NewFixed(stamps...), sink, metrics.Noop{}),
		store:  store,
		sink:   sink,
	}
}

func buySignal() models.Signal {
	return models.Signal{
		"decision":   "BUY",
		"confidence": 85.0,
		"entry":      22150.5,
		"stop_loss":  22080.0,
		"take_profit": []any{
			map[string]any{"level": 22200.0, "weight": 0.5},
			map[string]any{"level": 22260.0, "weight": 0.5},
		},
		"logic_used":  "ORB breakout",
		"risk_reward": 2.1,
	}
}

func readRecords(t *testing.T, path string) []map[string]any {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestLogSignalSuccess(t *testing.T) {
	f := newFixture(t, []string{"2024-01-15 10:30:00"})
	sig := buySignal()

	res := f.logger.LogSignal(sig)

	require.True(t, res.OK(), res.Message)
	assert.Equal(t, models.StatusSuccess, res.Status)
	assert.Equal(t, "LAE_2024-01-15-103000", res.LogID)
	assert.Equal(t, 1, res.TotalLogs)

	info, err := os.Stat(f.store.Path())
	require.NoError(t, err)
	assert.Equal(t, info.Size(), res.FileSize)

	records := readRecords(t, f.store.Path())
	require.Len(t, records, 1)
	last := records[0]
	assert.Equal(t, "2024-01-15 10:30:00", last["timestamp"])
	assert.Equal(t, "LAE_2024-01-15-103000", last["log_id"])

	want, err := json.Marshal(sig)
	require.NoError(t, err)
	delete(last, "timestamp")
	delete(last, "log_id")
	got, err := json.Marshal(last)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))

	assert.True(t, f.sink.contains("INFO - Signal logged: LAE_2024-01-15-103000"))
}

func TestLogSignalDoesNotMutateInput(t *testing.T) {
	f := newFixture(t, nil)
	sig := buySignal()

	res := f.logger.LogSignal(sig)

	require.True(t, res.OK())
	assert.NotContains(t, sig, "timestamp")
	assert.NotContains(t, sig, "log_id")
	assert.Equal(t, res.LogID, res.Record["log_id"])
}

func TestLogSignalValidationFailure(t *testing.T) {
	cases := map[string]func(models.Signal){
		"missing decision":     func(s models.Signal) { delete(s, "decision") },
		"missing entry":        func(s models.Signal) { delete(s, "entry") },
		"disallowed decision":  func(s models.Signal) { s["decision"] = "HOLD" },
		"level missing weight": func(s models.Signal) { s["take_profit"] = []any{map[string]any{"level": 100.0}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, nil)
			require.True(t, f.logger.LogSignal(buySignal()).OK())

			sig := buySignal()
			mutate(sig)
			res := f.logger.LogSignal(sig)

			assert.Equal(t, models.StatusError, res.Status)
			assert.Equal(t, MsgInvalidSignal, res.Message)
			assert.Empty(t, res.LogID)

			n, err := f.store.Count()
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestLogSignalSkipValidation(t *testing.T) {
	f := newFixture(t, nil)

	res := f.logger.LogSignal(models.Signal{"decision": "HOLD"}, WithValidate(false))

	require.True(t, res.OK(), res.Message)
	assert.Equal(t, 1, res.TotalLogs)
}

func TestLogSignalRotationScenario(t *testing.T) {
	f := newFixture(t, []string{"2024-01-15 10:30:00", "2024-01-15 10:30:01", "2024-01-15 10:30:02"},
		repository.WithMaxLogSize(2), repository.WithBackupCount(1))

	a := f.logger.LogSignal(buySignal())
	b := f.logger.LogSignal(buySignal())
	c := f.logger.LogSignal(buySignal())

	assert.Equal(t, 1, a.TotalLogs)
	assert.Equal(t, 2, b.TotalLogs)
	require.True(t, c.OK(), c.Message)
	assert.Equal(t, 1, c.TotalLogs)

	backup := readRecords(t, repository.BackupPath(f.store.Path(), 1))
	require.Len(t, backup, 2)
	assert.Equal(t, a.LogID, backup[0]["log_id"])
	assert.Equal(t, b.LogID, backup[1]["log_id"])

	active := readRecords(t, f.store.Path())
	require.Len(t, active, 1)
	assert.Equal(t, c.LogID, active[0]["log_id"])
}

func TestLogSignalAutoRotateOff(t *testing.T) {
	f := newFixture(t, nil, repository.WithMaxLogSize(1))

	f.logger.LogSignal(buySignal())
	res := f.logger.LogSignal(buySignal(), WithAutoRotate(false))

	assert.Equal(t, 2, res.TotalLogs)
	assert.NoFileExists(t, repository.BackupPath(f.store.Path(), 1))
}

func TestLogSignalCorruptedFile(t *testing.T) {
	f := newFixture(t, nil)
	const garbage = "{{ definitely not json"
	require.NoError(t, os.WriteFile(f.store.Path(), []byte(garbage), 0o644))

	res := f.logger.LogSignal(buySignal())

	assert.Equal(t, models.StatusError, res.Status)
	assert.Equal(t, MsgCorruptedLog, res.Message)
	b, err := os.ReadFile(f.store.Path())
	require.NoError(t, err)
	assert.Equal(t, garbage, string(b))

	// still usable once the file is repaired
	require.NoError(t, os.WriteFile(f.store.Path(), []byte("[]"), 0o644))
	assert.True(t, f.logger.LogSignal(buySignal()).OK())
}

func TestLogSignalFileError(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.Remove(f.store.Path()))
	require.NoError(t, os.Mkdir(f.store.Path(), 0o755))

	res := f.logger.LogSignal(buySignal())

	assert.Equal(t, models.StatusError, res.Status)
	assert.True(t, strings.HasPrefix(res.Message, "File error: "), res.Message)
}

type panickingStore struct{}

func (panickingStore) Append(models.Signal, bool) (int, int64, error) { panic("kaboom") }
func (panickingStore) Count() (int, error)                            { return 0, nil }
func (panickingStore) Path() string                                   { return "nowhere.json" }

func TestLogSignalRecoversPanics(t *testing.T) {
	sink := &recordingSink{}
	l := NewSignalLogger(panickingStore{}, schema.New(), clock.NewFixed(), sink, metrics.Noop{})

	var res models.LogResult
	assert.NotPanics(t, func() { res = l.LogSignal(buySignal()) })
	assert.Equal(t, models.StatusError, res.Status)
	assert.True(t, strings.HasPrefix(res.Message, "Unexpected error: "), res.Message)
	assert.Contains(t, res.Message, "kaboom")
}

func TestLogSignalConcurrent(t *testing.T) {
	const workers = 32
	f := newFixture(t, nil)

	var wg sync.WaitGroup
	results := make([]models.LogResult, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sig := buySignal()
			sig["worker"] = fmt.Sprint(i)
			results[i] = f.logger.LogSignal(sig)
		}(i)
	}
	wg.Wait()

	positions := make(map[int]bool, workers)
	for _, r := range results {
		require.True(t, r.OK(), r.Message)
		assert.False(t, positions[r.TotalLogs], "two appends reported position %d", r.TotalLogs)
		positions[r.TotalLogs] = true
	}

	records := readRecords(t, f.store.Path())
	require.Len(t, records, workers)
	workersSeen := make(map[any]bool, workers)
	for _, r := range records {
		workersSeen[r["worker"]] = true
	}
	assert.Len(t, workersSeen, workers)
}
