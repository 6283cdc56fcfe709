package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"SignalLog/internal/domain/models"
	"SignalLog/internal/domain/repository"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignal() models.Signal {
	return models.Signal{
		"decision":    "BUY",
		"confidence":  85,
		"entry":       100.5,
		"stop_loss":   98.0,
		"take_profit": 105.0,
	}
}

func TestValidSignals(t *testing.T) {
	s := New()

	assert.True(t, s.Valid(validSignal()))

	laddered := validSignal()
	laddered["take_profit"] = []any{
		map[string]any{"level": 103.0, "weight": 0.5},
		map[string]any{"level": 106.0, "weight": 0.5},
	}
	laddered["logic_used"] = "breakout"
	assert.True(t, s.Valid(laddered))

	typed := validSignal()
	typed["take_profit"] = []models.TakeProfitLevel{{Level: 103, Weight: 1}}
	assert.True(t, s.Valid(typed))

	fromJSON := validSignal()
	fromJSON["entry"] = json.Number("101")
	fromJSON["confidence"] = json.Number("72.5")
	assert.True(t, s.Valid(fromJSON))
}

func TestInvalidSignals(t *testing.T) {
	s := New()

	cases := map[string]func(models.Signal){
		"missing decision":    func(sig models.Signal) { delete(sig, "decision") },
		"missing confidence":  func(sig models.Signal) { delete(sig, "confidence") },
		"missing entry":       func(sig models.Signal) { delete(sig, "entry") },
		"missing stop_loss":   func(sig models.Signal) { delete(sig, "stop_loss") },
		"missing take_profit": func(sig models.Signal) { delete(sig, "take_profit") },
		"hold decision":       func(sig models.Signal) { sig["decision"] = "HOLD" },
		"lowercase decision":  func(sig models.Signal) { sig["decision"] = "buy" },
		"numeric decision":    func(sig models.Signal) { sig["decision"] = 1 },
		"string confidence":   func(sig models.Signal) { sig["confidence"] = "high" },
		"bool confidence":     func(sig models.Signal) { sig["confidence"] = true },
		"int entry":           func(sig models.Signal) { sig["entry"] = 100 },
		"string stop_loss":    func(sig models.Signal) { sig["stop_loss"] = "98" },
		"string take_profit":  func(sig models.Signal) { sig["take_profit"] = "105" },
		"level missing weight": func(sig models.Signal) {
			sig["take_profit"] = []any{map[string]any{"level": 100.0}}
		},
		"level missing level": func(sig models.Signal) {
			sig["take_profit"] = []map[string]any{{"weight": 1.0}}
		},
		"level not object": func(sig models.Signal) { sig["take_profit"] = []any{100.0} },
		"level string weight": func(sig models.Signal) {
			sig["take_profit"] = []any{map[string]any{"level": 100.0, "weight": "half"}}
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			sig := validSignal()
			mutate(sig)
			err := s.Validate(sig)
			require.Error(t, err)
			assert.True(t, errors.Is(err, repository.ErrInvalidSignal))
			assert.False(t, s.Valid(sig))
		})
	}
}

func TestFieldErrorNamesField(t *testing.T) {
	sig := validSignal()
	sig["take_profit"] = []any{map[string]any{"level": 100.0}}

	err := New().Validate(sig)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "take_profit", fe.Field)
}

func TestNilSignal(t *testing.T) {
	assert.False(t, New().Valid(nil))
}

func TestConfidenceRangeOnlyWhenStrict(t *testing.T) {
	sig := validSignal()
	sig["confidence"] = 150

	assert.True(t, New().Valid(sig))
	assert.False(t, New(WithStrictConfidence(true)).Valid(sig))

	sig["confidence"] = 100
	assert.True(t, New(WithStrictConfidence(true)).Valid(sig))
}

func TestPanickingCheckFailsClosed(t *testing.T) {
	s := New(WithRules(FieldRule{
		Name: "decision",
		Kind: KindString,
		Check: func(_ *validator.Validate, _ any) error {
			panic("boom")
		},
	}))

	err := s.Validate(validSignal())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestEmptyLevelListAccepted(t *testing.T) {
	sig := validSignal()
	sig["take_profit"] = []any{}
	assert.True(t, New().Valid(sig))
}
