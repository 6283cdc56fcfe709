package schema

import (
	"encoding/json"
	"fmt"

	"SignalLog/internal/domain/models"
	"SignalLog/internal/domain/repository"

	"github.com/go-playground/validator/v10"
)

// Kind names the accepted shape of a field value.
type Kind string

const (
	KindString        Kind = "string"
	KindNumber        Kind = "number"
	KindFloat         Kind = "float"
	KindFloatOrLevels Kind = "float|levels"
)

// Check is the shape predicate of a field, evaluated after the presence check.
type Check func(v *validator.Validate, value any) error

// FieldRule describes one required field.
type FieldRule struct {
	Name  string
	Kind  Kind
	Check Check
}

// FieldError reports the first field that failed the schema.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid signal: %s", e.Reason)
	}
	return fmt.Sprintf("invalid signal: %s %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return repository.ErrInvalidSignal }

// SignalRules is the fixed trading-signal schema.
func SignalRules() []FieldRule {
	return []FieldRule{
		{Name: "decision", Kind: KindString, Check: OneOf("BUY", "SELL")},
		{Name: "confidence", Kind: KindNumber, Check: Number("")},
		{Name: "entry", Kind: KindFloat, Check: Float()},
		{Name: "stop_loss", Kind: KindFloat, Check: Float()},
		{Name: "take_profit", Kind: KindFloatOrLevels, Check: FloatOrLevels()},
	}
}

// Validator evaluates a rule list against signals.
type Validator struct {
	rules []FieldRule
	v     *validator.Validate
}

// Option configures Validator.
type Option func(*Validator)

// WithStrictConfidence additionally bounds confidence to [0,100].
func WithStrictConfidence(strict bool) Option {
	return func(s *Validator) {
		if !strict {
			return
		}
		for i := range s.rules {
			if s.rules[i].Name == "confidence" {
				s.rules[i].Check = Number("gte=0,lte=100")
			}
		}
	}
}

// WithRules appends extra rules after the fixed schema.
func WithRules(rules ...FieldRule) Option {
	return func(s *Validator) {
		s.rules = append(s.rules, rules...)
	}
}

// New creates a Validator for the trading-signal schema.
func New(opts ...Option) *Validator {
	s := &Validator{
		rules: SignalRules(),
		v:     validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Valid reports whether sig satisfies the schema.
func (s *Validator) Valid(sig models.Signal) bool {
	return s.Validate(sig) == nil
}

// Validate returns a *FieldError for the first violation. Panics raised by a
// check are reported as invalid rather than propagated.
func (s *Validator) Validate(sig models.Signal) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FieldError{Reason: fmt.Sprintf("check panicked: %v", r)}
		}
	}()

	if sig == nil {
		return &FieldError{Reason: "signal is empty"}
	}
	for _, rule := range s.rules {
		value, ok := sig[rule.Name]
		if !ok {
			return &FieldError{Field: rule.Name, Reason: "is required"}
		}
		if rule.Check == nil {
			continue
		}
		if cerr := rule.Check(s.v, value); cerr != nil {
			return &FieldError{Field: rule.Name, Reason: cerr.Error()}
		}
	}
	return nil
}

// --- shape predicates ---

// OneOf accepts a string equal to one of values.
func OneOf(values ...string) Check {
	tag := "oneof="
	for i, val := range values {
		if i > 0 {
			tag += " "
		}
		tag += val
	}
	return func(v *validator.Validate, value any) error {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("must be a %s", KindString)
		}
		if err := v.Var(str, tag); err != nil {
			return fmt.Errorf("must be one of %v", values)
		}
		return nil
	}
}

// Number accepts any numeric value; tag is an optional validator constraint
// applied to the value as float64.
func Number(tag string) Check {
	return func(v *validator.Validate, value any) error {
		f, ok := asNumber(value)
		if !ok {
			return fmt.Errorf("must be a %s", KindNumber)
		}
		if tag != "" {
			if err := v.Var(f, tag); err != nil {
				return fmt.Errorf("out of range (%s)", tag)
			}
		}
		return nil
	}
}

// Float accepts floating-point values.
func Float() Check {
	return func(_ *validator.Validate, value any) error {
		if _, ok := asFloat(value); !ok {
			return fmt.Errorf("must be a %s", KindFloat)
		}
		return nil
	}
}

type takeProfitLevel struct {
	Level  *float64 `validate:"required"`
	Weight *float64 `validate:"required"`
}

// FloatOrLevels accepts a float or a sequence of {level, weight} entries.
func FloatOrLevels() Check {
	return func(v *validator.Validate, value any) error {
		if _, ok := asFloat(value); ok {
			return nil
		}
		levels, err := toLevels(value)
		if err != nil {
			return err
		}
		for i := range levels {
			if err := v.Struct(&levels[i]); err != nil {
				return fmt.Errorf("entry %d must have level and weight", i)
			}
		}
		return nil
	}
}

func toLevels(value any) ([]takeProfitLevel, error) {
	switch tp := value.(type) {
	case []models.TakeProfitLevel:
		out := make([]takeProfitLevel, len(tp))
		for i := range tp {
			out[i] = takeProfitLevel{Level: &tp[i].Level, Weight: &tp[i].Weight}
		}
		return out, nil
	case []map[string]any:
		out := make([]takeProfitLevel, 0, len(tp))
		for i, m := range tp {
			lvl, err := levelFromMap(i, m)
			if err != nil {
				return nil, err
			}
			out = append(out, lvl)
		}
		return out, nil
	case []any:
		out := make([]takeProfitLevel, 0, len(tp))
		for i, item := range tp {
			var m map[string]any
			switch e := item.(type) {
			case map[string]any:
				m = e
			case models.Signal:
				m = e
			case models.TakeProfitLevel:
				out = append(out, takeProfitLevel{Level: &e.Level, Weight: &e.Weight})
				continue
			default:
				return nil, fmt.Errorf("entry %d must be an object", i)
			}
			lvl, err := levelFromMap(i, m)
			if err != nil {
				return nil, err
			}
			out = append(out, lvl)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("must be a %s or a list of levels", KindFloat)
	}
}

func levelFromMap(i int, m map[string]any) (takeProfitLevel, error) {
	var lvl takeProfitLevel
	for key, dst := range map[string]**float64{"level": &lvl.Level, "weight": &lvl.Weight} {
		raw, ok := m[key]
		if !ok {
			continue
		}
		f, ok := asNumber(raw)
		if !ok {
			return lvl, fmt.Errorf("entry %d %s must be a %s", i, key, KindNumber)
		}
		*dst = &f
	}
	return lvl, nil
}

func asNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return asFloat(value)
	}
}

// JSON numbers carry no int/float distinction, so json.Number counts as float.
func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
