// Package schema turns decoded JSON payloads into typed records.
//
// Every entity has one Validate function. Each declared field is checked on
// its own and all violations are reported together in an
// *apperr.ValidationError keyed by field name. Fields that are not declared
// are ignored.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"ECommerceAPI/internal/apperr"
)

// Payload is an inbound request body decoded into generic JSON values.
type Payload map[string]any

const (
	MsgMissing   = "missing"
	MsgWrongType = "wrong type"
)

func msgMinLength(n int) string {
	return fmt.Sprintf("shorter than minimum length %d", n)
}

func msgMin(min float64) string {
	return fmt.Sprintf("must be greater than or equal to %s", strconv.FormatFloat(min, 'f', -1, 64))
}

func msgMinItems(n int) string {
	return fmt.Sprintf("must contain at least %d items", n)
}

// reader pulls typed values out of a payload and records violations.
type reader struct {
	p    Payload
	errs *apperr.ValidationError
}

func newReader(p Payload) *reader {
	return &reader{p: p, errs: apperr.NewValidationError()}
}

// lookup returns the raw value and whether it is present and non-null.
// Absent required fields are recorded as missing.
func (r *reader) lookup(field string, required bool) (any, bool) {
	v, ok := r.p[field]
	if !ok || v == nil {
		if required {
			r.errs.Add(field, MsgMissing)
		}
		return nil, false
	}
	return v, true
}

func (r *reader) str(field string, required bool, minLen int) (string, bool) {
	v, ok := r.lookup(field, required)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		r.errs.Add(field, MsgWrongType)
		return "", false
	}
	if len([]rune(s)) < minLen {
		r.errs.Add(field, msgMinLength(minLen))
		return "", false
	}
	return s, true
}

// optionalStr returns nil for an absent or null field.
func (r *reader) optionalStr(field string) *string {
	s, ok := r.str(field, false, 0)
	if !ok {
		return nil
	}
	return &s
}

func (r *reader) number(field string, required bool, min float64) (float64, bool) {
	v, ok := r.lookup(field, required)
	if !ok {
		return 0, false
	}
	f, ok := toFloat(v)
	if !ok {
		r.errs.Add(field, MsgWrongType)
		return 0, false
	}
	if f < min {
		r.errs.Add(field, msgMin(min))
		return 0, false
	}
	return f, true
}

func (r *reader) integer(field string, required bool) (int64, bool) {
	v, ok := r.lookup(field, required)
	if !ok {
		return 0, false
	}
	n, ok := toInt(v)
	if !ok {
		r.errs.Add(field, MsgWrongType)
		return 0, false
	}
	return n, true
}

func (r *reader) intList(field string, required bool, minItems int) ([]int64, bool) {
	v, ok := r.lookup(field, required)
	if !ok {
		return nil, false
	}
	items, ok := v.([]any)
	if !ok {
		r.errs.Add(field, MsgWrongType)
		return nil, false
	}
	out := make([]int64, 0, len(items))
	for _, it := range items {
		n, ok := toInt(it)
		if !ok {
			r.errs.Add(field, MsgWrongType)
			return nil, false
		}
		out = append(out, n)
	}
	if len(out) < minItems {
		r.errs.Add(field, msgMinItems(minItems))
		return nil, false
	}
	return out, true
}

func (r *reader) err() error {
	return r.errs.OrNil()
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return 0, false
	}
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
