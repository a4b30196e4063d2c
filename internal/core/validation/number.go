package validation

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Number is a JSON number field that also accepts numeric strings ("15").
// Decoding never fails; anything that is not a number is kept as invalid so
// validation can report it against the field instead of rejecting the whole
// payload. Tag it "required,isnumber" before any range rules.
type Number struct {
	value   float64
	set     bool
	invalid bool
}

// NewNumber returns a Number holding f.
func NewNumber(f float64) Number {
	return Number{value: f, set: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		n.value, n.set = f, true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			n.value, n.set = f, true
			return nil
		}
	}

	n.invalid = true
	return nil
}

// Float64 returns nil when the field was absent, null or not a number.
func (n Number) Float64() *float64 {
	if !n.set {
		return nil
	}
	f := n.value
	return &f
}

// numberValue exposes a Number to the validator: nil when absent (fails
// "required"), the raw invalid marker as a string (fails "isnumber"), or the
// float value (checked by min/max).
func numberValue(field reflect.Value) any {
	n, ok := field.Interface().(Number)
	if !ok {
		return nil
	}
	switch {
	case n.set:
		return n.value
	case n.invalid:
		return "invalid"
	default:
		return nil
	}
}
