package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FieldInput is a raw form value for a numeric field. It decodes from either
// a JSON string or a JSON number so the presentation layer can forward form
// text verbatim. Malformed values never fail decoding; they are coerced to a
// field-specific default when read.
type FieldInput string

// UnmarshalJSON accepts `"12"`, `12`, `12.5` and `null`.
func (f *FieldInput) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FieldInput(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	*f = FieldInput(b)
	return nil
}

// Int parses the value as an integer, truncating any fractional part and
// clamping to the int32 range. Returns def when the value is not numeric.
func (f FieldInput) Int(def int) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return int(min(max(v, math.MinInt32), math.MaxInt32))
}

// Float parses the value as a float64. Returns def when the value is not numeric.
func (f FieldInput) Float(def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
