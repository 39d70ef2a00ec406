package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FloatTurnsMarker is the textual form of float turns in data files and keys.
const FloatTurnsMarker = "fl"

// Turns is either a numeric number of prop turns or the float marker.
// The zero value is 0 turns.
type Turns struct {
	value   float64
	isFloat bool
}

// NumericTurns returns a numeric turns value.
func NumericTurns(v float64) Turns {
	return Turns{value: v}
}

// FloatTurns returns the float marker.
func FloatTurns() Turns {
	return Turns{isFloat: true}
}

// IsFloat reports whether t is the float marker.
func (t Turns) IsFloat() bool {
	return t.isFloat
}

// Value returns the numeric value; it is 0 for the float marker.
func (t Turns) Value() float64 {
	if t.isFloat {
		return 0
	}
	return t.value
}

// String formats whole numbers without a trailing ".0" ("1", "0.5", "fl").
func (t Turns) String() string {
	if t.isFloat {
		return FloatTurnsMarker
	}
	return strconv.FormatFloat(t.value, 'f', -1, 64)
}

// ParseTurns parses a number or the float marker.
func ParseTurns(s string) (Turns, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, FloatTurnsMarker) {
		return FloatTurns(), nil
	}
	if s == "" {
		return NumericTurns(0), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Turns{}, fmt.Errorf("%w: turns %q", ErrUnknownValue, s)
	}
	return NumericTurns(v), nil
}

// MarshalJSON writes numbers as JSON numbers and the float marker as "fl".
func (t Turns) MarshalJSON() ([]byte, error) {
	if t.isFloat {
		return json.Marshal(FloatTurnsMarker)
	}
	return json.Marshal(t.value)
}

// UnmarshalJSON accepts a JSON number, a numeric string, or "fl".
func (t *Turns) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*t = NumericTurns(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("error unmarshalling turns: %w", err)
	}
	parsed, err := ParseTurns(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
