package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the runtime type carried by a cell value.
type Kind string

const (
	KindNull      Kind = "null"
	KindNumber    Kind = "number"
	KindText      Kind = "text"
	KindBool      Kind = "bool"
	KindTimestamp Kind = "timestamp"
	KindOther     Kind = "other"
)

// Value is a single table cell. Raw holds the concrete Go value for the
// cell's Kind: float64 for KindNumber, string for KindText, bool for
// KindBool, time.Time for KindTimestamp. A KindNull value carries no Raw.
//
// Values are plain data and safe to copy.
type Value struct {
	Raw  any
	Kind Kind
}

// Null returns the missing-value cell.
func Null() Value {
	return Value{Kind: KindNull}
}

// Number returns a numeric cell. NaN is the missing-value marker for
// floating-point data, so Number(NaN) normalizes to Null.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Null()
	}
	return Value{Raw: f, Kind: KindNumber}
}

// Text returns a string cell.
func Text(s string) Value {
	return Value{Raw: s, Kind: KindText}
}

// Bool returns a boolean cell.
func Bool(b bool) Value {
	return Value{Raw: b, Kind: KindBool}
}

// Timestamp returns a time cell.
func Timestamp(t time.Time) Value {
	return Value{Raw: t, Kind: KindTimestamp}
}

// Other wraps a value that fits none of the scalar kinds (arrays, JSON
// documents, driver-specific types). A nil raw value normalizes to Null.
func Other(raw any) Value {
	if raw == nil {
		return Null()
	}
	return Value{Raw: raw, Kind: KindOther}
}

// IsNull reports whether the cell is missing.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Float returns the cell's number. The second return is false unless the
// cell's Kind is KindNumber; no conversion from other kinds is attempted.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	f, ok := v.Raw.(float64)
	return f, ok
}

// String returns the cell's display form: the text itself for KindText,
// strconv formatting for numbers and booleans, RFC 3339 for timestamps,
// fmt.Sprint for KindOther, and the empty string for KindNull.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindNumber:
		if f, ok := v.Raw.(float64); ok {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
	case KindText:
		if s, ok := v.Raw.(string); ok {
			return s
		}
	case KindBool:
		if b, ok := v.Raw.(bool); ok {
			return strconv.FormatBool(b)
		}
	case KindTimestamp:
		if t, ok := v.Raw.(time.Time); ok {
			return t.Format(time.RFC3339)
		}
	}
	return fmt.Sprint(v.Raw)
}

// TypeName returns the Go type name of the underlying value ("string",
// "float64", "bool", "time.Time"), or "null" for missing cells. Reports use
// this as the type label for offending values.
func (v Value) TypeName() string {
	if v.Kind == KindNull {
		return "null"
	}
	return fmt.Sprintf("%T", v.Raw)
}

// NumericLike reports whether the cell can be read as a number: it already
// holds one, or its display form parses as a float64 after trimming
// surrounding whitespace. Null cells are not numeric-like; callers that
// treat missing values separately must check IsNull first.
func (v Value) NumericLike() bool {
	switch v.Kind {
	case KindNumber:
		return true
	case KindNull:
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	return err == nil
}
