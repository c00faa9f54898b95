package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used for stored dates
const DateLayout = time.DateOnly

// TypeOf returns the type tag of a Go value as compared against ColumnType.
// Unsupported values get their %T spelling so error messages stay useful.
func TypeOf(v any) string {
	switch v.(type) {
	case string:
		return string(TypeString)
	case int:
		return string(TypeInt)
	case float64:
		return string(TypeFloat)
	case bool:
		return string(TypeBool)
	case time.Time:
		return string(TypeDate)
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Serialize converts an already type-checked value into its stored form.
// Dates become ISO-8601 strings; everything else passes through.
func Serialize(v any) any {
	if d, ok := v.(time.Time); ok {
		return d.Format(DateLayout)
	}
	return v
}

// Decode converts a stored JSON value into the Go value for a column type.
// Date columns decode to their ISO string.
func Decode(t ColumnType, raw json.RawMessage) (any, error) {
	switch t {
	case TypeString:
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case TypeInt:
		var n int
		err := json.Unmarshal(raw, &n)
		return n, err
	case TypeFloat:
		var f float64
		err := json.Unmarshal(raw, &f)
		return f, err
	case TypeBool:
		var b bool
		err := json.Unmarshal(raw, &b)
		return b, err
	case TypeDate:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		if _, err := time.Parse(DateLayout, s); err != nil {
			return nil, err
		}
		return s, nil
	}

	return nil, fmt.Errorf("unknown column type %q", t)
}

// Normalize converts a filter value into the form stored rows are decoded to.
// Date columns accept either time.Time or a valid ISO date string.
func Normalize(t ColumnType, v any) (any, bool) {
	if t == TypeDate {
		switch d := v.(type) {
		case time.Time:
			return d.Format(DateLayout), true
		case string:
			parsed, err := time.Parse(DateLayout, d)
			if err != nil {
				return nil, false
			}
			return parsed.Format(DateLayout), true
		}
		return nil, false
	}

	if TypeOf(v) != string(t) {
		return nil, false
	}
	return v, true
}

// Parse converts user-entered text into a value of the column type
func Parse(t ColumnType, text string) (any, error) {
	switch t {
	case TypeString:
		return strings.Trim(text, `"'`), nil
	case TypeInt:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("%q is not an int", text)
		}
		return n, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a float64", text)
		}
		return f, nil
	case TypeBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("%q is not a bool", text)
		}
		return b, nil
	case TypeDate:
		d, err := time.Parse(DateLayout, strings.Trim(text, `"'`))
		if err != nil {
			return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD (e.g., '2024-01-13')")
		}
		return d, nil
	}

	return nil, fmt.Errorf("unknown column type %q", t)
}
