package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Row is a read-only view over one stored record.
// Columns keep the table's schema order. A Row is never modified after
// construction; accessors that return collections return copies.
type Row struct {
	columns []string
	values  map[string]any
}

// NewRow creates a Row from column names and values given in the same order
func NewRow(columns []string, values []any) Row {
	r := Row{
		columns: make([]string, len(columns)),
		values:  make(map[string]any, len(columns)),
	}
	copy(r.columns, columns)
	for i, c := range columns {
		r.values[c] = values[i]
	}
	return r
}

// Get returns the value of a column and whether the column exists
func (r Row) Get(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Columns returns the column names in schema order
func (r Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Values returns the values in schema order
func (r Row) Values() []any {
	out := make([]any, len(r.columns))
	for i, c := range r.columns {
		out[i] = r.values[c]
	}
	return out
}

// Len returns the number of columns
func (r Row) Len() int {
	return len(r.columns)
}

// Map returns a copy of the row keyed by column name
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

func (r Row) String(column string) (string, error) {
	return get[string](r, column)
}

func (r Row) Int(column string) (int, error) {
	return get[int](r, column)
}

func (r Row) Float(column string) (float64, error) {
	return get[float64](r, column)
}

func (r Row) Bool(column string) (bool, error) {
	return get[bool](r, column)
}

// Date parses a date column's stored ISO-8601 value
func (r Row) Date(column string) (time.Time, error) {
	s, err := get[string](r, column)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.DateOnly, s)
}

func get[T any](r Row, column string) (T, error) {
	var zero T
	v, ok := r.values[column]
	if !ok {
		return zero, fmt.Errorf("row has no column %q", column)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("column %q holds %T, not %T", column, v, zero)
	}
	return t, nil
}

// MarshalJSON encodes the row as an object with keys in schema order
func (r Row) MarshalJSON() ([]byte, error) {
	return MarshalOrdered(r.columns, r.Values())
}

// MarshalOrdered encodes parallel key/value slices as a JSON object,
// preserving key order. encoding/json sorts map keys, which would lose
// the schema's column order.
func MarshalOrdered(keys []string, values []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(values[i])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal column %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
