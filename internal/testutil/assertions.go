package testutil

import (
	"testing"

	"github.com/leengari/tabledb/internal/domain/data"
)

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertColumnOrder checks that a row exposes exactly the given columns, in order
func AssertColumnOrder(t *testing.T, row data.Row, columns []string, context string) {
	t.Helper()
	got := row.Columns()
	if len(got) != len(columns) {
		t.Errorf("%s: expected columns %v, got %v", context, columns, got)
		return
	}
	for i := range columns {
		if got[i] != columns[i] {
			t.Errorf("%s: expected columns %v, got %v", context, columns, got)
			return
		}
	}
}

// AssertColumnValue checks a single column value of a row
func AssertColumnValue(t *testing.T, row data.Row, column string, expected any, context string) {
	t.Helper()
	v, ok := row.Get(column)
	if !ok {
		t.Errorf("%s: expected column '%s' to exist", context, column)
		return
	}
	if v != expected {
		t.Errorf("%s: expected %s=%v (%T), got %v (%T)", context, column, expected, expected, v, v)
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}
