package schema

import (
	"fmt"
	"math"

	"github.com/leengari/tabledb/internal/domain/errors"
)

// Schema is the ordered list of columns of a table.
// Order is significant and fixed once the table file exists.
type Schema []Column

// Clone returns a copy that shares nothing with s
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	copy(out, s)
	return out
}

// Names returns the column names in schema order
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the column with the given name
func (s Schema) Lookup(name string) (Column, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Validate checks that s can define a new table:
// at least one column, non-empty unique names, known type tags.
func (s Schema) Validate(table string) error {
	if len(s) == 0 {
		return errors.NewInvalidSchema(table, "a table needs at least one column")
	}

	seen := make(map[string]bool, len(s))
	for i, c := range s {
		if c.Name == "" {
			return errors.NewInvalidSchema(table, fmt.Sprintf("column %d has no name", i))
		}
		if seen[c.Name] {
			return errors.NewInvalidSchema(table, fmt.Sprintf("duplicate column %q", c.Name))
		}
		seen[c.Name] = true

		if !c.Type.Valid() {
			return errors.NewInvalidSchema(table, fmt.Sprintf("column %q has unknown type %q", c.Name, c.Type))
		}
	}

	return nil
}

// CheckValues validates an insert argument list against the schema.
// Arity is checked first, then each value in column order; the first
// mismatching column is reported.
func (s Schema) CheckValues(table string, values []any) error {
	if len(values) != len(s) {
		return errors.NewArityError(table, len(values), len(s))
	}

	for i, col := range s {
		given := TypeOf(values[i])
		if given != string(col.Type) {
			return errors.NewTypeMismatch(table, col.Name, given, string(col.Type))
		}
		// JSON has no representation for NaN or the infinities
		if f, ok := values[i].(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return errors.NewTypeMismatch(table, col.Name, fmt.Sprintf("%v", f), "finite "+string(col.Type))
		}
	}

	return nil
}
