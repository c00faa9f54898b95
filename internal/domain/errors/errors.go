package errors

import (
	"errors"
	"fmt"
)

// Kind identifies which validation rule was violated
type Kind string

const (
	KindArity             Kind = "arity"
	KindType              Kind = "type_mismatch"
	KindDuplicateDatabase Kind = "duplicate_database"
	KindDuplicateTable    Kind = "duplicate_table"
	KindUnknownColumn     Kind = "unknown_column"
	KindInvalidSchema     Kind = "invalid_schema"
	KindInvalidName       Kind = "invalid_name"
)

// Sentinel errors, one per Kind. Use errors.Is against these.
var (
	ErrValidation        = errors.New("validation error")
	ErrArity             = errors.New("wrong field count")
	ErrType              = errors.New("wrong field type")
	ErrDuplicateDatabase = errors.New("database already exists")
	ErrDuplicateTable    = errors.New("table already exists")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrInvalidSchema     = errors.New("invalid schema")
	ErrInvalidName       = errors.New("invalid name")

	// ErrCorruptTable is returned when a table file cannot be decoded.
	// It is a storage error, not a ValidationError.
	ErrCorruptTable = errors.New("corrupt table file")
)

var sentinels = map[Kind]error{
	KindArity:             ErrArity,
	KindType:              ErrType,
	KindDuplicateDatabase: ErrDuplicateDatabase,
	KindDuplicateTable:    ErrDuplicateTable,
	KindUnknownColumn:     ErrUnknownColumn,
	KindInvalidSchema:     ErrInvalidSchema,
	KindInvalidName:       ErrInvalidName,
}

// ValidationError represents a schema violation or a uniqueness conflict
// detected synchronously by the store. Nothing is written when one is returned.
type ValidationError struct {
	Kind     Kind
	Database string // database name (empty if not relevant)
	Table    string // table name (empty if not relevant)
	Column   string // column name (empty if not relevant)
	Given    string // type name or count actually supplied
	Expected string // type name or count the schema requires
	Reason   string // human-readable explanation (optional)
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindArity:
		return fmt.Sprintf("invalid amount of fields for table %q: given %s, expected %s", e.Table, e.Given, e.Expected)
	case KindType:
		return fmt.Sprintf("invalid type of field %q: given %q, expected %q", e.Column, e.Given, e.Expected)
	case KindDuplicateDatabase:
		return fmt.Sprintf("database with name %q already exists", e.Database)
	case KindDuplicateTable:
		return fmt.Sprintf("table with name %q already exists", e.Table)
	case KindUnknownColumn:
		return fmt.Sprintf("table %q has no column %q", e.Table, e.Column)
	}

	msg := string(e.Kind)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is reports whether target is ErrValidation or the sentinel for e.Kind
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	return sentinels[e.Kind] == target
}

func NewArityError(table string, given, expected int) *ValidationError {
	return &ValidationError{
		Kind:     KindArity,
		Table:    table,
		Given:    fmt.Sprint(given),
		Expected: fmt.Sprint(expected),
	}
}

func NewTypeMismatch(table, column, given, expected string) *ValidationError {
	return &ValidationError{
		Kind:     KindType,
		Table:    table,
		Column:   column,
		Given:    given,
		Expected: expected,
	}
}

func NewDuplicateDatabase(name string) *ValidationError {
	return &ValidationError{Kind: KindDuplicateDatabase, Database: name}
}

func NewDuplicateTable(database, table string) *ValidationError {
	return &ValidationError{Kind: KindDuplicateTable, Database: database, Table: table}
}

func NewUnknownColumn(table, column string) *ValidationError {
	return &ValidationError{Kind: KindUnknownColumn, Table: table, Column: column}
}

func NewInvalidSchema(table, reason string) *ValidationError {
	return &ValidationError{Kind: KindInvalidSchema, Table: table, Reason: reason}
}

func NewInvalidName(name, reason string) *ValidationError {
	return &ValidationError{Kind: KindInvalidName, Reason: fmt.Sprintf("%q %s", name, reason)}
}
