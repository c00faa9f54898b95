// Package tabledb is a minimal embedded tabular store.
//
// Each database is a directory and each table is a single JSON file in it
// holding the column schema and the row list:
//
//	{"columns": [{"name": "name", "type": "string"}, ...], "rows": [{"name": "Ana"}, ...]}
//
// Rows are appended with Table.Insert, which checks the values against the
// schema, and read back with Table.All or Table.Query as lazy sequences of Row.
// Every read goes to the file, and every insert rewrites it under a file lock,
// so several processes may share a database directory.
package tabledb

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/engine"
)

type (
	Database        = engine.Database
	Table           = engine.Table
	Filter          = engine.Filter
	Option          = engine.Option
	Observer        = engine.Observer
	Event           = engine.Event
	EventType       = engine.EventType
	Row             = data.Row
	Column          = schema.Column
	Schema          = schema.Schema
	ColumnType      = schema.ColumnType
	ValidationError = errors.ValidationError
)

// Column type tags
const (
	String = schema.TypeString
	Int    = schema.TypeInt
	Float  = schema.TypeFloat
	Bool   = schema.TypeBool
	Date   = schema.TypeDate
)

var (
	ErrValidation        = errors.ErrValidation
	ErrArity             = errors.ErrArity
	ErrType              = errors.ErrType
	ErrDuplicateDatabase = errors.ErrDuplicateDatabase
	ErrDuplicateTable    = errors.ErrDuplicateTable
	ErrUnknownColumn     = errors.ErrUnknownColumn
	ErrInvalidSchema     = errors.ErrInvalidSchema
	ErrInvalidName       = errors.ErrInvalidName
	ErrCorruptTable      = errors.ErrCorruptTable
)

var (
	WithLogger   = engine.WithLogger
	WithObserver = engine.WithObserver
)

// CreateDatabase creates <basePath>/<name> and returns a handle to the new,
// empty database. It fails with ErrDuplicateDatabase if the directory exists.
func CreateDatabase(basePath, name string, opts ...Option) (*Database, error) {
	return engine.CreateDatabase(osfs.New(basePath), name, opts...)
}

// ConnectDatabase loads the existing database <basePath>/<name> and all of
// its tables. A missing directory yields an error wrapping fs.ErrNotExist.
func ConnectDatabase(basePath, name string, opts ...Option) (*Database, error) {
	return engine.ConnectDatabase(osfs.New(basePath), name, opts...)
}

// CreateDatabaseFS is CreateDatabase over any billy filesystem, e.g. memfs.New()
func CreateDatabaseFS(fs billy.Filesystem, name string, opts ...Option) (*Database, error) {
	return engine.CreateDatabase(fs, name, opts...)
}

// ConnectDatabaseFS is ConnectDatabase over any billy filesystem
func ConnectDatabaseFS(fs billy.Filesystem, name string, opts ...Option) (*Database, error) {
	return engine.ConnectDatabase(fs, name, opts...)
}
