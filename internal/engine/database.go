package engine

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/go-git/go-billy/v5"

	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/storage/catalog"
	"github.com/leengari/tabledb/internal/storage/tablefile"
)

// Database represents a single database on disk
// (a directory containing one JSON file per table).
//
// The retained list of table names is the source of truth for ShowTables
// and for duplicate detection; the directory is only re-checked when a
// table is created. A Database assumes it is the only writer of its
// directory layout; table files themselves are locked per operation.
type Database struct {
	mu        sync.RWMutex
	name      string
	fs        billy.Filesystem // rooted at the database directory
	tables    map[string]*Table
	names     []string
	observers []Observer
	logger    *slog.Logger
}

// CreateDatabase creates the database directory under fs and connects to it.
// It fails with a duplicate-database ValidationError if the directory exists.
func CreateDatabase(fs billy.Filesystem, name string, opts ...Option) (*Database, error) {
	if err := catalog.CreateDatabase(fs, name); err != nil {
		return nil, err
	}

	db, err := connect(fs, name, buildOptions(opts))
	if err != nil {
		return nil, err
	}

	db.logger.Info("Database created", slog.String("name", name))
	db.notify(Event{Type: EventDatabaseCreated})

	return db, nil
}

// ConnectDatabase loads an existing database and every table file in it.
// A missing directory is returned as an error wrapping fs.ErrNotExist.
func ConnectDatabase(fs billy.Filesystem, name string, opts ...Option) (*Database, error) {
	db, err := connect(fs, name, buildOptions(opts))
	if err != nil {
		return nil, err
	}

	db.logger.Info("Database loaded successfully",
		slog.Int("table_count", len(db.names)),
	)
	db.notify(Event{Type: EventDatabaseLoaded, Data: len(db.names)})

	return db, nil
}

// connect opens the directory and every table file in it without announcing
// the database itself
func connect(fs billy.Filesystem, name string, o options) (*Database, error) {
	dbfs, err := catalog.OpenDatabase(fs, name)
	if err != nil {
		return nil, err
	}

	names, err := catalog.ListTables(dbfs)
	if err != nil {
		return nil, fmt.Errorf("failed to load database %s: %w", name, err)
	}

	db := &Database{
		name:      name,
		fs:        dbfs,
		tables:    make(map[string]*Table, len(names)),
		names:     make([]string, 0, len(names)),
		observers: o.observers,
		logger:    o.logger.With(slog.String("database", name)),
	}

	for _, tableName := range names {
		table, err := openTable(db, tableName, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load table %s: %w", tableName, err)
		}
		db.register(table)
		db.notify(Event{Type: EventTableLoaded, Table: tableName, Data: len(table.columns)})
	}

	return db, nil
}

// Name returns the database name
func (db *Database) Name() string {
	return db.name
}

// CreateTable creates a new table file with the given schema and registers it.
// It fails with a duplicate-table ValidationError if the name is already
// registered or a file for it was dropped into the directory out of band.
func (db *Database) CreateTable(name string, columns schema.Schema) (*Table, error) {
	if err := catalog.ValidateName(name); err != nil {
		return nil, err
	}
	if err := columns.Validate(name); err != nil {
		return nil, err
	}

	db.mu.Lock()
	if _, exists := db.tables[name]; exists {
		db.mu.Unlock()
		return nil, errors.NewDuplicateTable(db.name, name)
	}

	if _, err := db.fs.Stat(tablefile.FileName(name)); err == nil {
		db.mu.Unlock()
		return nil, errors.NewDuplicateTable(db.name, name)
	} else if !os.IsNotExist(err) {
		db.mu.Unlock()
		return nil, fmt.Errorf("failed to check table file %s: %w", name, err)
	}

	table, err := openTable(db, name, columns.Clone())
	if err != nil {
		db.mu.Unlock()
		return nil, err
	}
	db.register(table)
	db.mu.Unlock()

	db.logger.Info("Table created",
		slog.String("table", name),
		slog.Int("columns", len(columns)),
	)
	db.notify(Event{Type: EventTableCreated, Table: name, Data: columns.Names()})

	return table, nil
}

// ShowTables returns the retained list of table names: tables found at load
// time followed by tables created since, in creation order
func (db *Database) ShowTables() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]string, len(db.names))
	copy(out, db.names)
	return out
}

// Table returns the named table
func (db *Database) Table(name string) (*Table, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t, ok := db.tables[name]
	return t, ok
}

// register adds a table to the index. Caller must hold db.mu or own db exclusively.
func (db *Database) register(t *Table) {
	db.tables[t.name] = t
	db.names = append(db.names, t.name)
}
