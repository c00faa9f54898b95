package engine

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"sync"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/storage/tablefile"
)

// Filter maps column names to the values rows must equal.
// All entries must match (logical AND).
type Filter map[string]any

// Table is a schema-fixed, append-only record store backed by one file.
// Only the schema is held in memory; every read goes to the file.
type Table struct {
	mu      sync.Mutex // serializes inserts from this process
	db      *Database
	name    string
	columns schema.Schema
}

// openTable binds a table to its file. With no file, columns are required
// and the file is initialized with them. With a file, the file's schema wins.
func openTable(db *Database, name string, columns schema.Schema) (*Table, error) {
	t := &Table{db: db, name: name}

	_, err := db.fs.Stat(tablefile.FileName(name))
	switch {
	case err == nil:
	case stderrors.Is(err, fs.ErrNotExist):
		if columns == nil {
			return nil, fmt.Errorf("table %s has no file and no schema: %w", name, err)
		}
		if err := tablefile.Init(db.fs, name, columns); err != nil && !stderrors.Is(err, fs.ErrExist) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to stat table %s: %w", name, err)
	}

	doc, err := tablefile.Read(db.fs, name)
	if err != nil {
		return nil, err
	}
	t.columns = doc.Columns

	return t, nil
}

// Name returns the table name
func (t *Table) Name() string {
	return t.name
}

// Describe returns the schema loaded when the table was opened
func (t *Table) Describe() schema.Schema {
	return t.columns.Clone()
}

// Insert validates values against the schema and appends them as one row.
// Values are given in column order. Dates are time.Time and stored as
// YYYY-MM-DD. The whole table file is rewritten under a file lock.
func (t *Table) Insert(values ...any) error {
	opID := newOpID()

	if err := t.columns.CheckValues(t.name, values); err != nil {
		t.db.notify(Event{Type: EventInsertRejected, OpID: opID, Table: t.name, Data: err.Error()})
		return err
	}

	record, err := tablefile.EncodeRecord(t.columns, values)
	if err != nil {
		return fmt.Errorf("failed to encode row for %s: %w", t.name, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var rowCount int
	err = tablefile.Update(t.db.fs, t.name, func(doc *tablefile.Document) error {
		doc.Rows = append(doc.Rows, record)
		rowCount = len(doc.Rows)
		return nil
	})
	if err != nil {
		return err
	}

	t.db.logger.Debug("Row inserted",
		slog.String("table", t.name),
		slog.String("op_id", opID),
		slog.Int("row_count", rowCount),
	)
	t.db.notify(Event{Type: EventRowInserted, OpID: opID, Table: t.name, Data: rowCount})

	return nil
}

type predicate struct {
	index int
	value any
}

// Query returns the rows whose columns equal every value in filter, in file order.
// The table file is read fully before Query returns; the sequence then wraps
// the matching records lazily. An empty filter matches every row.
func (t *Table) Query(filter Filter) (iter.Seq[data.Row], error) {
	preds := make([]predicate, 0, len(filter))
	for column, value := range filter {
		idx := t.columnIndex(column)
		if idx < 0 {
			return nil, errors.NewUnknownColumn(t.name, column)
		}
		col := t.columns[idx]
		normalized, ok := schema.Normalize(col.Type, value)
		if !ok {
			return nil, errors.NewTypeMismatch(t.name, col.Name, schema.TypeOf(value), string(col.Type))
		}
		preds = append(preds, predicate{index: idx, value: normalized})
	}

	return t.scan(preds, filter)
}

// All returns every row in file order
func (t *Table) All() (iter.Seq[data.Row], error) {
	return t.scan(nil, nil)
}

// Count returns the number of rows currently stored
func (t *Table) Count() (int, error) {
	doc, err := tablefile.Read(t.db.fs, t.name)
	if err != nil {
		return 0, err
	}
	return len(doc.Rows), nil
}

func (t *Table) scan(preds []predicate, filter Filter) (iter.Seq[data.Row], error) {
	records, err := t.readRecords()
	if err != nil {
		return nil, err
	}

	t.db.notify(Event{Type: EventTableScanned, Table: t.name, Data: map[string]interface{}{
		"rows_read": len(records),
		"filter":    filter,
	}})

	names := t.columns.Names()
	return func(yield func(data.Row) bool) {
		for _, values := range records {
			if !matches(values, preds) {
				continue
			}
			if !yield(data.NewRow(names, values)) {
				return
			}
		}
	}, nil
}

func (t *Table) readRecords() ([][]any, error) {
	doc, err := tablefile.Read(t.db.fs, t.name)
	if err != nil {
		return nil, err
	}

	records := make([][]any, len(doc.Rows))
	for i, raw := range doc.Rows {
		values, err := tablefile.DecodeRecord(t.columns, raw)
		if err != nil {
			return nil, fmt.Errorf("table %s row %d: %w", t.name, i, err)
		}
		records[i] = values
	}
	return records, nil
}

func matches(values []any, preds []predicate) bool {
	for _, p := range preds {
		if values[p.index] != p.value {
			return false
		}
	}
	return true
}

func (t *Table) columnIndex(name string) int {
	for i, c := range t.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}
