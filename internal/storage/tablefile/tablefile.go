package tablefile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
)

// Ext is the suffix that identifies table files inside a database directory
const Ext = ".json"

// Document is the on-disk content of a table file.
// Rows are kept raw so rewriting preserves each record's key order.
type Document struct {
	Columns schema.Schema     `json:"columns"`
	Rows    []json.RawMessage `json:"rows"`
}

// FileName returns the file name backing a table
func FileName(table string) string {
	return table + Ext
}

// TableName reports whether a directory entry is a table file and its table name
func TableName(fileName string) (string, bool) {
	if !strings.HasSuffix(fileName, Ext) {
		return "", false
	}
	name := strings.TrimSuffix(fileName, Ext)
	return name, name != ""
}

// Init writes an empty table document. It fails with an os.ErrExist error
// if the file already exists, so an existing table is never clobbered.
func Init(fs billy.Filesystem, table string, columns schema.Schema) error {
	f, err := fs.OpenFile(FileName(table), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create table file for %s: %w", table, err)
	}
	defer f.Close()

	doc := &Document{Columns: columns, Rows: []json.RawMessage{}}
	b, err := encode(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal table %s: %w", table, err)
	}

	if _, err := f.Write(b); err != nil {
		return fmt.Errorf("failed to write table file for %s: %w", table, err)
	}
	return nil
}

// Read loads the whole document while holding the file lock
func Read(fs billy.Filesystem, table string) (*Document, error) {
	f, err := fs.Open(FileName(table))
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", table, err)
	}
	defer f.Close()

	if err := f.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock table %s: %w", table, err)
	}
	defer f.Unlock()

	return readDocument(f, table)
}

// Update performs a locked read-modify-write of the whole document.
// fn may mutate doc; if it returns an error nothing is written.
func Update(fs billy.Filesystem, table string, fn func(doc *Document) error) error {
	f, err := fs.OpenFile(FileName(table), os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open table %s: %w", table, err)
	}
	defer f.Close()

	if err := f.Lock(); err != nil {
		return fmt.Errorf("failed to lock table %s: %w", table, err)
	}
	defer f.Unlock()

	doc, err := readDocument(f, table)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	b, err := encode(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal table %s: %w", table, err)
	}

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate table %s: %w", table, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind table %s: %w", table, err)
	}
	if _, err := f.Write(b); err != nil {
		return fmt.Errorf("failed to write table %s: %w", table, err)
	}

	return nil
}

// EncodeRecord serializes type-checked values into a record keyed by
// column name in schema order
func EncodeRecord(columns schema.Schema, values []any) (json.RawMessage, error) {
	serialized := make([]any, len(values))
	for i, v := range values {
		serialized[i] = schema.Serialize(v)
	}
	return data.MarshalOrdered(columns.Names(), serialized)
}

// DecodeRecord converts a stored record into values in schema order
func DecodeRecord(columns schema.Schema, raw json.RawMessage) ([]any, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrCorruptTable, err)
	}

	values := make([]any, len(columns))
	for i, c := range columns {
		field, ok := fields[c.Name]
		if !ok {
			return nil, fmt.Errorf("%w: record has no field %q", errors.ErrCorruptTable, c.Name)
		}
		v, err := schema.Decode(c.Type, field)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", errors.ErrCorruptTable, c.Name, err)
		}
		values[i] = v
	}

	return values, nil
}

func readDocument(r io.Reader, table string) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrCorruptTable, table, err)
	}
	if len(doc.Columns) == 0 {
		return nil, fmt.Errorf("%w: %s has no columns", errors.ErrCorruptTable, table)
	}
	if doc.Rows == nil {
		doc.Rows = []json.RawMessage{}
	}

	return &doc, nil
}

func encode(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
