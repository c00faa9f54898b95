package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/storage/tablefile"
)

// ValidateName checks that a database or table name can be used as a
// single path element
func ValidateName(name string) error {
	switch {
	case name == "":
		return errors.NewInvalidName(name, "must not be empty")
	case name == "." || name == "..":
		return errors.NewInvalidName(name, "is reserved")
	case strings.ContainsAny(name, `/\`):
		return errors.NewInvalidName(name, "must not contain path separators")
	}
	return nil
}

// CreateDatabase creates the directory for a new database.
// It fails with a duplicate-database ValidationError if the directory
// already exists, leaving it untouched.
func CreateDatabase(fs billy.Filesystem, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if _, err := fs.Stat(name); err == nil {
		return errors.NewDuplicateDatabase(name)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check database directory %s: %w", name, err)
	}

	if err := fs.MkdirAll(name, 0755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", name, err)
	}

	return nil
}

// OpenDatabase returns a filesystem rooted at an existing database directory.
// A missing directory surfaces as an error wrapping fs.ErrNotExist.
func OpenDatabase(fs billy.Filesystem, name string) (billy.Filesystem, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	info, err := fs.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open database %s: not a directory", name)
	}

	return fs.Chroot(name)
}

// ListTables returns the names of all table files in a database directory, sorted
func ListTables(dbfs billy.Filesystem) ([]string, error) {
	entries, err := dbfs.ReadDir("")
	if err != nil {
		return nil, fmt.Errorf("failed to read database directory: %w", err)
	}

	var tables []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := tablefile.TableName(entry.Name()); ok {
			tables = append(tables, name)
		}
	}
	sort.Strings(tables)

	return tables, nil
}

// ListDatabases returns the names of all database directories under the base path, sorted
func ListDatabases(fs billy.Filesystem) ([]string, error) {
	entries, err := fs.ReadDir("")
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read databases directory: %w", err)
	}

	databases := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			databases = append(databases, entry.Name())
		}
	}
	sort.Strings(databases)

	return databases, nil
}

// DropDatabase removes a database directory and every table in it
func DropDatabase(fs billy.Filesystem, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if _, err := fs.Stat(name); err != nil {
		return fmt.Errorf("failed to drop database %s: %w", name, err)
	}

	if err := util.RemoveAll(fs, name); err != nil {
		return fmt.Errorf("failed to remove database directory %s: %w", name, err)
	}

	return nil
}
