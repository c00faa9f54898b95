package manager

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-git/go-billy/v5"

	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/engine"
	"github.com/leengari/tabledb/internal/storage/catalog"
)

// Registry manages connected databases under one base filesystem in a thread-safe way
type Registry struct {
	mu     sync.Mutex
	loaded map[string]*engine.Database
	fs     billy.Filesystem
	opts   []engine.Option
	logger *slog.Logger
}

// NewRegistry creates a registry over fs. opts are applied to every database it connects.
func NewRegistry(fs billy.Filesystem, logger *slog.Logger, opts ...engine.Option) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		loaded: make(map[string]*engine.Database),
		fs:     fs,
		opts:   append([]engine.Option{engine.WithLogger(logger)}, opts...),
		logger: logger,
	}
}

// Get returns a connected database, connecting it on first use
func (r *Registry) Get(name string) (*engine.Database, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if db, ok := r.loaded[name]; ok {
		return db, nil
	}

	db, err := engine.ConnectDatabase(r.fs, name, r.opts...)
	if err != nil {
		return nil, err
	}

	r.loaded[name] = db
	return db, nil
}

// Create creates a new database and keeps it connected
func (r *Registry) Create(name string) (*engine.Database, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.loaded[name]; ok {
		return nil, errors.NewDuplicateDatabase(name)
	}

	db, err := engine.CreateDatabase(r.fs, name, r.opts...)
	if err != nil {
		return nil, err
	}

	r.loaded[name] = db
	return db, nil
}

// Drop disconnects and deletes a database
func (r *Registry) Drop(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := catalog.DropDatabase(r.fs, name); err != nil {
		return err
	}
	delete(r.loaded, name)

	r.logger.Info("Database dropped", slog.String("name", name))
	return nil
}

// List returns the names of all databases on disk
func (r *Registry) List() ([]string, error) {
	dbs, err := catalog.ListDatabases(r.fs)
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	return dbs, nil
}
