package manager

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"

	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(memfs.New(), nil)

	db, err := r.Create("shop")
	assert.NilError(t, err)
	_, err = db.CreateTable("items", schema.Schema{{Name: "sku", Type: schema.TypeString}})
	assert.NilError(t, err)

	_, err = r.Create("shop")
	assert.Assert(t, stderrors.Is(err, errors.ErrDuplicateDatabase), "got %v", err)

	again, err := r.Get("shop")
	assert.NilError(t, err)
	assert.Assert(t, again == db, "expected the cached handle")

	_, err = r.Create("blog")
	assert.NilError(t, err)

	dbs, err := r.List()
	assert.NilError(t, err)
	if diff := cmp.Diff([]string{"blog", "shop"}, dbs); diff != "" {
		t.Error(diff)
	}

	assert.NilError(t, r.Drop("shop"))
	_, err = r.Get("shop")
	assert.Assert(t, stderrors.Is(err, fs.ErrNotExist), "got %v", err)
}

func TestRegistryDropFailureKeepsHandle(t *testing.T) {
	mfs := memfs.New()
	r := NewRegistry(mfs, nil)

	db, err := r.Create("shop")
	assert.NilError(t, err)

	err = r.Drop("../shop")
	assert.Assert(t, stderrors.Is(err, errors.ErrInvalidName), "got %v", err)

	assert.NilError(t, util.RemoveAll(mfs, "shop"))
	err = r.Drop("shop")
	assert.Assert(t, stderrors.Is(err, fs.ErrNotExist), "got %v", err)

	again, err := r.Get("shop")
	assert.NilError(t, err)
	assert.Assert(t, again == db, "expected the cached handle to survive a failed drop")
}

func TestRegistryGetConnectsFromDisk(t *testing.T) {
	mfs := memfs.New()

	first := NewRegistry(mfs, nil)
	db, err := first.Create("shop")
	assert.NilError(t, err)
	items, err := db.CreateTable("items", schema.Schema{{Name: "sku", Type: schema.TypeString}})
	assert.NilError(t, err)
	assert.NilError(t, items.Insert("A-1"))

	second := NewRegistry(mfs, nil)
	loaded, err := second.Get("shop")
	assert.NilError(t, err)
	if diff := cmp.Diff([]string{"items"}, loaded.ShowTables()); diff != "" {
		t.Error(diff)
	}
}
