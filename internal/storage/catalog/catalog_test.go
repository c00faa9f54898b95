package catalog

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"

	"github.com/leengari/tabledb/internal/domain/errors"
)

func TestCreateDatabaseTwice(t *testing.T) {
	mfs := memfs.New()
	assert.NilError(t, CreateDatabase(mfs, "shop"))
	assert.NilError(t, util.WriteFile(mfs, "shop/items.json", []byte("{}"), 0644))

	err := CreateDatabase(mfs, "shop")
	assert.Assert(t, stderrors.Is(err, errors.ErrDuplicateDatabase), "got %v", err)
	assert.Error(t, err, `database with name "shop" already exists`)

	// the failed call leaves the existing directory alone
	b, err := util.ReadFile(mfs, "shop/items.json")
	assert.NilError(t, err)
	assert.Equal(t, string(b), "{}")
}

func TestCreateDatabaseNested(t *testing.T) {
	mfs, err := memfs.New().Chroot("data/dbs")
	assert.NilError(t, err)
	assert.NilError(t, CreateDatabase(mfs, "shop"))

	info, err := mfs.Stat("shop")
	assert.NilError(t, err)
	assert.Assert(t, info.IsDir())
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		err := ValidateName(name)
		assert.Assert(t, stderrors.Is(err, errors.ErrInvalidName), "name %q: got %v", name, err)
	}
	assert.NilError(t, ValidateName("people_2024"))
}

func TestOpenDatabaseMissing(t *testing.T) {
	_, err := OpenDatabase(memfs.New(), "ghost")
	assert.Assert(t, stderrors.Is(err, fs.ErrNotExist), "got %v", err)
}

func TestListTables(t *testing.T) {
	mfs := memfs.New()
	assert.NilError(t, CreateDatabase(mfs, "shop"))
	for _, f := range []string{"shop/orders.json", "shop/items.json", "shop/README.txt", "shop/archive/old.json"} {
		assert.NilError(t, util.WriteFile(mfs, f, []byte("{}"), 0644))
	}

	dbfs, err := OpenDatabase(mfs, "shop")
	assert.NilError(t, err)

	tables, err := ListTables(dbfs)
	assert.NilError(t, err)
	if diff := cmp.Diff([]string{"items", "orders"}, tables); diff != "" {
		t.Error(diff)
	}
}

func TestListAndDropDatabases(t *testing.T) {
	mfs := memfs.New()

	dbs, err := ListDatabases(mfs)
	assert.NilError(t, err)
	assert.Equal(t, len(dbs), 0)

	assert.NilError(t, CreateDatabase(mfs, "b"))
	assert.NilError(t, CreateDatabase(mfs, "a"))
	assert.NilError(t, util.WriteFile(mfs, "a/t.json", []byte("{}"), 0644))

	dbs, err = ListDatabases(mfs)
	assert.NilError(t, err)
	if diff := cmp.Diff([]string{"a", "b"}, dbs); diff != "" {
		t.Error(diff)
	}

	assert.NilError(t, DropDatabase(mfs, "a"))
	_, err = mfs.Stat("a")
	assert.Assert(t, stderrors.Is(err, fs.ErrNotExist))

	err = DropDatabase(mfs, "a")
	assert.Assert(t, stderrors.Is(err, fs.ErrNotExist))
}
