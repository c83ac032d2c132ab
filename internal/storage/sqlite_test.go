package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/wdylt/wdylt/internal/model"
	"github.com/wdylt/wdylt/internal/storage"
	"gotest.tools/v3/assert"
)

func newSQLite(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "bookmarks.db"))
	assert.NilError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage_Contract(t *testing.T) {
	assertStorageContract(t, newSQLite(t))
}

func TestSQLiteStorage_SchemaVersion(t *testing.T) {
	s := newSQLite(t)

	version, err := s.SchemaVersion()
	assert.NilError(t, err)
	assert.Equal(t, version, 2)
}

func TestSQLiteStorage_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.db")
	ctx := context.Background()

	s, err := storage.NewSQLiteStorage(path)
	assert.NilError(t, err)
	assert.NilError(t, s.Save(ctx, sampleStore()))
	assert.NilError(t, s.Close())

	reopened, err := storage.NewSQLiteStorage(path)
	assert.NilError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	assert.NilError(t, err)
	assert.Equal(t, len(loaded.Folders), 3)
	assert.Equal(t, len(loaded.Bookmarks), 2)
}

func TestSQLiteStorage_ChildBeforeParent(t *testing.T) {
	s := newSQLite(t)
	ctx := context.Background()

	// Child listed before its parent must still insert
	store := &model.Store{
		Folders: []model.Folder{
			{ID: "child", Name: "Child", ParentID: stringPtr("parent")},
			{ID: "parent", Name: "Parent"},
		},
	}
	assert.NilError(t, s.Save(ctx, store))

	loaded, err := s.Load(ctx)
	assert.NilError(t, err)
	assert.Equal(t, len(loaded.Folders), 2)
}
