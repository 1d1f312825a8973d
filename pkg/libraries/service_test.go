package libraries

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/cleverferret/cleverferret/pkg/migrations"
	"github.com/cleverferret/cleverferret/pkg/models"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestCreateAndRetrieveLibrary(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	library := &models.Library{
		Name:     "Books",
		Filepath: "/data/books",
	}
	err := svc.CreateLibrary(ctx, library)
	require.NoError(t, err)
	require.NotZero(t, library.ID)

	got, err := svc.RetrieveLibrary(ctx, RetrieveLibraryOptions{ID: &library.ID})
	require.NoError(t, err)
	assert.Equal(t, "Books", got.Name)
	assert.Equal(t, "/data/books", got.Filepath)
}

func TestRetrieveLibrary_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	id := 7
	_, err := svc.RetrieveLibrary(ctx, RetrieveLibraryOptions{ID: &id})
	assert.Error(t, err)
}

func TestListLibraries_ExcludesDeletedByDefault(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	active := &models.Library{Name: "Active", Filepath: "/a"}
	require.NoError(t, svc.CreateLibrary(ctx, active))

	deleted := &models.Library{Name: "Deleted", Filepath: "/d"}
	require.NoError(t, svc.CreateLibrary(ctx, deleted))
	deleted.DeletedAt = pointerutil.Time(time.Now())
	require.NoError(t, svc.UpdateLibrary(ctx, deleted, UpdateLibraryOptions{Columns: []string{"deleted_at"}}))

	libraries, total, err := svc.ListLibrariesWithTotal(ctx, ListLibrariesOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, libraries, 1)
	assert.Equal(t, "Active", libraries[0].Name)

	libraries, err = svc.ListLibraries(ctx, ListLibrariesOptions{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, libraries, 2)
}

func TestUpdateLibrary(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	library := &models.Library{Name: "Old", Filepath: "/old"}
	require.NoError(t, svc.CreateLibrary(ctx, library))

	library.Name = "New"
	library.Filepath = "/new"
	err := svc.UpdateLibrary(ctx, library, UpdateLibraryOptions{Columns: []string{"name", "filepath"}})
	require.NoError(t, err)

	got, err := svc.RetrieveLibrary(ctx, RetrieveLibraryOptions{ID: &library.ID})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "/new", got.Filepath)
}
