package media

import (
	"context"
	"database/sql"
	"testing"

	"github.com/cleverferret/cleverferret/pkg/migrations"
	"github.com/cleverferret/cleverferret/pkg/models"
	"github.com/cleverferret/cleverferret/pkg/people"
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

func createItemWithMetadata(t *testing.T, svc *Service, title, sortTitle string) *models.MediaItem {
	t.Helper()
	ctx := context.Background()

	item := &models.MediaItem{
		LibraryID: 1,
		Filepath:  "/library/" + title + ".epub",
		MediaType: models.MediaTypeBook,
	}
	require.NoError(t, svc.CreateMediaItem(ctx, item))
	require.NoError(t, svc.CreateMetadataCommon(ctx, &models.MetadataCommon{
		MediaItemID: item.ID,
		Title:       title,
		SortTitle:   sortTitle,
	}))
	return item
}

func TestRetrieveMediaItem_LoadsRelations(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	personService := people.NewService(db)
	ctx := context.Background()

	item := createItemWithMetadata(t, svc, "The Hobbit", "Hobbit, The")

	person, err := personService.FindOrCreatePerson(ctx, "J.R.R. Tolkien", "Tolkien, J.R.R.", 1)
	require.NoError(t, err)
	require.NoError(t, svc.CreateItemPersonRole(ctx, &models.ItemPersonRole{
		MediaItemID: item.ID,
		PersonID:    person.ID,
		Role:        models.RoleAuthor,
	}))

	got, err := svc.RetrieveMediaItem(ctx, RetrieveMediaItemOptions{ID: &item.ID})
	require.NoError(t, err)
	require.NotNil(t, got.Metadata)
	assert.Equal(t, "The Hobbit", got.Metadata.Title)
	assert.Equal(t, "Hobbit, The", got.Metadata.SortTitle)
	require.Len(t, got.Roles, 1)
	assert.Equal(t, models.RoleAuthor, got.Roles[0].Role)
	require.NotNil(t, got.Roles[0].Person)
	assert.Equal(t, "J.R.R. Tolkien", got.Roles[0].Person.Name)
}

func TestRetrieveMediaItem_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	id := 42
	_, err := svc.RetrieveMediaItem(ctx, RetrieveMediaItemOptions{ID: &id})
	assert.Error(t, err)
}

func TestListMediaItems_FiltersByLibrary(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	createItemWithMetadata(t, svc, "One", "One")
	other := &models.MediaItem{
		LibraryID: 2,
		Filepath:  "/other/two.epub",
		MediaType: models.MediaTypeBook,
	}
	require.NoError(t, svc.CreateMediaItem(ctx, other))

	libraryID := 1
	items, total, err := svc.ListMediaItemsWithTotal(ctx, ListMediaItemsOptions{
		LibraryID: &libraryID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].LibraryID)
}

func TestListMediaItems_Pagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	createItemWithMetadata(t, svc, "A", "A")
	createItemWithMetadata(t, svc, "B", "B")
	createItemWithMetadata(t, svc, "C", "C")

	limit := 2
	offset := 2
	items, total, err := svc.ListMediaItemsWithTotal(ctx, ListMediaItemsOptions{
		Limit:  &limit,
		Offset: &offset,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Metadata)
	assert.Equal(t, "C", items[0].Metadata.Title)
}
