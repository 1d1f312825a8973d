package people

import (
	"context"
	"database/sql"
	"testing"

	"github.com/cleverferret/cleverferret/pkg/migrations"
	"github.com/cleverferret/cleverferret/pkg/models"
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

func TestCreatePerson_GeneratesSortName(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	person := &models.Person{
		LibraryID: 1,
		Name:      "Le Guin, Ursula K.",
	}
	err := svc.CreatePerson(ctx, person)
	require.NoError(t, err)
	assert.Equal(t, "Le Guin, Ursula K.", person.SortName)
}

func TestCreatePerson_KeepsProvidedSortName(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	person := &models.Person{
		LibraryID: 1,
		Name:      "J.R.R. Tolkien",
		SortName:  "Tolkien, J.R.R.",
	}
	err := svc.CreatePerson(ctx, person)
	require.NoError(t, err)
	assert.Equal(t, "Tolkien, J.R.R.", person.SortName)
}

func TestFindOrCreatePerson(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	first, err := svc.FindOrCreatePerson(ctx, "Stephen King", "King, Stephen", 1)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// Same name reuses the existing record.
	second, err := svc.FindOrCreatePerson(ctx, "Stephen King", "King, Stephen", 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Same name in a different library is a different person.
	third, err := svc.FindOrCreatePerson(ctx, "Stephen King", "King, Stephen", 2)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestFindOrCreatePerson_EmptyName(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.FindOrCreatePerson(ctx, "   ", "", 1)
	assert.Error(t, err)
}

func TestListPeople_OrderedBySortName(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.FindOrCreatePerson(ctx, "Terry Pratchett", "Pratchett, Terry", 1)
	require.NoError(t, err)
	_, err = svc.FindOrCreatePerson(ctx, "Douglas Adams", "Adams, Douglas", 1)
	require.NoError(t, err)

	people, total, err := svc.ListPeopleWithTotal(ctx, ListPeopleOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, people, 2)
	assert.Equal(t, "Adams, Douglas", people[0].SortName)
	assert.Equal(t, "Pratchett, Terry", people[1].SortName)
}
