package notifications

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

func TestCreateNotification(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	notification := &models.Notification{
		Level:   models.NotificationLevelInfo,
		Title:   "Calibre Import",
		Message: "Import in progress",
	}
	err := svc.CreateNotification(ctx, notification)
	require.NoError(t, err)
	assert.NotZero(t, notification.ID)
	assert.False(t, notification.CreatedAt.IsZero())
}

func TestNotify_SwallowsFailures(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	// Closing the database forces the insert to fail; Notify must not panic.
	require.NoError(t, db.Close())
	svc.Notify(ctx, models.NotificationLevelError, "Calibre Import", "Import failed")
}

func TestListNotifications_LatestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	svc.Notify(ctx, models.NotificationLevelInfo, "Calibre Import", "Import in progress")
	svc.Notify(ctx, models.NotificationLevelSuccess, "Calibre Import", "Imported 3 books")

	notifications, total, err := svc.ListNotificationsWithTotal(ctx, ListNotificationsOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, notifications, 2)
	assert.Equal(t, "Imported 3 books", notifications[0].Message)
	assert.Equal(t, "Import in progress", notifications[1].Message)
}
