package calibre

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/cleverferret/cleverferret/pkg/migrations"
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

// calibreSchema is the subset of Calibre's metadata.db schema that the
// aggregate query touches.
const calibreSchema = `
	CREATE TABLE books (id INTEGER PRIMARY KEY, title TEXT NOT NULL, path TEXT NOT NULL DEFAULT '', series_index REAL);
	CREATE TABLE authors (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
	CREATE TABLE books_authors_link (id INTEGER PRIMARY KEY, book INTEGER NOT NULL, author INTEGER NOT NULL);
	CREATE TABLE series (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
	CREATE TABLE books_series_link (id INTEGER PRIMARY KEY, book INTEGER NOT NULL, series INTEGER NOT NULL);
	CREATE TABLE publishers (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
	CREATE TABLE books_publishers_link (id INTEGER PRIMARY KEY, book INTEGER NOT NULL, publisher INTEGER NOT NULL);
	CREATE TABLE identifiers (id INTEGER PRIMARY KEY, book INTEGER NOT NULL, type TEXT NOT NULL, val TEXT NOT NULL);
	CREATE TABLE tags (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
	CREATE TABLE books_tags_link (id INTEGER PRIMARY KEY, book INTEGER NOT NULL, tag INTEGER NOT NULL);
	CREATE TABLE comments (id INTEGER PRIMARY KEY, book INTEGER NOT NULL, text TEXT NOT NULL);
`

// newCalibreDB creates a Calibre fixture database on disk and returns its
// path along with an open handle for seeding rows.
func newCalibreDB(t *testing.T) (string, *sql.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "metadata.db")
	db, err := sql.Open(sqliteshim.ShimName, path)
	require.NoError(t, err)

	_, err = db.Exec(calibreSchema)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return path, db
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	_, err := db.Exec(query, args...)
	require.NoError(t, err)
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
}
