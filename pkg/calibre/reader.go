// Package calibre implements the Calibre library import pipeline: reading a
// Calibre metadata.db read-only, folding its joined rows into per-book
// aggregates, resolving book files on disk, and importing them into the
// normalized media schema.
package calibre

import (
	"context"
	"database/sql"

	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// BookAggregate is one book's fully merged record, folded down from the
// row-multiplied join result. Exactly one aggregate exists per distinct book
// id regardless of how many authors or tags fanned the rows out.
type BookAggregate struct {
	ID           int64
	Title        string
	RelativePath string
	AuthorNames  []string
	SeriesName   *string
	SeriesIndex  *float64
	Publisher    *string
	ISBN         *string
	Tags         []string
	Comments     *string
}

// aggregateQuery joins the Calibre book table against its one-to-many
// relations. Every one-to-many join multiplies the base row, so the consumer
// folds rows back down by book id.
const aggregateQuery = `
	SELECT b.id, b.title, b.path, b.series_index,
		a.name AS author_name,
		s.name AS series_name,
		p.name AS publisher_name,
		i.val AS isbn,
		t.name AS tag_name,
		c.text AS comments
	FROM books b
	LEFT JOIN books_authors_link bal ON bal.book = b.id
	LEFT JOIN authors a ON a.id = bal.author
	LEFT JOIN books_series_link bsl ON bsl.book = b.id
	LEFT JOIN series s ON s.id = bsl.series
	LEFT JOIN books_publishers_link bpl ON bpl.book = b.id
	LEFT JOIN publishers p ON p.id = bpl.publisher
	LEFT JOIN identifiers i ON i.book = b.id AND i.type = 'isbn'
	LEFT JOIN books_tags_link btl ON btl.book = b.id
	LEFT JOIN tags t ON t.id = btl.tag
	LEFT JOIN comments c ON c.book = b.id
	ORDER BY b.id, bal.id, btl.id
`

// ReadLibrary opens the Calibre database at dbPath read-only and returns one
// aggregate per book. Open or query failures degrade to an empty result:
// a missing or unreadable source library imports zero books rather than
// failing the run.
func ReadLibrary(ctx context.Context, dbPath string) map[int64]*BookAggregate {
	log := logger.FromContext(ctx)
	aggregates := map[int64]*BookAggregate{}

	db, err := sql.Open(sqliteshim.ShimName, "file:"+dbPath+"?mode=ro")
	if err != nil {
		log.Warn("can't open calibre database", logger.Data{"path": dbPath, "err": err.Error()})
		return aggregates
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, aggregateQuery)
	if err != nil {
		log.Warn("calibre aggregate query failed", logger.Data{"path": dbPath, "err": err.Error()})
		return aggregates
	}
	defer rows.Close()

	// First pass: initialize each aggregate from the first row seen for its
	// book id and accumulate authors/tags into side accumulators keyed by
	// book id. The scalar columns are invariant across a book's repeated
	// rows.
	authors := map[int64]*accumulator{}
	tags := map[int64]*accumulator{}

	for rows.Next() {
		var (
			id          int64
			title       string
			path        string
			seriesIndex sql.NullFloat64
			authorName  sql.NullString
			seriesName  sql.NullString
			publisher   sql.NullString
			isbn        sql.NullString
			tagName     sql.NullString
			comments    sql.NullString
		)
		err := rows.Scan(&id, &title, &path, &seriesIndex, &authorName, &seriesName, &publisher, &isbn, &tagName, &comments)
		if err != nil {
			log.Warn("calibre row scan failed", logger.Data{"path": dbPath, "err": err.Error()})
			return map[int64]*BookAggregate{}
		}

		if _, ok := aggregates[id]; !ok {
			aggregates[id] = &BookAggregate{
				ID:           id,
				Title:        title,
				RelativePath: path,
				SeriesName:   nullableString(seriesName),
				SeriesIndex:  nullableFloat(seriesIndex),
				Publisher:    nullableString(publisher),
				ISBN:         nullableString(isbn),
				Comments:     nullableString(comments),
			}
			authors[id] = newAccumulator()
			tags[id] = newAccumulator()
		}

		if authorName.Valid {
			authors[id].add(authorName.String)
		}
		if tagName.Valid {
			tags[id].add(tagName.String)
		}
	}
	if err := rows.Err(); err != nil {
		log.Warn("calibre row iteration failed", logger.Data{"path": dbPath, "err": err.Error()})
		return map[int64]*BookAggregate{}
	}

	// Merge pass: fold the accumulators into their aggregates.
	for id, agg := range aggregates {
		agg.AuthorNames = authors[id].values
		agg.Tags = tags[id].values
	}

	return aggregates
}

// accumulator collects distinct values in first-occurrence order. The join
// fan-out repeats each author once per tag row (and vice versa), so values
// must not be double-counted.
type accumulator struct {
	values []string
	seen   map[string]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{
		values: []string{},
		seen:   map[string]struct{}{},
	}
}

func (a *accumulator) add(value string) {
	if _, ok := a.seen[value]; ok {
		return
	}
	a.seen[value] = struct{}{}
	a.values = append(a.values, value)
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
