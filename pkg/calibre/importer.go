package calibre

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/cleverferret/cleverferret/pkg/media"
	"github.com/cleverferret/cleverferret/pkg/models"
	"github.com/cleverferret/cleverferret/pkg/naming"
	"github.com/cleverferret/cleverferret/pkg/people"
	"github.com/gabriel-vasile/mimetype"
	"github.com/robinjoseph08/golib/logger"
)

type ResultStatus string

const (
	ResultImported           ResultStatus = "imported"
	ResultSkippedMissingFile ResultStatus = "skipped_missing_file"
)

// BookResult reports the outcome for a single source book.
type BookResult struct {
	SourceID int64
	Title    string
	Status   ResultStatus
}

type ImportOptions struct {
	SourceDBPath    string
	LibraryRootPath string
	LibraryID       int
}

// Importer copies books out of a Calibre library into the media schema. Runs
// are append-only: items are always inserted, never matched against previous
// imports.
type Importer struct {
	mediaService  *media.Service
	peopleService *people.Service
}

func NewImporter(mediaService *media.Service, peopleService *people.Service) *Importer {
	return &Importer{
		mediaService:  mediaService,
		peopleService: peopleService,
	}
}

// Import reads the source library and imports every book whose file can be
// found on disk. Books whose files are missing are skipped and reported, not
// treated as errors. A persistence error aborts the run; the results imported
// so far are returned alongside the error.
func (imp *Importer) Import(ctx context.Context, opts ImportOptions) ([]BookResult, error) {
	log := logger.FromContext(ctx)
	results := []BookResult{}

	aggregates := ReadLibrary(ctx, opts.SourceDBPath)

	// Deterministic order over the source books.
	ids := make([]int64, 0, len(aggregates))
	for id := range aggregates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		agg := aggregates[id]

		path := ResolveFile(opts.LibraryRootPath, agg.RelativePath)
		if path == "" || !fileExists(path) {
			log.Info("skipping book with missing file", logger.Data{
				"source_id": agg.ID,
				"title":     agg.Title,
			})
			results = append(results, BookResult{
				SourceID: agg.ID,
				Title:    agg.Title,
				Status:   ResultSkippedMissingFile,
			})
			continue
		}

		err := imp.importBook(ctx, opts.LibraryID, agg, path)
		if err != nil {
			return results, err
		}

		results = append(results, BookResult{
			SourceID: agg.ID,
			Title:    agg.Title,
			Status:   ResultImported,
		})
	}

	return results, nil
}

func (imp *Importer) importBook(ctx context.Context, libraryID int, agg *BookAggregate, path string) error {
	now := time.Now()

	var mimeType *string
	if mt, err := mimetype.DetectFile(path); err == nil {
		s := mt.String()
		mimeType = &s
	}

	item := &models.MediaItem{
		LibraryID:     libraryID,
		Filepath:      path,
		MediaType:     models.MediaTypeBook,
		MimeType:      mimeType,
		DateAdded:     now,
		LastScannedAt: now,
	}
	err := imp.mediaService.CreateMediaItem(ctx, item)
	if err != nil {
		return err
	}

	// Only title and sort title are written; the optional metadata fields
	// stay unset until a later enrichment pass fills them.
	title := naming.CleanTitle(agg.Title)
	metadata := &models.MetadataCommon{
		MediaItemID: item.ID,
		Title:       title,
		SortTitle:   naming.SortTitle(title),
	}
	err = imp.mediaService.CreateMetadataCommon(ctx, metadata)
	if err != nil {
		return err
	}

	rawAuthor := "Unknown"
	if len(agg.AuthorNames) > 0 {
		rawAuthor = agg.AuthorNames[0]
	}
	author := naming.CleanAuthorName(rawAuthor)

	person, err := imp.peopleService.FindOrCreatePerson(ctx, author.Name, author.SortName, libraryID)
	if err != nil {
		return err
	}

	return imp.mediaService.CreateItemPersonRole(ctx, &models.ItemPersonRole{
		MediaItemID: item.ID,
		PersonID:    person.ID,
		Role:        models.RoleAuthor,
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
