package worker

import (
	"context"
	"fmt"

	"github.com/cleverferret/cleverferret/pkg/calibre"
	"github.com/cleverferret/cleverferret/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// ProcessCalibreImportJob runs a Calibre library import. The job is a
// fire-and-forget trigger: whoever enqueued it never sees a failure beyond
// the error notification and the job's failed status.
func (w *Worker) ProcessCalibreImportJob(ctx context.Context, job *models.Job) error {
	log := logger.FromContext(ctx)

	data, ok := job.DataParsed.(*models.JobCalibreImportData)
	if !ok {
		return errors.New("unexpected job data type")
	}
	if data.SourceDBPath == "" || data.LibraryRootPath == "" || data.LibraryID == 0 {
		// Nothing sensible to import; end without side effects.
		log.Warn("calibre import job missing parameters", logger.Data{
			"source_db_path":    data.SourceDBPath,
			"library_root_path": data.LibraryRootPath,
			"library_id":        data.LibraryID,
		})
		return nil
	}

	w.notificationService.Notify(ctx, models.NotificationLevelInfo, "Calibre Import", "Import in progress")

	results, err := w.importer.Import(ctx, calibre.ImportOptions{
		SourceDBPath:    data.SourceDBPath,
		LibraryRootPath: data.LibraryRootPath,
		LibraryID:       data.LibraryID,
	})
	if err != nil {
		w.notificationService.Notify(ctx, models.NotificationLevelError, "Calibre Import", fmt.Sprintf("Import failed: %s", err.Error()))
		return err
	}

	imported := 0
	skipped := 0
	for _, result := range results {
		switch result.Status {
		case calibre.ResultImported:
			imported++
		case calibre.ResultSkippedMissingFile:
			skipped++
		}
	}

	noun := "books"
	if imported == 1 {
		noun = "book"
	}

	log.Info("calibre import finished", logger.Data{"imported": imported, "skipped": skipped})
	w.notificationService.Notify(ctx, models.NotificationLevelSuccess, "Calibre Import", fmt.Sprintf("Imported %d %s", imported, noun))

	return nil
}
