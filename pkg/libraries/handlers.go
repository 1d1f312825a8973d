package libraries

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cleverferret/cleverferret/pkg/errcodes"
	"github.com/cleverferret/cleverferret/pkg/jobs"
	"github.com/cleverferret/cleverferret/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/pointerutil"
)

type handler struct {
	libraryService *Service
	jobService     *jobs.Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := CreateLibraryPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	library := &models.Library{
		Name:     params.Name,
		Filepath: params.Filepath,
	}

	err := h.libraryService.CreateLibrary(ctx, library)
	if err != nil {
		return errors.WithStack(err)
	}

	// If the library root holds a Calibre database, import it right away.
	// Failures here don't fail the library creation.
	sourceDBPath := filepath.Join(library.Filepath, "metadata.db")
	if _, err := os.Stat(sourceDBPath); err == nil {
		job := &models.Job{
			Type:   models.JobTypeCalibreImport,
			Status: models.JobStatusPending,
			DataParsed: &models.JobCalibreImportData{
				SourceDBPath:    sourceDBPath,
				LibraryRootPath: library.Filepath,
				LibraryID:       library.ID,
			},
		}
		if err := h.jobService.CreateJob(ctx, job); err != nil {
			logger.FromContext(ctx).Err(err).Error("failed to enqueue import job after library creation")
		}
	}

	return errors.WithStack(c.JSON(http.StatusOK, library))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Library")
	}

	library, err := h.libraryService.RetrieveLibrary(ctx, RetrieveLibraryOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, library))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListLibrariesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	libraries, total, err := h.libraryService.ListLibrariesWithTotal(ctx, ListLibrariesOptions{
		Limit:          &params.Limit,
		Offset:         &params.Offset,
		IncludeDeleted: params.Deleted,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Libraries []*models.Library `json:"libraries"`
		Total     int               `json:"total"`
	}{libraries, total}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Library")
	}

	// Bind params.
	params := UpdateLibraryPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Fetch the library.
	library, err := h.libraryService.RetrieveLibrary(ctx, RetrieveLibraryOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Keep track of what's been changed.
	opts := UpdateLibraryOptions{Columns: []string{}}

	if params.Name != nil && *params.Name != library.Name {
		library.Name = *params.Name
		opts.Columns = append(opts.Columns, "name")
	}
	if params.Filepath != nil && *params.Filepath != library.Filepath {
		library.Filepath = *params.Filepath
		opts.Columns = append(opts.Columns, "filepath")
	}
	if params.Deleted != nil && (*params.Deleted && library.DeletedAt == nil || !*params.Deleted && library.DeletedAt != nil) {
		if *params.Deleted {
			library.DeletedAt = pointerutil.Time(time.Now())
		} else {
			library.DeletedAt = nil
		}
		opts.Columns = append(opts.Columns, "deleted_at")
	}

	// Update the model.
	err = h.libraryService.UpdateLibrary(ctx, library, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	// Reload the model.
	library, err = h.libraryService.RetrieveLibrary(ctx, RetrieveLibraryOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, library))
}

// importLibrary enqueues a Calibre import job for the library. The source
// database defaults to metadata.db at the library root.
func (h *handler) importLibrary(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Library")
	}

	// The payload is optional; an empty body imports from the library root.
	params := ImportLibraryPayload{}
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&params); err != nil {
			return errors.WithStack(err)
		}
	}

	library, err := h.libraryService.RetrieveLibrary(ctx, RetrieveLibraryOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	hasActive, err := h.jobService.HasActiveJobByType(ctx, models.JobTypeCalibreImport)
	if err != nil {
		return errors.WithStack(err)
	}
	if hasActive {
		return errcodes.Conflict("An import is already running.")
	}

	sourceDBPath := params.SourceDBPath
	if sourceDBPath == "" {
		sourceDBPath = filepath.Join(library.Filepath, "metadata.db")
	}

	job := &models.Job{
		Type:   models.JobTypeCalibreImport,
		Status: models.JobStatusPending,
		DataParsed: &models.JobCalibreImportData{
			SourceDBPath:    sourceDBPath,
			LibraryRootPath: library.Filepath,
			LibraryID:       library.ID,
		},
	}
	err = h.jobService.CreateJob(ctx, job)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, job))
}
