package media

import (
	"context"
	"database/sql"
	"time"

	"github.com/cleverferret/cleverferret/pkg/errcodes"
	"github.com/cleverferret/cleverferret/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveMediaItemOptions struct {
	ID *int
}

type ListMediaItemsOptions struct {
	Limit     *int
	Offset    *int
	LibraryID *int

	includeTotal bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateMediaItem(ctx context.Context, item *models.MediaItem) error {
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = item.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(item).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) CreateMetadataCommon(ctx context.Context, metadata *models.MetadataCommon) error {
	now := time.Now()
	if metadata.CreatedAt.IsZero() {
		metadata.CreatedAt = now
	}
	metadata.UpdatedAt = metadata.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(metadata).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) CreateItemPersonRole(ctx context.Context, role *models.ItemPersonRole) error {
	now := time.Now()
	if role.CreatedAt.IsZero() {
		role.CreatedAt = now
	}
	role.UpdatedAt = role.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(role).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveMediaItem(ctx context.Context, opts RetrieveMediaItemOptions) (*models.MediaItem, error) {
	item := &models.MediaItem{}

	q := svc.db.
		NewSelect().
		Model(item).
		Relation("Metadata").
		Relation("Roles").
		Relation("Roles.Person")

	if opts.ID != nil {
		q = q.Where("mi.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Media item")
		}
		return nil, errors.WithStack(err)
	}

	return item, nil
}

func (svc *Service) ListMediaItems(ctx context.Context, opts ListMediaItemsOptions) ([]*models.MediaItem, error) {
	items, _, err := svc.listMediaItemsWithTotal(ctx, opts)
	return items, errors.WithStack(err)
}

func (svc *Service) ListMediaItemsWithTotal(ctx context.Context, opts ListMediaItemsOptions) ([]*models.MediaItem, int, error) {
	opts.includeTotal = true
	return svc.listMediaItemsWithTotal(ctx, opts)
}

func (svc *Service) listMediaItemsWithTotal(ctx context.Context, opts ListMediaItemsOptions) ([]*models.MediaItem, int, error) {
	items := []*models.MediaItem{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&items).
		Relation("Metadata").
		Relation("Roles").
		Relation("Roles.Person").
		Order("mi.id ASC")

	if opts.LibraryID != nil {
		q = q.Where("mi.library_id = ?", *opts.LibraryID)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return items, total, nil
}
