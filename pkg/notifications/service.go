package notifications

import (
	"context"
	"time"

	"github.com/cleverferret/cleverferret/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type ListNotificationsOptions struct {
	Limit  *int
	Offset *int

	includeTotal bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	_, err := svc.db.
		NewInsert().
		Model(notification).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

// Notify records a notification best-effort. Failures are logged and
// swallowed so callers reporting progress never fail on the report itself.
func (svc *Service) Notify(ctx context.Context, level, title, message string) {
	log := logger.FromContext(ctx)

	err := svc.CreateNotification(ctx, &models.Notification{
		Level:   level,
		Title:   title,
		Message: message,
	})
	if err != nil {
		log.Err(err).Error("failed to create notification")
	}
}

func (svc *Service) ListNotifications(ctx context.Context, opts ListNotificationsOptions) ([]*models.Notification, error) {
	n, _, err := svc.listNotificationsWithTotal(ctx, opts)
	return n, errors.WithStack(err)
}

func (svc *Service) ListNotificationsWithTotal(ctx context.Context, opts ListNotificationsOptions) ([]*models.Notification, int, error) {
	opts.includeTotal = true
	return svc.listNotificationsWithTotal(ctx, opts)
}

func (svc *Service) listNotificationsWithTotal(ctx context.Context, opts ListNotificationsOptions) ([]*models.Notification, int, error) {
	notifications := []*models.Notification{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&notifications).
		Order("n.created_at DESC").
		Order("n.id DESC")

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

	return notifications, total, nil
}
