package notifications

import (
	"net/http"

	"github.com/cleverferret/cleverferret/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	notificationService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListNotificationsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	notifications, total, err := h.notificationService.ListNotificationsWithTotal(ctx, ListNotificationsOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Notifications []*models.Notification `json:"notifications"`
		Total         int                    `json:"total"`
	}{notifications, total}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
