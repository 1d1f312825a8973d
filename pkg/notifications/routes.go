package notifications

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		notificationService: NewService(db),
	}

	e.GET("/notifications", h.list)
}
