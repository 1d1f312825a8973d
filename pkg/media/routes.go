package media

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		mediaService: NewService(db),
	}

	e.GET("/media/:id", h.retrieve)
	e.GET("/media", h.list)
}
