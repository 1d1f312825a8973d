package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cleverferret/cleverferret/pkg/binder"
	"github.com/cleverferret/cleverferret/pkg/config"
	"github.com/cleverferret/cleverferret/pkg/errcodes"
	"github.com/cleverferret/cleverferret/pkg/jobs"
	"github.com/cleverferret/cleverferret/pkg/libraries"
	"github.com/cleverferret/cleverferret/pkg/media"
	"github.com/cleverferret/cleverferret/pkg/notifications"
	"github.com/cleverferret/cleverferret/pkg/people"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	libraries.RegisterRoutes(e, db)
	media.RegisterRoutes(e, db)
	people.RegisterRoutes(e, db)
	jobs.RegisterRoutes(e, db)
	notifications.RegisterRoutes(e, db)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
