package middleware

import (
	"log/slog"
	"time"

	"github.com/wayfinder-dev/wayfinder/pkg/router"
)

// Logging creates middleware that logs every navigation through the chain.
// A nil logger uses slog.Default().
//
// Successful navigations log at Info with the route and duration; failures
// log at Error. The pipeline's own error handling still runs; this
// middleware only observes.
func Logging(logger *slog.Logger) router.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return router.MiddlewareFunc(func(ctx *router.Context, next func() error) error {
		start := time.Now()
		err := next()
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("navigation failed",
				"path", ctx.Path,
				"route", routeLabel(ctx),
				"duration", elapsed,
				"error", err,
			)
			return err
		}

		logger.Info("navigated",
			"path", ctx.Path,
			"route", routeLabel(ctx),
			"duration", elapsed,
		)
		return nil
	})
}
