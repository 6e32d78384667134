package middleware

import (
	"log/slog"
	"time"

	"github.com/iot-manager/console/pkg/navigation"
)

// Logging creates middleware that logs each navigation outcome.
// Applied navigations log at debug level, not-found at warn, superseded at
// debug and other failures at error. A nil logger uses slog.Default().
func Logging(logger *slog.Logger) navigation.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return navigation.MiddlewareFunc(func(req *navigation.Request, next func() error) error {
		start := time.Now()
		err := next()

		attrs := []any{
			"seq", req.Seq,
			"kind", string(req.Kind),
			"path", req.Path,
			"duration", time.Since(start),
		}
		if req.Entry.Name != "" {
			attrs = append(attrs, "route", req.Entry.Name)
		}

		switch Status(err) {
		case StatusOK:
			logger.Debug("navigate", attrs...)
		case StatusSuperseded:
			logger.Debug("navigate superseded", attrs...)
		case StatusNotFound:
			logger.Warn("route not found", attrs...)
		default:
			logger.Error("navigate failed", append(attrs, "error", err)...)
		}
		return err
	})
}
