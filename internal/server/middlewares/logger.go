package middlewares

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	slogGin "github.com/samber/slog-gin"
)

// Logger logs one line per request under the "http" group. Health probes are
// skipped to keep the console readable.
func Logger() gin.HandlerFunc {
	httpLogger := slog.Default().WithGroup("http")

	return slogGin.NewWithConfig(httpLogger, slogGin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
		Filters: []slogGin.Filter{
			slogGin.IgnorePath("/api/health"),
		},
	})
}
