package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bcdanielvega/seofficehours/internal/http/middleware"
)

// fragmentFailed logs a deferred section that could not load and answers
// with an empty body, so the swap removes the placeholder.
func fragmentFailed(c *gin.Context, l *slog.Logger, fragment string, err error) {
	l.LogAttrs(c.Request.Context(), slog.LevelWarn, "fragment_failed",
		slog.String("request_id", middleware.GetRequestID(c)),
		slog.String("fragment", fragment),
		slog.String("path", c.Request.URL.Path),
		slog.Any("err", err),
	)
	c.Data(http.StatusOK, "text/html; charset=utf-8", nil)
}
