package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bcdanielvega/seofficehours/internal/shared/apperr"
)

// PageRenderer writes the HTML error page for status.
type PageRenderer func(c *gin.Context, status int, msg, requestID string)

func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

// IsFragment reports whether the request came from an HTMX swap.
func IsFragment(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler turns the last error recorded by a handler into a response.
// Fragments get an empty body so a failed swap leaves the page intact.
func ErrorHandler(l *slog.Logger, page PageRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		publicMsg := apperr.PublicMessage(err)
		rid := GetRequestID(c)

		level := slog.LevelError
		if status < 500 {
			level = slog.LevelWarn
		}
		l.LogAttrs(c.Request.Context(), level, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		switch {
		case WantsJSON(c):
			payload := gin.H{"error": publicMsg, "request_id": rid}
			if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
				payload["fields"] = ae.Fields
			}
			c.AbortWithStatusJSON(status, payload)
		case IsFragment(c):
			c.AbortWithStatus(status)
		default:
			c.Abort()
			page(c, status, publicMsg, rid)
		}
	}
}
