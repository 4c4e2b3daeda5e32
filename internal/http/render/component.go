package render

import (
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/bcdanielvega/seofficehours/internal/http/middleware"
	"github.com/bcdanielvega/seofficehours/pkg/view"
)

// Component writes c as an HTML response. Render failures are recorded on
// the context for the logger; the status line is already out by then.
func Component(c *gin.Context, status int, comp templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := comp.Render(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// Layout collects the per-request parts of the page chrome.
func Layout(c *gin.Context, title string) view.Layout {
	return view.Layout{
		Title:     title,
		Flash:     middleware.GetFlash(c),
		CartCount: middleware.GetCartCount(c),
	}
}
