package render

import (
	"github.com/gin-gonic/gin"

	"github.com/bcdanielvega/seofficehours/pkg/view"
	"github.com/bcdanielvega/seofficehours/templates/pages"
)

// ErrorPage matches middleware.PageRenderer.
func ErrorPage(c *gin.Context, status int, msg, requestID string) {
	Component(c, status, pages.Error(Layout(c, ""), view.ErrorPage{
		Status:    status,
		Message:   msg,
		RequestID: requestID,
	}))
}
