package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bcdanielvega/seofficehours/internal/http/flash"
	"github.com/bcdanielvega/seofficehours/internal/http/middleware"
	"github.com/bcdanielvega/seofficehours/pkg/view"
)

// RedirectWithFlash answers a form post with 303 See Other so the browser
// follows up with a GET.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	middleware.SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusSeeOther, location)
}
