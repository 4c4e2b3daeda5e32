package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bcdanielvega/seofficehours/internal/http/render"
	"github.com/bcdanielvega/seofficehours/internal/modules/marketing"
	"github.com/bcdanielvega/seofficehours/pkg/view"
	"github.com/bcdanielvega/seofficehours/templates/pages"
)

type HomeHandler struct {
	Slides *marketing.Service
}

func NewHomeHandler(slides *marketing.Service) *HomeHandler {
	return &HomeHandler{Slides: slides}
}

// Show handles GET / with an optional ?slide=N.
func (h *HomeHandler) Show(c *gin.Context) {
	frame := h.Slides.Frame(marketing.ParseIndex(c.Query("slide")))
	render.Component(c, http.StatusOK, pages.Home(render.Layout(c, ""), view.NewHomePage(frame)))
}
