package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bcdanielvega/seofficehours/internal/http/middleware"
	"github.com/bcdanielvega/seofficehours/internal/http/render"
	"github.com/bcdanielvega/seofficehours/internal/modules/products"
	"github.com/bcdanielvega/seofficehours/pkg/view"
	"github.com/bcdanielvega/seofficehours/templates/components"
	"github.com/bcdanielvega/seofficehours/templates/pages"
)

// ProductHandler serves the product page and its deferred sections.
type ProductHandler struct {
	Svc *products.Service
	Log *slog.Logger
}

func NewProductHandler(svc *products.Service, l *slog.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Log: l}
}

func (h *ProductHandler) parse(c *gin.Context) (products.Request, error) {
	return products.ParseRequest(c.Param("slug"), c.Request.URL.Query())
}

// Show handles GET /product/:slug.
func (h *ProductHandler) Show(c *gin.Context) {
	req, err := h.parse(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	d, err := h.Svc.Detail(c.Request.Context(), req)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	vm := view.NewProductPage(d.Product, d.Selections)
	render.Component(c, http.StatusOK, pages.Product(render.Layout(c, d.Product.Name), vm))
}

// Related handles GET /product/:slug/related.
func (h *ProductHandler) Related(c *gin.Context) {
	req, err := h.parse(c)
	if err != nil {
		fragmentFailed(c, h.Log, "related", err)
		return
	}
	cards, err := h.Svc.Related(c.Request.Context(), req)
	if err != nil {
		fragmentFailed(c, h.Log, "related", err)
		return
	}
	render.Component(c, http.StatusOK, components.RelatedProducts(view.NewProductCards(cards)))
}

// ReviewSummary handles GET /product/:slug/review-summary.
func (h *ProductHandler) ReviewSummary(c *gin.Context) {
	req, err := h.parse(c)
	if err != nil {
		fragmentFailed(c, h.Log, "review_summary", err)
		return
	}
	sum, err := h.Svc.ReviewSummary(c.Request.Context(), req)
	if err != nil {
		fragmentFailed(c, h.Log, "review_summary", err)
		return
	}
	render.Component(c, http.StatusOK, components.ReviewSummary(view.NewReviewSummary(sum)))
}

// Reviews handles GET /product/:slug/reviews.
func (h *ProductHandler) Reviews(c *gin.Context) {
	req, err := h.parse(c)
	if err != nil {
		fragmentFailed(c, h.Log, "reviews", err)
		return
	}
	rs, err := h.Svc.Reviews(c.Request.Context(), req)
	if err != nil {
		fragmentFailed(c, h.Log, "reviews", err)
		return
	}
	render.Component(c, http.StatusOK, components.Reviews(view.NewReviewsSection(rs.Summary, rs.Reviews)))
}
