package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
	"github.com/bcdanielvega/seofficehours/internal/http/cartcookie"
	"github.com/bcdanielvega/seofficehours/internal/http/flash"
	"github.com/bcdanielvega/seofficehours/internal/http/handlers"
	"github.com/bcdanielvega/seofficehours/internal/http/middleware"
	"github.com/bcdanielvega/seofficehours/internal/http/render"
	"github.com/bcdanielvega/seofficehours/internal/modules/marketing"
	"github.com/bcdanielvega/seofficehours/internal/modules/products"
	"github.com/bcdanielvega/seofficehours/internal/shared/apperr"
	"github.com/bcdanielvega/seofficehours/internal/storage"
)

type Deps struct {
	Logger  *slog.Logger
	Catalog commerce.Catalog
	Carts   commerce.Carts
	Slides  *marketing.Service

	CookieSecret []byte
	CookieSecure bool
	ReviewLimit  int

	// Uploads is served under its URL prefix when assets live on local disk.
	Uploads *storage.Local
	// StaticDir holds stylesheets and images under /static. Optional.
	StaticDir string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()

	flashCodec := flash.NewCodec(d.CookieSecret, d.CookieSecure)
	cartCK := cartcookie.New(d.CookieSecret, d.CookieSecure)

	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.ErrorHandler(d.Logger, render.ErrorPage),
		middleware.Flash(flashCodec),
		middleware.CartCount(cartCK, d.Carts, d.Logger),
	)

	if d.StaticDir != "" {
		r.Static("/static", d.StaticDir)
	}
	if d.Uploads != nil {
		r.Static(d.Uploads.URLPrefix, d.Uploads.BaseDir)
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	home := handlers.NewHomeHandler(d.Slides)
	r.GET("/", home.Show)

	ph := handlers.NewProductHandler(products.NewService(d.Catalog, d.ReviewLimit), d.Logger)
	r.GET("/product/:slug", ph.Show)
	r.GET("/product/:slug/related", ph.Related)
	r.GET("/product/:slug/review-summary", ph.ReviewSummary)
	r.GET("/product/:slug/reviews", ph.Reviews)

	ch := handlers.NewCartHandler(d.Carts, flashCodec, cartCK, d.Logger)
	r.GET("/cart", ch.Show)
	r.GET("/cart/badge", ch.Badge)
	r.POST("/cart/add", ch.Add)
	r.POST("/cart/remove", ch.Remove)

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, apperr.NotFoundErr("We couldn't find that page."))
	})

	return r
}
