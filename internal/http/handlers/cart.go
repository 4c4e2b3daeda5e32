package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
	"github.com/bcdanielvega/seofficehours/internal/http/cartcookie"
	"github.com/bcdanielvega/seofficehours/internal/http/flash"
	"github.com/bcdanielvega/seofficehours/internal/http/middleware"
	"github.com/bcdanielvega/seofficehours/internal/http/render"
	"github.com/bcdanielvega/seofficehours/internal/http/validation"
	"github.com/bcdanielvega/seofficehours/internal/shared/apperr"
	"github.com/bcdanielvega/seofficehours/pkg/view"
	"github.com/bcdanielvega/seofficehours/templates/components"
	"github.com/bcdanielvega/seofficehours/templates/pages"
)

const (
	msgAdded      = "Added to your cart."
	msgAddFailed  = "We couldn't add that item to your cart. Please try again."
	msgGone       = "That product is no longer available."
	msgNotForSale = "That product is not available for purchase right now."
	msgRemoved    = "Item removed from your cart."
	msgCartFailed = "We couldn't load your cart. Please try again shortly."
	msgCheckQty   = "Please choose a quantity between 1 and 99."
	defaultQty    = 1
)

// CartHandler handles GET /cart, GET /cart/badge, POST /cart/add and
// POST /cart/remove.
type CartHandler struct {
	Carts commerce.Carts
	Flash *flash.Codec
	CK    *cartcookie.Codec
	Log   *slog.Logger
}

func NewCartHandler(carts commerce.Carts, flashCodec *flash.Codec, ck *cartcookie.Codec, l *slog.Logger) *CartHandler {
	return &CartHandler{Carts: carts, Flash: flashCodec, CK: ck, Log: l}
}

type addToCartForm struct {
	ProductID int64 `form:"product_id" binding:"required,gte=1"`
	Quantity  int   `form:"quantity" binding:"omitempty,gte=1,lte=99"`
}

// Add puts a line in the shopper's cart, creating the cart when the cookie
// is missing or points at a cart the backend no longer has.
func (h *CartHandler) Add(c *gin.Context) {
	var form addToCartForm
	if err := c.ShouldBind(&form); err != nil {
		fields := validation.FromBindError(err, &form)
		if form.ProductID < 1 {
			middleware.Fail(c, apperr.InvalidErr("Please choose a product to add.", fields))
			return
		}
		render.RedirectWithFlash(c, h.Flash, view.ProductURL(form.ProductID), view.FlashError, msgCheckQty)
		return
	}
	if form.Quantity == 0 {
		form.Quantity = defaultQty
	}

	item := commerce.CartLineItemInput{
		ProductEntityID: form.ProductID,
		Quantity:        form.Quantity,
		SelectedOptions: commerce.OptionValueIDsFromMap(c.PostFormMap("option")),
	}
	back := view.ProductURLWith(item.ProductEntityID, item.SelectedOptions)
	ctx := c.Request.Context()

	var (
		cart commerce.Cart
		err  error
	)
	if id, ok := h.CK.CartID(c); ok {
		cart, err = h.Carts.AddCartLineItem(ctx, id, item)
		if errors.Is(err, commerce.ErrNotFound) {
			cart, err = h.Carts.CreateCart(ctx, item)
		}
	} else {
		cart, err = h.Carts.CreateCart(ctx, item)
	}

	if err != nil {
		h.Log.LogAttrs(ctx, slog.LevelWarn, "cart_add_failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.Int64("product_id", item.ProductEntityID),
			slog.Any("err", err),
		)
		msg := msgAddFailed
		switch {
		case errors.Is(err, commerce.ErrNotFound):
			msg = msgGone
		case errors.Is(err, commerce.ErrNotPurchasable):
			msg = msgNotForSale
		}
		render.RedirectWithFlash(c, h.Flash, back, view.FlashError, msg)
		return
	}

	h.CK.Set(c, cart.EntityID)
	render.RedirectWithFlash(c, h.Flash, back, view.FlashSuccess, msgAdded)
}

// Show renders the cart page. A missing or expired cart is an empty cart.
func (h *CartHandler) Show(c *gin.Context) {
	vm := view.CartPage{}
	if id, ok := h.CK.CartID(c); ok {
		cart, err := h.Carts.GetCart(c.Request.Context(), id)
		switch {
		case errors.Is(err, commerce.ErrNotFound):
			h.CK.Clear(c)
		case err != nil:
			middleware.Fail(c, apperr.UnavailableErr(msgCartFailed, err))
			return
		default:
			vm = view.NewCartPage(cart)
		}
	}

	l := render.Layout(c, "Cart")
	l.CartCount = vm.Count
	render.Component(c, http.StatusOK, pages.Cart(l, vm))
}

// Badge handles the HTMX refresh of the header cart badge.
func (h *CartHandler) Badge(c *gin.Context) {
	n := middleware.LookupCartCount(c, h.CK, h.Carts, h.Log)
	render.Component(c, http.StatusOK, components.CartBadge(n))
}

type removeFromCartForm struct {
	LineItemID string `form:"line_item_id" binding:"required"`
}

func (h *CartHandler) Remove(c *gin.Context) {
	var form removeFromCartForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Please choose an item to remove.", validation.FromBindError(err, &form)))
		return
	}

	id, ok := h.CK.CartID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	_, err := h.Carts.DeleteCartLineItem(c.Request.Context(), id, form.LineItemID)
	switch {
	case errors.Is(err, commerce.ErrNotFound):
		h.CK.Clear(c)
	case err != nil:
		h.Log.LogAttrs(c.Request.Context(), slog.LevelWarn, "cart_remove_failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("line_item_id", form.LineItemID),
			slog.Any("err", err),
		)
		render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashError, msgCartFailed)
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/cart", view.FlashSuccess, msgRemoved)
}
