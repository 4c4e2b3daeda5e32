package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
	"github.com/bcdanielvega/seofficehours/internal/http/cartcookie"
)

const cartCountKey = "cart_count"

// CartCount puts the header badge count in the context for full page
// renders. HTMX fragments skip the lookup; they do not draw the header.
func CartCount(ck *cartcookie.Codec, carts commerce.Carts, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsFragment(c) || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		c.Set(cartCountKey, LookupCartCount(c, ck, carts, l))
		c.Next()
	}
}

// LookupCartCount fetches the shopper's cart and returns its total quantity.
// A cart that no longer exists clears the cookie. Backend failures count as
// an empty cart.
func LookupCartCount(c *gin.Context, ck *cartcookie.Codec, carts commerce.Carts, l *slog.Logger) int {
	id, ok := ck.CartID(c)
	if !ok {
		return 0
	}
	cart, err := carts.GetCart(c.Request.Context(), id)
	if errors.Is(err, commerce.ErrNotFound) {
		ck.Clear(c)
		return 0
	}
	if err != nil {
		l.LogAttrs(c.Request.Context(), slog.LevelWarn, "cart_count_failed",
			slog.String("request_id", GetRequestID(c)),
			slog.Any("err", err),
		)
		return 0
	}
	return cart.Count()
}

func GetCartCount(c *gin.Context) int {
	v, ok := c.Get(cartCountKey)
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}
