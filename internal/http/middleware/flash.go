package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bcdanielvega/seofficehours/internal/http/flash"
	"github.com/bcdanielvega/seofficehours/pkg/view"
)

const flashKey = "flash"

// Flash hands the message in the flash cookie to this request alone. The
// cookie is expired as soon as it is seen, readable or not. Kinds the layout
// has no style for render as info.
func Flash(codec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(codec.CookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}
		writeFlashCookie(c, codec, "", -1)
		if f, err := codec.Decode(raw); err == nil {
			f.Kind = styledKind(f.Kind)
			c.Set(flashKey, f)
		}
		c.Next()
	}
}

func styledKind(k view.FlashKind) view.FlashKind {
	switch k {
	case view.FlashSuccess, view.FlashWarning, view.FlashError:
		return k
	}
	return view.FlashInfo
}

// GetFlash returns the message handed to this request, or nil.
func GetFlash(c *gin.Context) *view.Flash {
	v, _ := c.Get(flashKey)
	f, _ := v.(*view.Flash)
	return f
}

// SetFlashCookie queues f for the page the browser is redirected to. A
// message the codec cannot encode is dropped.
func SetFlashCookie(c *gin.Context, codec *flash.Codec, f view.Flash) {
	val, err := codec.Encode(f)
	if err != nil {
		return
	}
	writeFlashCookie(c, codec, val, codec.CookieMaxAge())
}

func writeFlashCookie(c *gin.Context, codec *flash.Codec, val string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     codec.CookieName,
		Value:    val,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   codec.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
