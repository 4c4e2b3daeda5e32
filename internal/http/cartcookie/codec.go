// Package cartcookie stores the shopper's cart id in an HMAC-signed cookie.
package cartcookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var ErrInvalid = errors.New("invalid cart cookie")

const (
	DefaultName   = "seo_cart"
	DefaultMaxAge = 30 * 24 * time.Hour
)

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
	MaxAge     time.Duration
}

func New(secret []byte, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: DefaultName, Secure: secure, MaxAge: DefaultMaxAge}
}

// Encode returns cartID.base64(hmac(cartID)). Cart ids never contain a dot.
func (c *Codec) Encode(cartID string) string {
	return cartID + "." + sign(c.Secret, cartID)
}

func (c *Codec) Decode(v string) (string, error) {
	id, sig, ok := strings.Cut(v, ".")
	if !ok || id == "" || strings.Contains(sig, ".") {
		return "", ErrInvalid
	}
	if !verify(c.Secret, id, sig) {
		return "", ErrInvalid
	}
	return id, nil
}

// CartID reads the cart id from the request. A tampered cookie is cleared.
func (c *Codec) CartID(ctx *gin.Context) (string, bool) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return "", false
	}
	id, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return "", false
	}
	return id, true
}

func (c *Codec) Set(ctx *gin.Context, cartID string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, c.Encode(cartID), int(c.MaxAge.Seconds()), "/", "", c.Secure, true)
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
