package cartcookie

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte(strings.Repeat("k", 32))

func TestCodec_roundTrip(t *testing.T) {
	c := New(secret, false)

	v := c.Encode("3f1c2a9e-7c55-4c1e-9d55-0d4f8f0b9b2a")
	id, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "3f1c2a9e-7c55-4c1e-9d55-0d4f8f0b9b2a", id)
}

func TestCodec_rejectsTampering(t *testing.T) {
	c := New(secret, false)
	v := c.Encode("cart-1")

	other := New([]byte(strings.Repeat("x", 32)), false)
	for _, bad := range []string{"", "cart-1", ".sig", "cart-2." + strings.SplitN(v, ".", 2)[1], v + ".extra", other.Encode("cart-1")} {
		_, err := c.Decode(bad)
		assert.ErrorIs(t, err, ErrInvalid, bad)
	}
}

func TestCodec_CartID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New(secret, true)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx.Request.AddCookie(&http.Cookie{Name: DefaultName, Value: c.Encode("cart-1")})

	id, ok := c.CartID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "cart-1", id)

	w = httptest.NewRecorder()
	ctx, _ = gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx.Request.AddCookie(&http.Cookie{Name: DefaultName, Value: "cart-1.forged"})

	_, ok = c.CartID(ctx)
	assert.False(t, ok)
	assert.Contains(t, w.Header().Get("Set-Cookie"), DefaultName+"=;", "forged cookie is cleared")
}

func TestCodec_Set(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New(secret, true)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	c.Set(ctx, "cart-1")

	h := w.Header().Get("Set-Cookie")
	assert.Contains(t, h, "HttpOnly")
	assert.Contains(t, h, "Secure")
	assert.Contains(t, h, "SameSite=Lax")
	assert.Contains(t, h, "Max-Age=2592000")
}
