package flash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdanielvega/seofficehours/pkg/view"
)

func TestCodec(t *testing.T) {
	c := NewCodec([]byte(strings.Repeat("s", 32)), false)

	v, err := c.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Added to cart."})
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.Flash{Kind: view.FlashSuccess, Message: "Added to cart."}, *f)

	_, err = c.Decode(v + "x")
	assert.ErrorIs(t, err, ErrInvalid)

	blank, err := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "  "})
	require.NoError(t, err)
	_, err = c.Decode(blank)
	assert.ErrorIs(t, err, ErrInvalid)

	noKind, err := c.Encode(view.Flash{Message: "hi"})
	require.NoError(t, err)
	f, err = c.Decode(noKind)
	require.NoError(t, err)
	assert.Empty(t, f.Kind, "the codec round-trips the kind as written")
}
