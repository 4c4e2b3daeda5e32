package layouts

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdanielvega/seofficehours/pkg/view"
)

func render(t *testing.T, l view.Layout, body templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Base(l).Render(templ.WithChildren(context.Background(), body), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestBase(t *testing.T) {
	l := view.Layout{Title: "Cart", CartCount: 2, Flash: &view.Flash{Kind: view.FlashWarning, Message: "Heads up"}}
	doc := render(t, l, templ.Raw(`<p id="content">hello</p>`))

	assert.Equal(t, "Cart | SE Office Hours", doc.Find("title").Text())
	assert.Equal(t, "hello", doc.Find("main #content").Text())
	assert.Equal(t, "2", doc.Find("header #cart-badge .badge").Text())

	flash := doc.Find(".flash")
	assert.True(t, flash.HasClass("flash-warning"))
	role, _ := flash.Attr("role")
	assert.Equal(t, "alert", role)
	assert.Equal(t, "Heads up", flash.Text())
}

func TestBase_withoutFlash(t *testing.T) {
	doc := render(t, view.Layout{}, templ.NopComponent)

	assert.Equal(t, "SE Office Hours", doc.Find("title").Text())
	assert.Zero(t, doc.Find(".flash").Length())
	assert.Zero(t, doc.Find("#cart-badge .badge").Length())
}
