package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
	"github.com/bcdanielvega/seofficehours/pkg/view"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestRelatedProducts_emptyRendersNothing(t *testing.T) {
	assert.Empty(t, strings.TrimSpace(renderString(t, RelatedProducts(nil))))
}

func TestRelatedProducts(t *testing.T) {
	html := renderString(t, RelatedProducts([]view.ProductCard{
		{Name: "Trowel", Href: "/product/81", Brand: "OFS", Price: "$19.00"},
		{Name: "Sample Pot", Href: "/product/80", ImageURL: "https://cdn.example.com/pot.jpg", ImageAlt: "Pot", Price: "$9.99"},
	}))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "Related Products", doc.Find("h2").Text())
	assert.Equal(t, 2, doc.Find(".product-card").Length())
	src, _ := doc.Find(".product-card img").Attr("src")
	assert.Equal(t, "https://cdn.example.com/pot.jpg", src)
}

func TestReviewSummary(t *testing.T) {
	html := renderString(t, ReviewSummary(view.NewReviewSummary(commerceSummary(2, 9))))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	href, _ := doc.Find("a").Attr("href")
	assert.Equal(t, "#write-a-review", href)
	assert.Equal(t, "2 reviews", doc.Find("a").Text())
	assert.Equal(t, "★★★★★", doc.Find(".stars").Text())
}

func TestReviews(t *testing.T) {
	html := renderString(t, Reviews(view.ReviewsSection{SectionID: view.ReviewSectionID}))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Find("section#write-a-review").Length())
	assert.Contains(t, doc.Text(), "hasn't been reviewed yet")
}

func TestCartBadge(t *testing.T) {
	assert.NotContains(t, renderString(t, CartBadge(0)), `class="badge"`)
	assert.Contains(t, renderString(t, CartBadge(4)), `<span class="badge">4</span>`)
}

func commerceSummary(n, sum int) commerce.ReviewSummary {
	return commerce.ReviewSummary{NumberOfReviews: n, SummationOfRatings: sum}
}
