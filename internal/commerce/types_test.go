package commerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_DefaultImage(t *testing.T) {
	t.Parallel()

	p := Product{Images: []Image{{URL: "a"}, {URL: "b", IsDefault: true}}}
	im, ok := p.DefaultImage()
	assert.True(t, ok)
	assert.Equal(t, "b", im.URL)

	p = Product{Images: []Image{{URL: "a"}, {URL: "b"}}}
	im, ok = p.DefaultImage()
	assert.True(t, ok)
	assert.Equal(t, "a", im.URL)

	_, ok = Product{}.DefaultImage()
	assert.False(t, ok)
}

func TestReviewSummary_AverageRating(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, ReviewSummary{}.AverageRating())
	assert.InDelta(t, 4.5, ReviewSummary{NumberOfReviews: 2, SummationOfRatings: 9}.AverageRating(), 0.0001)
}

func TestCart_Count(t *testing.T) {
	t.Parallel()

	c := Cart{LineItems: []LineItem{{Quantity: 2}, {Quantity: 3}, {Quantity: -1}}}
	assert.Equal(t, 5, c.Count())
}
