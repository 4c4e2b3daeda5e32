package graphql

import (
	"context"
	"fmt"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

func (c *Client) GetProduct(ctx context.Context, productID int64, optionValueIDs []commerce.OptionValueID) (commerce.Product, error) {
	var data struct {
		Site struct {
			Product *productNode `json:"product"`
		} `json:"site"`
	}
	vars := map[string]any{
		"productId":      productID,
		"optionValueIds": optionValueIDsVar(optionValueIDs),
		"imageWidth":     c.imageWidth,
	}
	if err := c.do(ctx, productQuery, vars, &data); err != nil {
		return commerce.Product{}, fmt.Errorf("get product %d: %w", productID, err)
	}
	if data.Site.Product == nil {
		return commerce.Product{}, commerce.ErrNotFound
	}
	return data.Site.Product.toProduct(), nil
}

// GetRelatedProducts returns an empty list when the product itself is gone.
func (c *Client) GetRelatedProducts(ctx context.Context, productID int64, optionValueIDs []commerce.OptionValueID) ([]commerce.ProductCard, error) {
	var data struct {
		Site struct {
			Product *struct {
				RelatedProducts connection[productCardNode] `json:"relatedProducts"`
			} `json:"product"`
		} `json:"site"`
	}
	vars := map[string]any{
		"productId":      productID,
		"optionValueIds": optionValueIDsVar(optionValueIDs),
		"first":          c.relatedLimit,
		"imageWidth":     c.imageWidth,
	}
	if err := c.do(ctx, relatedProductsQuery, vars, &data); err != nil {
		return nil, fmt.Errorf("get related products %d: %w", productID, err)
	}
	if data.Site.Product == nil {
		return []commerce.ProductCard{}, nil
	}

	nodes := data.Site.Product.RelatedProducts.nodes()
	out := make([]commerce.ProductCard, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.toCard())
	}
	return out, nil
}

func (c *Client) GetReviewSummary(ctx context.Context, productID int64) (commerce.ReviewSummary, error) {
	var data struct {
		Site struct {
			Product *struct {
				ReviewSummary struct {
					NumberOfReviews    int `json:"numberOfReviews"`
					SummationOfRatings int `json:"summationOfRatings"`
				} `json:"reviewSummary"`
			} `json:"product"`
		} `json:"site"`
	}
	if err := c.do(ctx, reviewSummaryQuery, map[string]any{"productId": productID}, &data); err != nil {
		return commerce.ReviewSummary{}, fmt.Errorf("get review summary %d: %w", productID, err)
	}
	if data.Site.Product == nil {
		return commerce.ReviewSummary{}, commerce.ErrNotFound
	}
	rs := data.Site.Product.ReviewSummary
	return commerce.ReviewSummary{NumberOfReviews: rs.NumberOfReviews, SummationOfRatings: rs.SummationOfRatings}, nil
}

func (c *Client) GetReviews(ctx context.Context, productID int64, limit int) ([]commerce.Review, error) {
	var data struct {
		Site struct {
			Product *struct {
				Reviews connection[reviewNode] `json:"reviews"`
			} `json:"product"`
		} `json:"site"`
	}
	vars := map[string]any{"productId": productID, "first": limit}
	if err := c.do(ctx, reviewsQuery, vars, &data); err != nil {
		return nil, fmt.Errorf("get reviews %d: %w", productID, err)
	}
	if data.Site.Product == nil {
		return nil, commerce.ErrNotFound
	}

	nodes := data.Site.Product.Reviews.nodes()
	out := make([]commerce.Review, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.toReview())
	}
	return out, nil
}
