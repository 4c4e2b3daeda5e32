package commerce

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a product or cart does not exist.
var ErrNotFound = errors.New("commerce: not found")

// ErrNotPurchasable is returned when adding a product or variant that is
// not for sale.
var ErrNotPurchasable = errors.New("commerce: not available for purchase")

// Catalog reads product data from the commerce backend.
type Catalog interface {
	GetProduct(ctx context.Context, productID int64, optionValueIDs []OptionValueID) (Product, error)
	GetRelatedProducts(ctx context.Context, productID int64, optionValueIDs []OptionValueID) ([]ProductCard, error)
	GetReviewSummary(ctx context.Context, productID int64) (ReviewSummary, error)
	GetReviews(ctx context.Context, productID int64, limit int) ([]Review, error)
}

// Carts manages carts on the commerce backend.
type Carts interface {
	GetCart(ctx context.Context, cartID string) (Cart, error)
	CreateCart(ctx context.Context, item CartLineItemInput) (Cart, error)
	AddCartLineItem(ctx context.Context, cartID string, item CartLineItemInput) (Cart, error)
	// DeleteCartLineItem returns ErrNotFound once the last line is gone and
	// the backend has dropped the cart.
	DeleteCartLineItem(ctx context.Context, cartID, lineItemID string) (Cart, error)
}

// Client is a full commerce backend.
type Client interface {
	Catalog
	Carts
}
