package products

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
	"github.com/bcdanielvega/seofficehours/internal/shared/apperr"
)

const (
	msgNotFound    = "We couldn't find that product."
	msgUnavailable = "The store is temporarily unavailable. Please try again shortly."
)

// Service answers the product page and its deferred fragments.
type Service struct {
	catalog     commerce.Catalog
	reviewLimit int
}

func NewService(catalog commerce.Catalog, reviewLimit int) *Service {
	if reviewLimit <= 0 {
		reviewLimit = 5
	}
	return &Service{catalog: catalog, reviewLimit: reviewLimit}
}

// Request identifies a product page: the route slug plus the option
// selections carried in the query string.
type Request struct {
	ProductID  int64
	Selections []commerce.OptionValueID
}

// ParseRequest reads a product id from slug. Anything but a positive
// base-10 integer is a not-found.
func ParseRequest(slug string, query url.Values) (Request, error) {
	id, err := strconv.ParseInt(slug, 10, 64)
	if err != nil || id <= 0 {
		return Request{}, apperr.NotFoundErr(msgNotFound)
	}
	return Request{ProductID: id, Selections: commerce.OptionValueIDsFromQuery(query)}, nil
}

type Detail struct {
	Product    commerce.Product
	Selections []commerce.OptionValueID
}

func (s *Service) Detail(ctx context.Context, req Request) (Detail, error) {
	p, err := s.catalog.GetProduct(ctx, req.ProductID, req.Selections)
	if err != nil {
		return Detail{}, mapErr(err)
	}
	return Detail{Product: p, Selections: req.Selections}, nil
}

func (s *Service) Related(ctx context.Context, req Request) ([]commerce.ProductCard, error) {
	cards, err := s.catalog.GetRelatedProducts(ctx, req.ProductID, req.Selections)
	if err != nil {
		return nil, mapErr(err)
	}
	return cards, nil
}

func (s *Service) ReviewSummary(ctx context.Context, req Request) (commerce.ReviewSummary, error) {
	sum, err := s.catalog.GetReviewSummary(ctx, req.ProductID)
	if err != nil {
		return commerce.ReviewSummary{}, mapErr(err)
	}
	return sum, nil
}

type Reviews struct {
	Summary commerce.ReviewSummary
	Reviews []commerce.Review
}

// Reviews fetches the summary and the latest reviews concurrently.
func (s *Service) Reviews(ctx context.Context, req Request) (Reviews, error) {
	var out Reviews
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum, err := s.catalog.GetReviewSummary(gctx, req.ProductID)
		out.Summary = sum
		return err
	})
	g.Go(func() error {
		list, err := s.catalog.GetReviews(gctx, req.ProductID, s.reviewLimit)
		out.Reviews = list
		return err
	})
	if err := g.Wait(); err != nil {
		return Reviews{}, mapErr(err)
	}
	return out, nil
}

func mapErr(err error) error {
	if errors.Is(err, commerce.ErrNotFound) {
		return apperr.NotFoundErr(msgNotFound)
	}
	if errors.Is(err, context.Canceled) {
		return apperr.Wrap(err)
	}
	return apperr.UnavailableErr(msgUnavailable, err)
}
