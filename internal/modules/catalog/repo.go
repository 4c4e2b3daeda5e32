package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

// maxCategoryDepth bounds the breadcrumb walk so a parent cycle cannot loop.
const maxCategoryDepth = 10

// Repo serves the storefront catalog out of the local database.
type Repo struct {
	db           *gorm.DB
	relatedLimit int
}

var _ commerce.Catalog = (*Repo)(nil)

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db, relatedLimit: 12} }

func orderByPosition(db *gorm.DB) *gorm.DB { return db.Order("position asc, id asc") }

func (r *Repo) GetProduct(ctx context.Context, productID int64, optionValueIDs []commerce.OptionValueID) (commerce.Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("id = ? AND status = ?", productID, StatusActive).
		Preload("Images", orderByPosition).
		Preload("Options", orderByPosition).
		Preload("Options.Values", orderByPosition).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return commerce.Product{}, commerce.ErrNotFound
	}
	if err != nil {
		return commerce.Product{}, err
	}

	out := p.toCommerce()

	if sels := resolveSelections(p.Options, optionValueIDs); len(sels) > 0 {
		var variants []Variant
		err := r.db.WithContext(ctx).
			Where("product_id = ? AND options_key = ?", productID, commerce.SelectionsKey(sels)).
			Limit(1).
			Find(&variants).Error
		if err != nil {
			return commerce.Product{}, err
		}
		if len(variants) == 1 {
			applyVariant(&out, variants[0])
		}
	}

	if p.CategoryID != nil {
		crumbs, err := r.breadcrumbs(ctx, *p.CategoryID)
		if err != nil {
			return commerce.Product{}, err
		}
		out.Breadcrumbs = crumbs
	}

	return out, nil
}

// resolveSelections keeps the selections for options the product owns and
// fills every unselected option with its default value, so the variant
// lookup sees the same choices the product page shows.
func resolveSelections(opts []Option, sels []commerce.OptionValueID) []commerce.OptionValueID {
	out := make([]commerce.OptionValueID, 0, len(opts))
	for _, o := range opts {
		if v, ok := commerce.SelectedValue(sels, o.ID); ok {
			out = append(out, commerce.OptionValueID{OptionEntityID: o.ID, ValueEntityID: v})
			continue
		}
		for _, v := range o.Values {
			if v.IsDefault {
				out = append(out, commerce.OptionValueID{OptionEntityID: o.ID, ValueEntityID: v.ID})
				break
			}
		}
	}
	return out
}

// breadcrumbs walks from the leaf category up to the root and returns the
// chain root first.
func (r *Repo) breadcrumbs(ctx context.Context, leafID int64) ([]commerce.Breadcrumb, error) {
	var chain []commerce.Breadcrumb
	next := &leafID
	for depth := 0; next != nil && depth < maxCategoryDepth; depth++ {
		var cats []Category
		if err := r.db.WithContext(ctx).Where("id = ?", *next).Limit(1).Find(&cats).Error; err != nil {
			return nil, err
		}
		if len(cats) == 0 {
			break
		}
		chain = append(chain, commerce.Breadcrumb{Name: cats[0].Name, Path: cats[0].Path})
		next = cats[0].ParentID
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// GetRelatedProducts ignores option selections: relations are per product.
func (r *Repo) GetRelatedProducts(ctx context.Context, productID int64, _ []commerce.OptionValueID) ([]commerce.ProductCard, error) {
	var items []Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Joins("JOIN product_related ON product_related.related_id = products.id").
		Where("product_related.product_id = ? AND products.status = ?", productID, StatusActive).
		Preload("Images", orderByPosition).
		Order("product_related.position asc, products.id asc").
		Limit(r.relatedLimit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	out := make([]commerce.ProductCard, 0, len(items))
	for _, p := range items {
		out = append(out, p.toCard())
	}
	return out, nil
}

type reviewSummaryRow struct {
	NumberOfReviews    int `gorm:"column:number_of_reviews"`
	SummationOfRatings int `gorm:"column:summation_of_ratings"`
}

func (r *Repo) GetReviewSummary(ctx context.Context, productID int64) (commerce.ReviewSummary, error) {
	if err := r.ensureProduct(ctx, productID); err != nil {
		return commerce.ReviewSummary{}, err
	}

	var row reviewSummaryRow
	err := r.db.WithContext(ctx).
		Model(&Review{}).
		Select("COUNT(*) AS number_of_reviews, COALESCE(SUM(rating), 0) AS summation_of_ratings").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return commerce.ReviewSummary{}, err
	}
	return commerce.ReviewSummary{NumberOfReviews: row.NumberOfReviews, SummationOfRatings: row.SummationOfRatings}, nil
}

func (r *Repo) GetReviews(ctx context.Context, productID int64, limit int) ([]commerce.Review, error) {
	if err := r.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = 5
	}

	var rows []Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]commerce.Review, 0, len(rows))
	for _, rv := range rows {
		out = append(out, commerce.Review{
			EntityID:  rv.ID,
			Author:    rv.Author,
			Title:     rv.Title,
			Text:      rv.Text,
			Rating:    rv.Rating,
			CreatedAt: rv.CreatedAt,
		})
	}
	return out, nil
}

func (r *Repo) ensureProduct(ctx context.Context, productID int64) error {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("id = ? AND status = ?", productID, StatusActive).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n == 0 {
		return commerce.ErrNotFound
	}
	return nil
}
