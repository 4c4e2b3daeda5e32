package catalog

import (
	"context"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func seededRepo(t *testing.T) (*Repo, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	f, err := os.Open("testdata/catalog.yaml")
	require.NoError(t, err)
	defer f.Close()

	fx, err := DecodeFixture(f)
	require.NoError(t, err)

	res, err := Seed(context.Background(), db, fx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Categories: 2, Products: 4}, res)

	return NewRepo(db), db
}

func TestRepo_GetProduct(t *testing.T) {
	repo, _ := seededRepo(t)

	p, err := repo.GetProduct(context.Background(), 77, nil)
	require.NoError(t, err)

	assert.Equal(t, "Orbit Terrarium - Large", p.Name)
	assert.Equal(t, "/orbit-terrarium-large/", p.Path)
	assert.Equal(t, "OTL-S", p.SKU, "the default Size resolves its variant")
	require.NotNil(t, p.Brand)
	assert.Equal(t, "OFS", p.Brand.Name)
	require.NotNil(t, p.Prices)
	assert.Equal(t, "109", p.Prices.Price.Value.String())
	assert.Equal(t, "USD", p.Prices.Price.CurrencyCode)
	assert.Equal(t, commerce.Available, p.Availability.Status)
	assert.Equal(t, "A hanging glass terrarium for air plants.", p.PlainTextDescription)
	require.NotNil(t, p.MaxPurchaseQuantity)
	assert.Equal(t, 4, *p.MaxPurchaseQuantity)

	require.Len(t, p.Images, 2)
	assert.Equal(t, "Side view", p.Images[0].AltText)
	im, _ := p.DefaultImage()
	assert.Equal(t, "Front view", im.AltText)

	require.Len(t, p.Options, 1)
	assert.Equal(t, []commerce.OptionValue{
		{EntityID: 69, Label: "Small", IsDefault: true},
		{EntityID: 70, Label: "Large"},
	}, p.Options[0].Values)

	assert.Equal(t, []commerce.Breadcrumb{
		{Name: "Shop All", Path: "/shop-all/"},
		{Name: "Garden", Path: "/garden/"},
	}, p.Breadcrumbs)
}

func TestRepo_GetProduct_variantSelection(t *testing.T) {
	repo, _ := seededRepo(t)
	ctx := context.Background()

	p, err := repo.GetProduct(ctx, 77, []commerce.OptionValueID{{OptionEntityID: 112, ValueEntityID: 70}})
	require.NoError(t, err)
	assert.Equal(t, "OTL-L", p.SKU)
	assert.Equal(t, "129", p.Prices.Price.Value.String())
	assert.Equal(t, commerce.Unavailable, p.Availability.Status)

	p, err = repo.GetProduct(ctx, 77, []commerce.OptionValueID{{OptionEntityID: 112, ValueEntityID: 69}})
	require.NoError(t, err)
	assert.Equal(t, "OTL-S", p.SKU)
	assert.Equal(t, "109", p.Prices.Price.Value.String(), "variant without price keeps the product price")

	p, err = repo.GetProduct(ctx, 77, []commerce.OptionValueID{{OptionEntityID: 112, ValueEntityID: 12345}})
	require.NoError(t, err)
	assert.Equal(t, "OTL", p.SKU, "unknown selection falls back to the base product")
}

func TestRepo_GetProduct_defaultVariantAppliesWithoutQuery(t *testing.T) {
	repo, db := seededRepo(t)
	require.NoError(t, db.Model(&OptionValue{}).Where("id = ?", 69).Update("is_default", false).Error)
	require.NoError(t, db.Model(&OptionValue{}).Where("id = ?", 70).Update("is_default", true).Error)

	p, err := repo.GetProduct(context.Background(), 77, nil)
	require.NoError(t, err)
	assert.Equal(t, "OTL-L", p.SKU)
	assert.Equal(t, commerce.Unavailable, p.Availability.Status)
	assert.Equal(t, "129", p.Prices.Price.Value.String())
}

func TestRepo_GetProduct_ignoresForeignOptions(t *testing.T) {
	repo, _ := seededRepo(t)

	sels := commerce.OptionValueIDsFromQuery(url.Values{"112": {"70"}, "5": {"5"}})
	require.Len(t, sels, 2)

	p, err := repo.GetProduct(context.Background(), 77, sels)
	require.NoError(t, err)
	assert.Equal(t, "OTL-L", p.SKU)
	assert.Equal(t, commerce.Unavailable, p.Availability.Status)

	p, err = repo.GetProduct(context.Background(), 77, []commerce.OptionValueID{{OptionEntityID: 5, ValueEntityID: 5}})
	require.NoError(t, err)
	assert.Equal(t, "OTL-S", p.SKU, "only a foreign option selected still resolves the default")
}

func TestResolveSelections(t *testing.T) {
	opts := []Option{
		{ID: 1, Values: []OptionValue{{ID: 10}, {ID: 11, IsDefault: true}}},
		{ID: 2, Values: []OptionValue{{ID: 20}, {ID: 21}}},
	}

	tests := []struct {
		name string
		in   []commerce.OptionValueID
		want []commerce.OptionValueID
	}{
		{"defaults fill missing options", nil, []commerce.OptionValueID{{OptionEntityID: 1, ValueEntityID: 11}}},
		{"selection wins over default", []commerce.OptionValueID{{OptionEntityID: 1, ValueEntityID: 10}}, []commerce.OptionValueID{{OptionEntityID: 1, ValueEntityID: 10}}},
		{"foreign options dropped", []commerce.OptionValueID{{OptionEntityID: 9, ValueEntityID: 9}, {OptionEntityID: 2, ValueEntityID: 21}}, []commerce.OptionValueID{{OptionEntityID: 1, ValueEntityID: 11}, {OptionEntityID: 2, ValueEntityID: 21}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveSelections(opts, tt.in))
		})
	}
}

func TestRepo_GetProduct_notFound(t *testing.T) {
	repo, _ := seededRepo(t)

	_, err := repo.GetProduct(context.Background(), 4040, nil)
	assert.ErrorIs(t, err, commerce.ErrNotFound)

	_, err = repo.GetProduct(context.Background(), 82, nil)
	assert.ErrorIs(t, err, commerce.ErrNotFound, "draft products are hidden")
}

func TestRepo_GetProduct_salePrice(t *testing.T) {
	repo, _ := seededRepo(t)

	p, err := repo.GetProduct(context.Background(), 80, nil)
	require.NoError(t, err)
	assert.Equal(t, "9.99", p.Prices.Price.Value.String())
	require.NotNil(t, p.Prices.BasePrice)
	assert.Equal(t, "12.5", p.Prices.BasePrice.Value.String())
	assert.Nil(t, p.Brand)
	assert.Empty(t, p.Breadcrumbs)
}

func TestRepo_GetRelatedProducts(t *testing.T) {
	repo, _ := seededRepo(t)

	cards, err := repo.GetRelatedProducts(context.Background(), 77, nil)
	require.NoError(t, err)

	require.Len(t, cards, 2, "dangling relation to 999 is skipped")
	assert.Equal(t, "Trowel", cards[0].Name)
	assert.Equal(t, "Sample Pot", cards[1].Name)
	require.NotNil(t, cards[1].Image)
	assert.Equal(t, "https://cdn.example.com/pot.jpg", cards[1].Image.URL)
	assert.Nil(t, cards[0].Image)

	cards, err = repo.GetRelatedProducts(context.Background(), 80, nil)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestRepo_Reviews(t *testing.T) {
	repo, _ := seededRepo(t)
	ctx := context.Background()

	sum, err := repo.GetReviewSummary(ctx, 77)
	require.NoError(t, err)
	assert.Equal(t, commerce.ReviewSummary{NumberOfReviews: 2, SummationOfRatings: 8}, sum)

	reviews, err := repo.GetReviews(ctx, 77, 1)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Ben", reviews[0].Author, "newest first")

	sum, err = repo.GetReviewSummary(ctx, 81)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.NumberOfReviews)

	_, err = repo.GetReviews(ctx, 4040, 5)
	assert.ErrorIs(t, err, commerce.ErrNotFound)
}

func TestSeed_isIdempotent(t *testing.T) {
	repo, db := seededRepo(t)

	f, err := os.Open("testdata/catalog.yaml")
	require.NoError(t, err)
	defer f.Close()
	fx, err := DecodeFixture(f)
	require.NoError(t, err)

	_, err = Seed(context.Background(), db, fx)
	require.NoError(t, err)

	var images, reviews int64
	require.NoError(t, db.Model(&Image{}).Where("product_id = ?", 77).Count(&images).Error)
	require.NoError(t, db.Model(&Review{}).Where("product_id = ?", 77).Count(&reviews).Error)
	assert.Equal(t, int64(2), images)
	assert.Equal(t, int64(2), reviews)

	p, err := repo.GetProduct(context.Background(), 77, nil)
	require.NoError(t, err)
	assert.Len(t, p.Options[0].Values, 2)
}
