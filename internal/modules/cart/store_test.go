package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

type fakeCatalog struct {
	commerce.Catalog
	products map[int64]commerce.Product
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64, sels []commerce.OptionValueID) (commerce.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return commerce.Product{}, commerce.ErrNotFound
	}
	if v, ok := commerce.SelectedValue(sels, 112); ok && v == 70 {
		p.Availability.Status = commerce.Unavailable
	}
	return p, nil
}

func usd(v string) commerce.Money {
	return commerce.Money{Value: decimal.RequireFromString(v), CurrencyCode: "USD"}
}

func newTestStore(t *testing.T) (*Store, *fakeCatalog) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	cat := &fakeCatalog{products: map[int64]commerce.Product{
		77: {
			EntityID:     77,
			Name:         "Orbit Terrarium - Large",
			Path:         "/orbit-terrarium-large/",
			Prices:       &commerce.Prices{Price: usd("109.00")},
			Availability: commerce.Availability{Status: commerce.Available},
			Images:       []commerce.Image{{URL: "https://cdn.example.com/orbit.jpg", IsDefault: true}},
			Options: []commerce.ProductOption{{
				EntityID:    112,
				DisplayName: "Size",
				Values:      []commerce.OptionValue{{EntityID: 69, Label: "Small"}, {EntityID: 70, Label: "Large"}},
			}},
		},
		80: {
			EntityID:     80,
			Name:         "Sample Pot",
			Path:         "/sample-pot/",
			Prices:       &commerce.Prices{Price: usd("9.99")},
			Availability: commerce.Availability{Status: commerce.Available},
		},
	}}

	s := NewStore(db, cat)
	require.NoError(t, s.Migrate(context.Background()))
	return s, cat
}

var small = []commerce.OptionValueID{{OptionEntityID: 112, ValueEntityID: 69}}

func TestStore_CreateCart(t *testing.T) {
	s, _ := newTestStore(t)

	c, err := s.CreateCart(context.Background(), commerce.CartLineItemInput{ProductEntityID: 77, Quantity: 2, SelectedOptions: small})
	require.NoError(t, err)

	assert.NotEmpty(t, c.EntityID)
	require.Len(t, c.LineItems, 1)
	li := c.LineItems[0]
	assert.Equal(t, "Orbit Terrarium - Large", li.Name)
	assert.Equal(t, "https://cdn.example.com/orbit.jpg", li.ImageURL)
	assert.Equal(t, 2, li.Quantity)
	assert.Equal(t, []commerce.SelectedOption{{OptionEntityID: 112, ValueEntityID: 69, Name: "Size", Value: "Small"}}, li.SelectedOptions)
	assert.Equal(t, "218", c.Amount.Value.String())
	assert.Equal(t, "USD", c.Amount.CurrencyCode)
}

func TestStore_AddCartLineItem_sameLineIncrementsQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	c, err := s.CreateCart(ctx, commerce.CartLineItemInput{ProductEntityID: 77, Quantity: 1, SelectedOptions: small})
	require.NoError(t, err)

	c, err = s.AddCartLineItem(ctx, c.EntityID, commerce.CartLineItemInput{ProductEntityID: 77, Quantity: 3, SelectedOptions: small})
	require.NoError(t, err)
	require.Len(t, c.LineItems, 1)
	assert.Equal(t, 4, c.LineItems[0].Quantity)

	c, err = s.AddCartLineItem(ctx, c.EntityID, commerce.CartLineItemInput{ProductEntityID: 80, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, c.LineItems, 2)
	assert.Equal(t, 5, c.Count())
	assert.Equal(t, "445.99", c.Amount.Value.String())
}

func TestStore_CreateCart_rollsBackWhenItemFails(t *testing.T) {
	s, _ := newTestStore(t)
	db := s.repo.db
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("fail_cart_items", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Model.(*CartItem); ok {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := s.CreateCart(context.Background(), commerce.CartLineItemInput{ProductEntityID: 80, Quantity: 1})
	require.Error(t, err)

	var carts int64
	require.NoError(t, db.Model(&Cart{}).Count(&carts).Error)
	assert.Zero(t, carts, "no empty cart is left behind")
}

func TestStore_AddCartLineItem_capsQuantity(t *testing.T) {
	s, cat := newTestStore(t)
	ctx := context.Background()

	c, err := s.CreateCart(ctx, commerce.CartLineItemInput{ProductEntityID: 80, Quantity: 60})
	require.NoError(t, err)
	c, err = s.AddCartLineItem(ctx, c.EntityID, commerce.CartLineItemInput{ProductEntityID: 80, Quantity: 60})
	require.NoError(t, err)
	require.Len(t, c.LineItems, 1)
	assert.Equal(t, MaxLineQuantity, c.LineItems[0].Quantity)

	p := cat.products[77]
	limit := 5
	p.MaxPurchaseQuantity = &limit
	cat.products[77] = p

	c, err = s.AddCartLineItem(ctx, c.EntityID, commerce.CartLineItemInput{ProductEntityID: 77, Quantity: 3, SelectedOptions: small})
	require.NoError(t, err)
	c, err = s.AddCartLineItem(ctx, c.EntityID, commerce.CartLineItemInput{ProductEntityID: 77, Quantity: 3, SelectedOptions: small})
	require.NoError(t, err)
	require.Len(t, c.LineItems, 2)
	assert.Equal(t, 5, c.LineItems[1].Quantity, "capped at the product's purchase maximum")

	c, err = s.AddCartLineItem(ctx, c.EntityID, commerce.CartLineItemInput{ProductEntityID: 77, Quantity: 500, SelectedOptions: small})
	require.NoError(t, err)
	assert.Equal(t, 5, c.LineItems[1].Quantity)
}

func TestStore_rejectsBadItems(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateCart(ctx, commerce.CartLineItemInput{ProductEntityID: 4040, Quantity: 1})
	assert.ErrorIs(t, err, commerce.ErrNotFound)

	_, err = s.CreateCart(ctx, commerce.CartLineItemInput{
		ProductEntityID: 77,
		Quantity:        1,
		SelectedOptions: []commerce.OptionValueID{{OptionEntityID: 112, ValueEntityID: 70}},
	})
	assert.ErrorIs(t, err, commerce.ErrNotPurchasable)

	_, err = s.AddCartLineItem(ctx, "missing", commerce.CartLineItemInput{ProductEntityID: 80, Quantity: 1})
	assert.ErrorIs(t, err, commerce.ErrNotFound)
}

func TestStore_GetCart_skipsRetiredProducts(t *testing.T) {
	s, cat := newTestStore(t)
	ctx := context.Background()

	c, err := s.CreateCart(ctx, commerce.CartLineItemInput{ProductEntityID: 80, Quantity: 1})
	require.NoError(t, err)
	_, err = s.AddCartLineItem(ctx, c.EntityID, commerce.CartLineItemInput{ProductEntityID: 77, Quantity: 1, SelectedOptions: small})
	require.NoError(t, err)

	delete(cat.products, 80)

	c, err = s.GetCart(ctx, c.EntityID)
	require.NoError(t, err)
	require.Len(t, c.LineItems, 1)
	assert.Equal(t, int64(77), c.LineItems[0].ProductEntityID)

	_, err = s.GetCart(ctx, "missing")
	assert.ErrorIs(t, err, commerce.ErrNotFound)
}

func TestStore_DeleteCartLineItem(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	c, err := s.CreateCart(ctx, commerce.CartLineItemInput{ProductEntityID: 80, Quantity: 1})
	require.NoError(t, err)
	c, err = s.AddCartLineItem(ctx, c.EntityID, commerce.CartLineItemInput{ProductEntityID: 77, Quantity: 1, SelectedOptions: small})
	require.NoError(t, err)
	require.Len(t, c.LineItems, 2)

	c, err = s.DeleteCartLineItem(ctx, c.EntityID, c.LineItems[0].EntityID)
	require.NoError(t, err)
	require.Len(t, c.LineItems, 1)

	cartID := c.EntityID
	_, err = s.DeleteCartLineItem(ctx, cartID, c.LineItems[0].EntityID)
	assert.ErrorIs(t, err, commerce.ErrNotFound, "removing the last line drops the cart")

	_, err = s.GetCart(ctx, cartID)
	assert.ErrorIs(t, err, commerce.ErrNotFound)
}
