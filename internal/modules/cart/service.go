package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

const defaultCurrency = "USD"

// Store keeps carts in the local database and prices them against a
// catalog at read time, so a cart always reflects current product data.
type Store struct {
	repo    *Repo
	catalog commerce.Catalog
}

var _ commerce.Carts = (*Store)(nil)

func NewStore(db *gorm.DB, catalog commerce.Catalog) *Store {
	return &Store{repo: NewRepo(db), catalog: catalog}
}

func (s *Store) Migrate(ctx context.Context) error { return s.repo.Migrate(ctx) }

func (s *Store) GetCart(ctx context.Context, cartID string) (commerce.Cart, error) {
	c, err := s.repo.GetCart(ctx, cartID)
	if errors.Is(err, errCartNotFound) {
		return commerce.Cart{}, commerce.ErrNotFound
	}
	if err != nil {
		return commerce.Cart{}, fmt.Errorf("load cart %s: %w", cartID, err)
	}
	return s.build(ctx, c)
}

func (s *Store) CreateCart(ctx context.Context, item commerce.CartLineItemInput) (commerce.Cart, error) {
	limit, err := s.checkItem(ctx, item)
	if err != nil {
		return commerce.Cart{}, err
	}
	var cartID string
	err = s.repo.Transaction(ctx, func(tx *Repo) error {
		c, err := tx.CreateCart(ctx)
		if err != nil {
			return fmt.Errorf("create cart: %w", err)
		}
		cartID = c.ID
		if err := tx.AddItem(ctx, c.ID, item.ProductEntityID, item.SelectedOptions, item.Quantity, limit); err != nil {
			return fmt.Errorf("add item to cart %s: %w", c.ID, err)
		}
		return nil
	})
	if err != nil {
		return commerce.Cart{}, err
	}
	return s.GetCart(ctx, cartID)
}

func (s *Store) AddCartLineItem(ctx context.Context, cartID string, item commerce.CartLineItemInput) (commerce.Cart, error) {
	if _, err := s.repo.GetCart(ctx, cartID); err != nil {
		if errors.Is(err, errCartNotFound) {
			return commerce.Cart{}, commerce.ErrNotFound
		}
		return commerce.Cart{}, err
	}
	limit, err := s.checkItem(ctx, item)
	if err != nil {
		return commerce.Cart{}, err
	}
	if err := s.repo.AddItem(ctx, cartID, item.ProductEntityID, item.SelectedOptions, item.Quantity, limit); err != nil {
		return commerce.Cart{}, fmt.Errorf("add item to cart %s: %w", cartID, err)
	}
	return s.GetCart(ctx, cartID)
}

// DeleteCartLineItem drops the cart together with its last line.
func (s *Store) DeleteCartLineItem(ctx context.Context, cartID, lineItemID string) (commerce.Cart, error) {
	if err := s.repo.RemoveItem(ctx, cartID, lineItemID); err != nil {
		return commerce.Cart{}, fmt.Errorf("remove line %s: %w", lineItemID, err)
	}
	c, err := s.repo.GetCart(ctx, cartID)
	if errors.Is(err, errCartNotFound) {
		return commerce.Cart{}, commerce.ErrNotFound
	}
	if err != nil {
		return commerce.Cart{}, err
	}
	if len(c.Items) == 0 {
		if err := s.repo.DeleteCart(ctx, cartID); err != nil {
			return commerce.Cart{}, fmt.Errorf("delete cart %s: %w", cartID, err)
		}
		return commerce.Cart{}, commerce.ErrNotFound
	}
	return s.build(ctx, c)
}

// MaxLineQuantity caps a cart line when the product sets no purchase maximum.
const MaxLineQuantity = 99

// checkItem rejects products the catalog does not know or will not sell and
// returns the most units of the item a single line may hold.
func (s *Store) checkItem(ctx context.Context, item commerce.CartLineItemInput) (int, error) {
	if item.Quantity < 1 {
		return 0, fmt.Errorf("quantity must be positive, got %d", item.Quantity)
	}
	p, err := s.catalog.GetProduct(ctx, item.ProductEntityID, item.SelectedOptions)
	if err != nil {
		return 0, err
	}
	if p.Availability.Status == commerce.Unavailable {
		return 0, commerce.ErrNotPurchasable
	}
	if p.MaxPurchaseQuantity != nil && *p.MaxPurchaseQuantity > 0 {
		return *p.MaxPurchaseQuantity, nil
	}
	return MaxLineQuantity, nil
}


func (s *Store) build(ctx context.Context, c Cart) (commerce.Cart, error) {
	out := commerce.Cart{EntityID: c.ID}
	total := decimal.Zero
	currency := ""

	for _, it := range c.Items {
		var sels []commerce.OptionValueID
		if len(it.Options) > 0 {
			if err := json.Unmarshal(it.Options, &sels); err != nil {
				return commerce.Cart{}, fmt.Errorf("cart item %s options: %w", it.ID, err)
			}
		}

		p, err := s.catalog.GetProduct(ctx, it.ProductID, sels)
		if errors.Is(err, commerce.ErrNotFound) {
			// product was retired after it went into the cart
			continue
		}
		if err != nil {
			return commerce.Cart{}, fmt.Errorf("price cart item %s: %w", it.ID, err)
		}

		li := commerce.LineItem{
			EntityID:        it.ID,
			ProductEntityID: p.EntityID,
			Name:            p.Name,
			Path:            p.Path,
			Quantity:        it.Quantity,
			SelectedOptions: selectedOptions(p, sels),
		}
		if im, ok := p.DefaultImage(); ok {
			li.ImageURL = im.URL
		}
		if p.Prices != nil {
			li.ListPrice = p.Prices.Price
			total = total.Add(li.ListPrice.Value.Mul(decimal.NewFromInt(int64(it.Quantity))))
			if currency == "" {
				currency = li.ListPrice.CurrencyCode
			}
		}
		out.LineItems = append(out.LineItems, li)
	}

	if currency == "" {
		currency = defaultCurrency
	}
	out.Amount = commerce.Money{Value: total, CurrencyCode: currency}
	return out, nil
}

// selectedOptions resolves selection ids to the option and value labels the
// product currently carries. Ids the product no longer has are dropped.
func selectedOptions(p commerce.Product, sels []commerce.OptionValueID) []commerce.SelectedOption {
	var out []commerce.SelectedOption
	for _, sel := range sels {
		for _, opt := range p.Options {
			if opt.EntityID != sel.OptionEntityID {
				continue
			}
			for _, v := range opt.Values {
				if v.EntityID == sel.ValueEntityID {
					out = append(out, commerce.SelectedOption{
						OptionEntityID: opt.EntityID,
						ValueEntityID:  v.EntityID,
						Name:           opt.DisplayName,
						Value:          v.Label,
					})
				}
			}
		}
	}
	return out
}
