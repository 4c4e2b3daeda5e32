package graphql

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

type connection[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
}

func (c connection[T]) nodes() []T {
	out := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}
	return out
}

type moneyNode struct {
	Value        decimal.Decimal `json:"value"`
	CurrencyCode string          `json:"currencyCode"`
}

func (m moneyNode) toMoney() commerce.Money {
	return commerce.Money{Value: m.Value, CurrencyCode: m.CurrencyCode}
}

func (m *moneyNode) toMoneyPtr() *commerce.Money {
	if m == nil {
		return nil
	}
	v := m.toMoney()
	return &v
}

type pricesNode struct {
	Price       moneyNode  `json:"price"`
	BasePrice   *moneyNode `json:"basePrice"`
	SalePrice   *moneyNode `json:"salePrice"`
	RetailPrice *moneyNode `json:"retailPrice"`
}

func (p *pricesNode) toPrices() *commerce.Prices {
	if p == nil {
		return nil
	}
	return &commerce.Prices{
		Price:       p.Price.toMoney(),
		BasePrice:   p.BasePrice.toMoneyPtr(),
		SalePrice:   p.SalePrice.toMoneyPtr(),
		RetailPrice: p.RetailPrice.toMoneyPtr(),
	}
}

type brandNode struct {
	Name string `json:"name"`
}

func (b *brandNode) toBrand() *commerce.Brand {
	if b == nil || b.Name == "" {
		return nil
	}
	return &commerce.Brand{Name: b.Name}
}

type imageNode struct {
	URL       string `json:"url"`
	AltText   string `json:"altText"`
	IsDefault bool   `json:"isDefault"`
}

type optionValueNode struct {
	EntityID  int64  `json:"entityId"`
	Label     string `json:"label"`
	IsDefault bool   `json:"isDefault"`
}

type optionNode struct {
	Typename    string                      `json:"__typename"`
	EntityID    int64                       `json:"entityId"`
	DisplayName string                      `json:"displayName"`
	IsRequired  bool                        `json:"isRequired"`
	Values      connection[optionValueNode] `json:"values"`
}

type breadcrumbNode struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type categoryNode struct {
	Name        string                     `json:"name"`
	Path        string                     `json:"path"`
	Breadcrumbs connection[breadcrumbNode] `json:"breadcrumbs"`
}

type productNode struct {
	EntityID             int64      `json:"entityId"`
	Name                 string     `json:"name"`
	Path                 string     `json:"path"`
	SKU                  string     `json:"sku"`
	UPC                  *string    `json:"upc"`
	Condition            string     `json:"condition"`
	PlainTextDescription string     `json:"plainTextDescription"`
	Warranty             string     `json:"warranty"`
	MinPurchaseQuantity  *int       `json:"minPurchaseQuantity"`
	MaxPurchaseQuantity  *int       `json:"maxPurchaseQuantity"`
	Brand                *brandNode `json:"brand"`
	AvailabilityV2       struct {
		Status      string `json:"status"`
		Description string `json:"description"`
	} `json:"availabilityV2"`
	Prices         *pricesNode              `json:"prices"`
	Images         connection[imageNode]    `json:"images"`
	ProductOptions connection[optionNode]   `json:"productOptions"`
	Categories     connection[categoryNode] `json:"categories"`
}

func (p productNode) toProduct() commerce.Product {
	out := commerce.Product{
		EntityID:             p.EntityID,
		Name:                 p.Name,
		Path:                 p.Path,
		SKU:                  p.SKU,
		Brand:                p.Brand.toBrand(),
		Prices:               p.Prices.toPrices(),
		Condition:            p.Condition,
		PlainTextDescription: p.PlainTextDescription,
		Warranty:             p.Warranty,
		MinPurchaseQuantity:  p.MinPurchaseQuantity,
		MaxPurchaseQuantity:  p.MaxPurchaseQuantity,
		Availability: commerce.Availability{
			Status:      commerce.AvailabilityStatus(p.AvailabilityV2.Status),
			Description: p.AvailabilityV2.Description,
		},
	}
	if p.UPC != nil {
		out.UPC = *p.UPC
	}

	for _, im := range p.Images.nodes() {
		out.Images = append(out.Images, commerce.Image{URL: im.URL, AltText: im.AltText, IsDefault: im.IsDefault})
	}

	for _, o := range p.ProductOptions.nodes() {
		// checkbox and free-text options carry no values and are not selectable here
		vals := o.Values.nodes()
		if len(vals) == 0 {
			continue
		}
		opt := commerce.ProductOption{EntityID: o.EntityID, DisplayName: o.DisplayName, IsRequired: o.IsRequired}
		for _, v := range vals {
			opt.Values = append(opt.Values, commerce.OptionValue{EntityID: v.EntityID, Label: v.Label, IsDefault: v.IsDefault})
		}
		out.Options = append(out.Options, opt)
	}

	if cats := p.Categories.nodes(); len(cats) > 0 {
		crumbs := cats[0].Breadcrumbs.nodes()
		if len(crumbs) == 0 {
			crumbs = []breadcrumbNode{{Name: cats[0].Name, Path: cats[0].Path}}
		}
		for _, b := range crumbs {
			out.Breadcrumbs = append(out.Breadcrumbs, commerce.Breadcrumb{Name: b.Name, Path: b.Path})
		}
	}

	return out
}

type productCardNode struct {
	EntityID     int64       `json:"entityId"`
	Name         string      `json:"name"`
	Path         string      `json:"path"`
	Brand        *brandNode  `json:"brand"`
	DefaultImage *imageNode  `json:"defaultImage"`
	Prices       *pricesNode `json:"prices"`
}

func (p productCardNode) toCard() commerce.ProductCard {
	card := commerce.ProductCard{
		EntityID: p.EntityID,
		Name:     p.Name,
		Path:     p.Path,
		Brand:    p.Brand.toBrand(),
		Prices:   p.Prices.toPrices(),
	}
	if p.DefaultImage != nil && p.DefaultImage.URL != "" {
		card.Image = &commerce.Image{URL: p.DefaultImage.URL, AltText: p.DefaultImage.AltText, IsDefault: true}
	}
	return card
}

type reviewNode struct {
	EntityID int64 `json:"entityId"`
	Author   struct {
		Name string `json:"name"`
	} `json:"author"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Rating    int    `json:"rating"`
	CreatedAt struct {
		UTC time.Time `json:"utc"`
	} `json:"createdAt"`
}

func (r reviewNode) toReview() commerce.Review {
	return commerce.Review{
		EntityID:  r.EntityID,
		Author:    r.Author.Name,
		Title:     r.Title,
		Text:      r.Text,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt.UTC,
	}
}

type selectedOptionNode struct {
	EntityID      int64  `json:"entityId"`
	Name          string `json:"name"`
	Value         string `json:"value"`
	ValueEntityID int64  `json:"valueEntityId"`
}

type lineItemNode struct {
	EntityID        string               `json:"entityId"`
	ProductEntityID int64                `json:"productEntityId"`
	Name            string               `json:"name"`
	URL             string               `json:"url"`
	ImageURL        string               `json:"imageUrl"`
	Quantity        int                  `json:"quantity"`
	ListPrice       moneyNode            `json:"listPrice"`
	SelectedOptions []selectedOptionNode `json:"selectedOptions"`
}

type cartNode struct {
	EntityID  string    `json:"entityId"`
	Amount    moneyNode `json:"amount"`
	LineItems struct {
		PhysicalItems []lineItemNode `json:"physicalItems"`
		DigitalItems  []lineItemNode `json:"digitalItems"`
	} `json:"lineItems"`
}

func (c cartNode) toCart() commerce.Cart {
	out := commerce.Cart{EntityID: c.EntityID, Amount: c.Amount.toMoney()}
	items := append(append([]lineItemNode(nil), c.LineItems.PhysicalItems...), c.LineItems.DigitalItems...)
	for _, li := range items {
		item := commerce.LineItem{
			EntityID:        li.EntityID,
			ProductEntityID: li.ProductEntityID,
			Name:            li.Name,
			Path:            li.URL,
			ImageURL:        li.ImageURL,
			Quantity:        li.Quantity,
			ListPrice:       li.ListPrice.toMoney(),
		}
		for _, so := range li.SelectedOptions {
			item.SelectedOptions = append(item.SelectedOptions, commerce.SelectedOption{
				OptionEntityID: so.EntityID,
				ValueEntityID:  so.ValueEntityID,
				Name:           so.Name,
				Value:          so.Value,
			})
		}
		out.LineItems = append(out.LineItems, item)
	}
	return out
}

type lineItemInput struct {
	ProductEntityID int64 `json:"productEntityId"`
	Quantity        int   `json:"quantity"`
	SelectedOptions *struct {
		MultipleChoices []multipleChoiceInput `json:"multipleChoices"`
	} `json:"selectedOptions,omitempty"`
}

type multipleChoiceInput struct {
	OptionEntityID      int64 `json:"optionEntityId"`
	OptionValueEntityID int64 `json:"optionValueEntityId"`
}

func toLineItemInput(in commerce.CartLineItemInput) lineItemInput {
	li := lineItemInput{ProductEntityID: in.ProductEntityID, Quantity: in.Quantity}
	if len(in.SelectedOptions) > 0 {
		li.SelectedOptions = &struct {
			MultipleChoices []multipleChoiceInput `json:"multipleChoices"`
		}{}
		for _, s := range in.SelectedOptions {
			li.SelectedOptions.MultipleChoices = append(li.SelectedOptions.MultipleChoices, multipleChoiceInput{
				OptionEntityID:      s.OptionEntityID,
				OptionValueEntityID: s.ValueEntityID,
			})
		}
	}
	return li
}
