package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

func (p Product) money(v decimal.Decimal) commerce.Money {
	return commerce.Money{Value: v, CurrencyCode: p.Currency}
}

func (p Product) prices() *commerce.Prices {
	pr := &commerce.Prices{
		Price:     p.money(p.Price),
		BasePrice: ptr(p.money(p.Price)),
	}
	if p.SalePrice.Valid {
		sale := p.money(p.SalePrice.Decimal)
		pr.SalePrice = &sale
		pr.Price = sale
	}
	if p.RetailPrice.Valid {
		pr.RetailPrice = ptr(p.money(p.RetailPrice.Decimal))
	}
	return pr
}

func (p Product) toCommerce() commerce.Product {
	out := commerce.Product{
		EntityID:             p.ID,
		Name:                 p.Name,
		Path:                 p.Path,
		SKU:                  p.SKU,
		UPC:                  p.UPC,
		Prices:               p.prices(),
		Condition:            p.Condition,
		PlainTextDescription: p.Description,
		Warranty:             p.Warranty,
		MinPurchaseQuantity:  p.MinPurchaseQuantity,
		MaxPurchaseQuantity:  p.MaxPurchaseQuantity,
		Availability: commerce.Availability{
			Status:      commerce.AvailabilityStatus(p.AvailabilityStatus),
			Description: p.AvailabilityDescription,
		},
	}
	if p.BrandName != "" {
		out.Brand = &commerce.Brand{Name: p.BrandName}
	}

	for _, im := range p.Images {
		out.Images = append(out.Images, commerce.Image{URL: im.URL, AltText: im.AltText, IsDefault: im.IsDefault})
	}
	for _, o := range p.Options {
		if len(o.Values) == 0 {
			continue
		}
		opt := commerce.ProductOption{EntityID: o.ID, DisplayName: o.DisplayName, IsRequired: o.IsRequired}
		for _, v := range o.Values {
			opt.Values = append(opt.Values, commerce.OptionValue{EntityID: v.ID, Label: v.Label, IsDefault: v.IsDefault})
		}
		out.Options = append(out.Options, opt)
	}
	return out
}

func (p Product) toCard() commerce.ProductCard {
	card := commerce.ProductCard{
		EntityID: p.ID,
		Name:     p.Name,
		Path:     p.Path,
		Prices:   p.prices(),
	}
	if p.BrandName != "" {
		card.Brand = &commerce.Brand{Name: p.BrandName}
	}
	if im, ok := p.toCommerce().DefaultImage(); ok {
		card.Image = &im
	}
	return card
}

// applyVariant overlays the SKU, price and purchasability of the variant
// matching the shopper's selections.
func applyVariant(p *commerce.Product, v Variant) {
	if v.SKU != "" {
		p.SKU = v.SKU
	}
	if v.Price.Valid && p.Prices != nil {
		price := commerce.Money{Value: v.Price.Decimal, CurrencyCode: p.Prices.Price.CurrencyCode}
		p.Prices.Price = price
		p.Prices.SalePrice = nil
		p.Prices.BasePrice = &price
	}
	if v.PurchasingDisabled {
		p.Availability.Status = commerce.Unavailable
	}
}

func ptr[T any](v T) *T { return &v }
