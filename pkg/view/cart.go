package view

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

type CartLine struct {
	ID        string
	Name      string
	Href      string
	ImageURL  string
	Options   string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type CartPage struct {
	Lines []CartLine
	Count int
	Total string
}

func (p CartPage) Empty() bool { return len(p.Lines) == 0 }

func NewCartPage(c commerce.Cart) CartPage {
	vm := CartPage{Count: c.Count(), Total: Money(c.Amount)}
	for _, li := range c.LineItems {
		href := li.Path
		if href == "" {
			href = ProductURL(li.ProductEntityID)
		}
		opts := make([]string, 0, len(li.SelectedOptions))
		for _, so := range li.SelectedOptions {
			opts = append(opts, so.Name+": "+so.Value)
		}
		line := commerce.Money{
			Value:        li.ListPrice.Value.Mul(decimal.NewFromInt(int64(li.Quantity))),
			CurrencyCode: li.ListPrice.CurrencyCode,
		}
		vm.Lines = append(vm.Lines, CartLine{
			ID:        li.EntityID,
			Name:      li.Name,
			Href:      href,
			ImageURL:  li.ImageURL,
			Options:   strings.Join(opts, ", "),
			Quantity:  li.Quantity,
			UnitPrice: Money(li.ListPrice),
			LineTotal: Money(line),
		})
	}
	return vm
}
