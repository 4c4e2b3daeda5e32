package view

import (
	"net/url"
	"strconv"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

type Breadcrumb struct {
	Name string
	Href string
}

type GalleryImage struct {
	URL string
	Alt string
}

type VariantValue struct {
	Label    string
	Href     string
	Selected bool
}

type VariantOption struct {
	Name   string
	Values []VariantValue
}

// HiddenField is an input the add-to-cart form posts unchanged.
type HiddenField struct {
	Name  string
	Value string
}

type DetailRow struct {
	Label string
	Value string
}

type ProductPage struct {
	ID          int64
	URL         string
	Name        string
	Brand       string
	Price       string
	BasePrice   string
	Breadcrumbs []Breadcrumb
	Images      []GalleryImage
	Options     []VariantOption
	Hidden      []HiddenField

	QuantityMin       int
	QuantityMax       int
	AddToCartDisabled bool

	Details     []DetailRow
	Description string
	Warranty    string

	RelatedURL       string
	ReviewSummaryURL string
	ReviewsURL       string
	ReviewSectionID  string
}

const ReviewSectionID = "write-a-review"

// ProductURL is the page address of a product id.
func ProductURL(id int64) string {
	return "/product/" + strconv.FormatInt(id, 10)
}

// NewProductPage maps a product and the shopper's selections to the page
// view model.
func NewProductPage(p commerce.Product, sels []commerce.OptionValueID) ProductPage {
	base := ProductURL(p.EntityID)
	query := selectionQuery(sels).Encode()
	withQuery := func(path string) string {
		if query == "" {
			return path
		}
		return path + "?" + query
	}

	vm := ProductPage{
		ID:               p.EntityID,
		URL:              withQuery(base),
		Name:             p.Name,
		Description:      p.PlainTextDescription,
		Warranty:         p.Warranty,
		QuantityMin:      1,
		RelatedURL:       withQuery(base + "/related"),
		ReviewSummaryURL: base + "/review-summary",
		ReviewsURL:       base + "/reviews",
		ReviewSectionID:  ReviewSectionID,

		AddToCartDisabled: p.Availability.Status == commerce.Unavailable,
	}
	if p.Brand != nil {
		vm.Brand = p.Brand.Name
	}
	if p.Prices != nil {
		vm.Price = Money(p.Prices.Price)
		if bp := p.Prices.BasePrice; bp != nil && !bp.Value.Equal(p.Prices.Price.Value) {
			vm.BasePrice = Money(*bp)
		}
	}
	for _, b := range p.Breadcrumbs {
		vm.Breadcrumbs = append(vm.Breadcrumbs, Breadcrumb{Name: b.Name, Href: b.Path})
	}
	vm.Images = galleryImages(p)

	for _, opt := range p.Options {
		selected, ok := commerce.SelectedValue(sels, opt.EntityID)
		if !ok {
			selected, ok = defaultValue(opt)
		}
		vo := VariantOption{Name: opt.DisplayName}
		for _, v := range opt.Values {
			vo.Values = append(vo.Values, VariantValue{
				Label:    v.Label,
				Href:     base + "?" + replaceSelection(sels, opt.EntityID, v.EntityID).Encode(),
				Selected: ok && v.EntityID == selected,
			})
		}
		vm.Options = append(vm.Options, vo)
		if ok {
			vm.Hidden = append(vm.Hidden, HiddenField{
				Name:  "option[" + strconv.FormatInt(opt.EntityID, 10) + "]",
				Value: strconv.FormatInt(selected, 10),
			})
		}
	}

	if n := p.MinPurchaseQuantity; n != nil && *n > 0 {
		vm.QuantityMin = *n
	}
	if n := p.MaxPurchaseQuantity; n != nil && *n > 0 {
		vm.QuantityMax = *n
	}
	vm.Details = details(p)
	return vm
}

// galleryImages puts the default image first and keeps the rest in order.
func galleryImages(p commerce.Product) []GalleryImage {
	def, ok := p.DefaultImage()
	if !ok {
		return nil
	}
	out := []GalleryImage{{URL: def.URL, Alt: def.AltText}}
	skipped := false
	for _, im := range p.Images {
		if !skipped && im == def {
			skipped = true
			continue
		}
		out = append(out, GalleryImage{URL: im.URL, Alt: im.AltText})
	}
	return out
}

func details(p commerce.Product) []DetailRow {
	var rows []DetailRow
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, DetailRow{Label: label, Value: value})
		}
	}
	add("SKU", p.SKU)
	add("UPC", p.UPC)
	if n := p.MinPurchaseQuantity; n != nil && *n > 0 {
		add("Minimum purchase", strconv.Itoa(*n))
	}
	if n := p.MaxPurchaseQuantity; n != nil && *n > 0 {
		add("Maximum purchase", strconv.Itoa(*n))
	}
	add("Availability", p.Availability.Description)
	add("Condition", p.Condition)
	return rows
}

func defaultValue(opt commerce.ProductOption) (int64, bool) {
	for _, v := range opt.Values {
		if v.IsDefault {
			return v.EntityID, true
		}
	}
	return 0, false
}

func selectionQuery(sels []commerce.OptionValueID) url.Values {
	q := url.Values{}
	for _, s := range sels {
		q.Set(strconv.FormatInt(s.OptionEntityID, 10), strconv.FormatInt(s.ValueEntityID, 10))
	}
	return q
}

// replaceSelection keeps every other selection and sets optionID to valueID.
func replaceSelection(sels []commerce.OptionValueID, optionID, valueID int64) url.Values {
	q := selectionQuery(sels)
	q.Set(strconv.FormatInt(optionID, 10), strconv.FormatInt(valueID, 10))
	return q
}

// ProductURLWith is ProductURL carrying option selections in the query.
func ProductURLWith(id int64, sels []commerce.OptionValueID) string {
	q := selectionQuery(sels).Encode()
	if q == "" {
		return ProductURL(id)
	}
	return ProductURL(id) + "?" + q
}
