package commerce

import (
	"time"

	"github.com/shopspring/decimal"
)

type AvailabilityStatus string

const (
	Available   AvailabilityStatus = "Available"
	Unavailable AvailabilityStatus = "Unavailable"
	Preorder    AvailabilityStatus = "Preorder"
)

type Money struct {
	Value        decimal.Decimal
	CurrencyCode string
}

type Prices struct {
	Price       Money
	BasePrice   *Money
	SalePrice   *Money
	RetailPrice *Money
}

type Brand struct {
	Name string
}

type Availability struct {
	Status      AvailabilityStatus
	Description string
}

type Image struct {
	URL       string
	AltText   string
	IsDefault bool
}

type OptionValue struct {
	EntityID  int64
	Label     string
	IsDefault bool
}

type ProductOption struct {
	EntityID    int64
	DisplayName string
	IsRequired  bool
	Values      []OptionValue
}

type Breadcrumb struct {
	Name string
	Path string
}

// Product is a catalog item as returned by the commerce data source. Optional
// fields are pointers or zero values; the storefront only displays what is set.
type Product struct {
	EntityID             int64
	Name                 string
	Path                 string
	SKU                  string
	UPC                  string
	Brand                *Brand
	Prices               *Prices
	Availability         Availability
	Condition            string
	PlainTextDescription string
	Warranty             string
	MinPurchaseQuantity  *int
	MaxPurchaseQuantity  *int
	Images               []Image
	Options              []ProductOption
	Breadcrumbs          []Breadcrumb
}

// DefaultImage returns the image flagged as default, else the first one.
func (p Product) DefaultImage() (Image, bool) {
	for _, im := range p.Images {
		if im.IsDefault {
			return im, true
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0], true
	}
	return Image{}, false
}

// ProductCard is the reduced product shape used in listings.
type ProductCard struct {
	EntityID int64
	Name     string
	Path     string
	Brand    *Brand
	Image    *Image
	Prices   *Prices
}

type ReviewSummary struct {
	NumberOfReviews    int
	SummationOfRatings int
}

// AverageRating is zero when there are no reviews.
func (s ReviewSummary) AverageRating() float64 {
	if s.NumberOfReviews <= 0 {
		return 0
	}
	return float64(s.SummationOfRatings) / float64(s.NumberOfReviews)
}

type Review struct {
	EntityID  int64
	Author    string
	Title     string
	Text      string
	Rating    int
	CreatedAt time.Time
}

type SelectedOption struct {
	OptionEntityID int64
	ValueEntityID  int64
	Name           string
	Value          string
}

type LineItem struct {
	EntityID        string
	ProductEntityID int64
	Name            string
	Path            string
	ImageURL        string
	Quantity        int
	ListPrice       Money
	SelectedOptions []SelectedOption
}

type Cart struct {
	EntityID  string
	LineItems []LineItem
	Amount    Money
}

// Count is the total quantity across line items.
func (c Cart) Count() int {
	n := 0
	for _, li := range c.LineItems {
		if li.Quantity > 0 {
			n += li.Quantity
		}
	}
	return n
}

type CartLineItemInput struct {
	ProductEntityID int64
	Quantity        int
	SelectedOptions []OptionValueID
}
