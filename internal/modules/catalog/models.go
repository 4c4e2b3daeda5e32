package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StatusActive = "active"
	StatusDraft  = "draft"
)

type Category struct {
	ID       int64  `gorm:"primaryKey;autoIncrement:false"`
	ParentID *int64 `gorm:"index:ix_categories_parent_id"`
	Name     string `gorm:"size:255;not null"`
	Path     string `gorm:"size:255;not null"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"size:255;not null"`
	Path string `gorm:"size:255;not null;uniqueIndex:ux_products_path"`

	SKU       string `gorm:"size:64"`
	UPC       string `gorm:"size:32"`
	BrandName string `gorm:"size:128"`
	Condition string `gorm:"size:32"`

	Description string `gorm:"type:text"`
	Warranty    string `gorm:"type:text"`

	Price       decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	SalePrice   decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	RetailPrice decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	Currency    string              `gorm:"size:3;not null"`

	AvailabilityStatus      string `gorm:"size:16;not null"`
	AvailabilityDescription string `gorm:"size:255"`
	MinPurchaseQuantity     *int
	MaxPurchaseQuantity     *int

	Status     string `gorm:"size:16;not null;index:ix_products_status"`
	CategoryID *int64 `gorm:"index:ix_products_category_id"`

	Images   []Image   `gorm:"foreignKey:ProductID"`
	Options  []Option  `gorm:"foreignKey:ProductID"`
	Variants []Variant `gorm:"foreignKey:ProductID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Product) TableName() string { return "products" }

type Image struct {
	ID        int64  `gorm:"primaryKey"`
	ProductID int64  `gorm:"not null;index:ix_product_images_product_id"`
	URL       string `gorm:"size:1024;not null"`
	AltText   string `gorm:"size:255"`
	Position  int    `gorm:"not null"`
	IsDefault bool   `gorm:"not null"`
}

func (Image) TableName() string { return "product_images" }

type Option struct {
	ID          int64         `gorm:"primaryKey;autoIncrement:false"`
	ProductID   int64         `gorm:"not null;index:ix_product_options_product_id"`
	DisplayName string        `gorm:"size:128;not null"`
	IsRequired  bool          `gorm:"not null"`
	Position    int           `gorm:"not null"`
	Values      []OptionValue `gorm:"foreignKey:OptionID"`
}

func (Option) TableName() string { return "product_options" }

type OptionValue struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	OptionID  int64  `gorm:"not null;index:ix_product_option_values_option_id"`
	Label     string `gorm:"size:128;not null"`
	IsDefault bool   `gorm:"not null"`
	Position  int    `gorm:"not null"`
}

func (OptionValue) TableName() string { return "product_option_values" }

// Variant is one purchasable combination of option values. OptionsKey is
// commerce.SelectionsKey of Options and is what lookups match on.
type Variant struct {
	ID                 int64               `gorm:"primaryKey;autoIncrement:false"`
	ProductID          int64               `gorm:"not null;uniqueIndex:ux_product_variants_options,priority:1"`
	OptionsKey         string              `gorm:"size:255;not null;uniqueIndex:ux_product_variants_options,priority:2"`
	Options            datatypes.JSON      `gorm:"column:options_json"`
	SKU                string              `gorm:"size:64"`
	Price              decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	PurchasingDisabled bool                `gorm:"not null"`
}

func (Variant) TableName() string { return "product_variants" }

type RelatedLink struct {
	ProductID int64 `gorm:"primaryKey;autoIncrement:false"`
	RelatedID int64 `gorm:"primaryKey;autoIncrement:false"`
	Position  int   `gorm:"not null"`
}

func (RelatedLink) TableName() string { return "product_related" }

type Review struct {
	ID        int64  `gorm:"primaryKey"`
	ProductID int64  `gorm:"not null;index:ix_product_reviews_product_id"`
	Author    string `gorm:"size:128;not null"`
	Title     string `gorm:"size:255"`
	Text      string `gorm:"type:text"`
	Rating    int    `gorm:"not null"`
	CreatedAt time.Time
}

func (Review) TableName() string { return "product_reviews" }

// Models lists every table owned by the catalog driver, in creation order.
func Models() []any {
	return []any{
		&Category{}, &Product{}, &Image{}, &Option{}, &OptionValue{},
		&Variant{}, &RelatedLink{}, &Review{},
	}
}
