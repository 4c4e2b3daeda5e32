package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
	"github.com/bcdanielvega/seofficehours/internal/shared/slug"
)

// Migrate creates or updates the catalog tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}

// Fixture is the YAML shape accepted by Seed.
type Fixture struct {
	Categories []CategoryFixture `yaml:"categories"`
	Products   []ProductFixture  `yaml:"products"`
}

type CategoryFixture struct {
	ID       int64  `yaml:"id"`
	ParentID *int64 `yaml:"parent_id"`
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
}

type ProductFixture struct {
	ID          int64  `yaml:"id"`
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	SKU         string `yaml:"sku"`
	UPC         string `yaml:"upc"`
	Brand       string `yaml:"brand"`
	Condition   string `yaml:"condition"`
	Description string `yaml:"description"`
	Warranty    string `yaml:"warranty"`
	Status      string `yaml:"status"`

	Price       string `yaml:"price"`
	SalePrice   string `yaml:"sale_price"`
	RetailPrice string `yaml:"retail_price"`
	Currency    string `yaml:"currency"`

	Availability struct {
		Status      string `yaml:"status"`
		Description string `yaml:"description"`
	} `yaml:"availability"`
	MinPurchaseQuantity *int `yaml:"min_purchase_quantity"`
	MaxPurchaseQuantity *int `yaml:"max_purchase_quantity"`

	CategoryID *int64 `yaml:"category_id"`

	Images []struct {
		URL     string `yaml:"url"`
		AltText string `yaml:"alt"`
		Default bool   `yaml:"default"`
	} `yaml:"images"`

	Options []struct {
		ID       int64  `yaml:"id"`
		Name     string `yaml:"name"`
		Required bool   `yaml:"required"`
		Values   []struct {
			ID      int64  `yaml:"id"`
			Label   string `yaml:"label"`
			Default bool   `yaml:"default"`
		} `yaml:"values"`
	} `yaml:"options"`

	Variants []struct {
		ID                 int64           `yaml:"id"`
		SKU                string          `yaml:"sku"`
		Price              string          `yaml:"price"`
		PurchasingDisabled bool            `yaml:"purchasing_disabled"`
		Options            map[int64]int64 `yaml:"options"`
	} `yaml:"variants"`

	Related []int64 `yaml:"related"`

	Reviews []struct {
		Author    string    `yaml:"author"`
		Title     string    `yaml:"title"`
		Text      string    `yaml:"text"`
		Rating    int       `yaml:"rating"`
		CreatedAt time.Time `yaml:"created_at"`
	} `yaml:"reviews"`
}

func DecodeFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Fixture{}, fmt.Errorf("decode catalog fixture: %w", err)
	}
	return f, nil
}

type SeedResult struct {
	Categories int
	Products   int
}

// Seed upserts the fixture. Each product's images, options, variants,
// relations and reviews are replaced wholesale.
func Seed(ctx context.Context, db *gorm.DB, f Fixture) (SeedResult, error) {
	var res SeedResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cf := range f.Categories {
			c := Category{ID: cf.ID, ParentID: cf.ParentID, Name: cf.Name, Path: cf.Path}
			if c.Path == "" {
				c.Path = slug.Path(c.Name)
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&c).Error; err != nil {
				return fmt.Errorf("category %d: %w", cf.ID, err)
			}
			res.Categories++
		}

		for _, pf := range f.Products {
			if err := seedProduct(tx, pf); err != nil {
				return fmt.Errorf("product %d: %w", pf.ID, err)
			}
			res.Products++
		}
		return nil
	})
	return res, err
}

func seedProduct(tx *gorm.DB, pf ProductFixture) error {
	p, err := pf.toModel()
	if err != nil {
		return err
	}

	if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{UpdateAll: true}).Create(&p).Error; err != nil {
		return err
	}

	optionIDs := tx.Model(&Option{}).Select("id").Where("product_id = ?", p.ID)
	if err := tx.Where("option_id IN (?)", optionIDs).Delete(&OptionValue{}).Error; err != nil {
		return err
	}
	for _, m := range []any{&Image{}, &Option{}, &Variant{}, &RelatedLink{}, &Review{}} {
		if err := tx.Where("product_id = ?", p.ID).Delete(m).Error; err != nil {
			return err
		}
	}

	for i, im := range pf.Images {
		row := Image{ProductID: p.ID, URL: im.URL, AltText: im.AltText, Position: i, IsDefault: im.Default}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	for i, of := range pf.Options {
		opt := Option{ID: of.ID, ProductID: p.ID, DisplayName: of.Name, IsRequired: of.Required, Position: i}
		if err := tx.Omit(clause.Associations).Create(&opt).Error; err != nil {
			return err
		}
		for j, vf := range of.Values {
			v := OptionValue{ID: vf.ID, OptionID: of.ID, Label: vf.Label, IsDefault: vf.Default, Position: j}
			if err := tx.Create(&v).Error; err != nil {
				return err
			}
		}
	}

	for _, vf := range pf.Variants {
		sels := make([]commerce.OptionValueID, 0, len(vf.Options))
		for optID, valID := range vf.Options {
			sels = append(sels, commerce.OptionValueID{OptionEntityID: optID, ValueEntityID: valID})
		}
		sort.Slice(sels, func(i, j int) bool { return sels[i].OptionEntityID < sels[j].OptionEntityID })
		raw, err := json.Marshal(sels)
		if err != nil {
			return err
		}
		price, err := nullDecimal(vf.Price)
		if err != nil {
			return fmt.Errorf("variant %d price: %w", vf.ID, err)
		}
		v := Variant{
			ID:                 vf.ID,
			ProductID:          p.ID,
			OptionsKey:         commerce.SelectionsKey(sels),
			Options:            raw,
			SKU:                vf.SKU,
			Price:              price,
			PurchasingDisabled: vf.PurchasingDisabled,
		}
		if err := tx.Create(&v).Error; err != nil {
			return err
		}
	}

	for i, relID := range pf.Related {
		link := RelatedLink{ProductID: p.ID, RelatedID: relID, Position: i}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}

	for _, rf := range pf.Reviews {
		rv := Review{ProductID: p.ID, Author: rf.Author, Title: rf.Title, Text: rf.Text, Rating: rf.Rating, CreatedAt: rf.CreatedAt}
		if rv.CreatedAt.IsZero() {
			rv.CreatedAt = time.Now().UTC()
		}
		if err := tx.Create(&rv).Error; err != nil {
			return err
		}
	}

	return nil
}

func (pf ProductFixture) toModel() (Product, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(pf.Price))
	if err != nil {
		return Product{}, fmt.Errorf("price %q: %w", pf.Price, err)
	}
	sale, err := nullDecimal(pf.SalePrice)
	if err != nil {
		return Product{}, fmt.Errorf("sale_price: %w", err)
	}
	retail, err := nullDecimal(pf.RetailPrice)
	if err != nil {
		return Product{}, fmt.Errorf("retail_price: %w", err)
	}

	p := Product{
		ID:                      pf.ID,
		Name:                    pf.Name,
		Path:                    pf.Path,
		SKU:                     pf.SKU,
		UPC:                     pf.UPC,
		BrandName:               pf.Brand,
		Condition:               pf.Condition,
		Description:             strings.TrimSpace(pf.Description),
		Warranty:                strings.TrimSpace(pf.Warranty),
		Price:                   price,
		SalePrice:               sale,
		RetailPrice:             retail,
		Currency:                strings.ToUpper(pf.Currency),
		AvailabilityStatus:      pf.Availability.Status,
		AvailabilityDescription: pf.Availability.Description,
		MinPurchaseQuantity:     pf.MinPurchaseQuantity,
		MaxPurchaseQuantity:     pf.MaxPurchaseQuantity,
		Status:                  pf.Status,
		CategoryID:              pf.CategoryID,
	}
	if p.Path == "" {
		p.Path = slug.Path(p.Name)
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.AvailabilityStatus == "" {
		p.AvailabilityStatus = string(commerce.Available)
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	return p, nil
}

func nullDecimal(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}
