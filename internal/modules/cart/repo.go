package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

var errCartNotFound = errors.New("cart not found")

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Cart{}, &CartItem{})
}

// Transaction runs fn against a Repo bound to a single database transaction.
func (r *Repo) Transaction(ctx context.Context, fn func(tx *Repo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repo{db: tx})
	})
}

func (r *Repo) CreateCart(ctx context.Context) (Cart, error) {
	c := Cart{ID: uuid.NewString()}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (r *Repo) GetCart(ctx context.Context, cartID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&c, "id = ?", cartID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Cart{}, errCartNotFound
	}
	return c, err
}

// AddItem inserts the line or, when the cart already holds the same product
// with the same options, adds qty to it. The line never holds more than limit
// units.
func (r *Repo) AddItem(ctx context.Context, cartID string, productID int64, sels []commerce.OptionValueID, qty, limit int) error {
	if qty > limit {
		qty = limit
	}
	raw, err := json.Marshal(sels)
	if err != nil {
		return err
	}
	now := time.Now()
	item := CartItem{
		ID:         uuid.NewString(),
		CartID:     cartID,
		ProductID:  productID,
		OptionsKey: commerce.SelectionsKey(sels),
		Options:    raw,
		Quantity:   qty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}, {Name: "options_key"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("CASE WHEN quantity + ? > ? THEN ? ELSE quantity + ? END", qty, limit, limit, qty),
				"updated_at": now,
			}),
		}).Create(&item).Error
		if err != nil {
			return err
		}
		return tx.Model(&Cart{}).Where("id = ?", cartID).Update("updated_at", now).Error
	})
}

func (r *Repo) RemoveItem(ctx context.Context, cartID, itemID string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Delete(&CartItem{}).Error
}

func (r *Repo) DeleteCart(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", cartID).Delete(&Cart{}).Error
	})
}
