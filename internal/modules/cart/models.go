package cart

import (
	"time"

	"gorm.io/datatypes"
)

type Cart struct {
	ID        string     `gorm:"primaryKey;type:char(36)"`
	Items     []CartItem `gorm:"foreignKey:CartID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cart) TableName() string { return "carts" }

// CartItem is one product/options combination in a cart. Adding the same
// combination again bumps Quantity instead of inserting a row.
type CartItem struct {
	ID         string         `gorm:"primaryKey;type:char(36)"`
	CartID     string         `gorm:"type:char(36);not null;uniqueIndex:ux_cart_items_line,priority:1"`
	ProductID  int64          `gorm:"not null;uniqueIndex:ux_cart_items_line,priority:2"`
	OptionsKey string         `gorm:"size:255;not null;uniqueIndex:ux_cart_items_line,priority:3"`
	Options    datatypes.JSON `gorm:"column:options_json"`
	Quantity   int            `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CartItem) TableName() string { return "cart_items" }
