package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is a server-side cart line keyed by an opaque session token.
// Price fields are snapshots taken when the line is added; the checkout
// core reads them as-is.
type CartItem struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	SessionID          string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_session_product_variant" json:"session_id"`
	ProductID          uint           `gorm:"not null;uniqueIndex:idx_cart_session_product_variant" json:"product_id"`
	VariantID          string         `gorm:"type:varchar(64);not null;default:'';uniqueIndex:idx_cart_session_product_variant" json:"variant_id,omitempty"`
	ProductName        string         `gorm:"type:varchar(300);not null" json:"product_name"`
	UnitPrice          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	DiscountPercentage Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_percentage"` // 0-100
	Quantity           int            `gorm:"not null" json:"quantity"`
	VariantAttribute   string         `gorm:"type:varchar(100)" json:"variant_attribute,omitempty"`
	VariantValue       string         `gorm:"type:varchar(100)" json:"variant_value,omitempty"`
	CashOnDelivery     bool           `gorm:"not null;default:true" json:"cash_on_delivery"`
	ImageURL           string         `gorm:"type:varchar(500)" json:"image_url"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
