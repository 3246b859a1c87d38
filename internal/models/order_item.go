package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is one order line. UnitPrice is the discounted per-unit price
// at placement time.
type OrderItem struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	OrderID          uint           `gorm:"index;not null" json:"order_id"`
	ProductID        uint           `gorm:"index;not null" json:"product_id"`
	ProductName      string         `gorm:"type:varchar(300);not null" json:"product_name"`
	UnitPrice        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity         int            `gorm:"not null" json:"quantity"`
	VariantID        string         `gorm:"type:varchar(64)" json:"variant_id,omitempty"`
	VariantAttribute string         `gorm:"type:varchar(100)" json:"variant_attribute,omitempty"`
	VariantValue     string         `gorm:"type:varchar(100)" json:"variant_value,omitempty"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
