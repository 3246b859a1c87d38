package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a storefront product. GSTPercentage of 0 means the category
// rate applies.
type Product struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	CategoryID         uint           `gorm:"not null;index" json:"category_id"`
	Slug               string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name               string         `gorm:"type:varchar(300);not null" json:"name"`
	Description        string         `gorm:"type:text" json:"description"`
	Price              Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	DiscountPercentage Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_percentage"` // 0-100
	GSTPercentage      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"gst_percentage"`
	Images             StringArray    `gorm:"type:json" json:"images"`
	CashOnDelivery     bool           `gorm:"not null;default:true" json:"cash_on_delivery"`
	Stock              int            `gorm:"not null;default:0" json:"stock"`
	IsActive           bool           `gorm:"default:true;index" json:"is_active"`
	SortOrder          int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
