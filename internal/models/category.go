package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is a product category. GSTPercentage is the fallback tax rate
// for products that do not declare their own.
type Category struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name          string         `gorm:"type:varchar(200);not null" json:"name"`
	Icon          string         `gorm:"type:varchar(500)" json:"icon"`
	GSTPercentage Money          `gorm:"type:decimal(20,2);not null;default:0" json:"gst_percentage"`
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categories"
}
