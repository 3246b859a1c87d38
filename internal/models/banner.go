package models

import (
	"time"

	"gorm.io/gorm"
)

// Banner is a homepage carousel entry.
type Banner struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(200)" json:"title"`
	Subtitle    string         `gorm:"type:varchar(300)" json:"subtitle"`
	Image       string         `gorm:"type:varchar(500);not null" json:"image"`
	MobileImage string         `gorm:"type:varchar(500)" json:"mobile_image"`
	LinkURL     string         `gorm:"type:varchar(1000)" json:"link_url"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	StartAt     *time.Time     `gorm:"index" json:"start_at"`
	EndAt       *time.Time     `gorm:"index" json:"end_at"`
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Banner) TableName() string {
	return "banners"
}
