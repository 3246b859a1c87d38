package models

import (
	"time"

	"gorm.io/gorm"
)

// BannedUser blocks checkout for a phone and/or email. Phone may be stored
// with or without the +91 prefix; lookups match both forms.
type BannedUser struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Phone     string         `gorm:"type:varchar(20);index" json:"phone,omitempty"`
	Email     string         `gorm:"type:varchar(200);index" json:"email,omitempty"` // stored lowercase
	Reason    string         `gorm:"type:varchar(500)" json:"reason,omitempty"`
	IsActive  bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (BannedUser) TableName() string {
	return "banned_users"
}
