package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is a discount code. Codes are stored uppercase and looked up
// case-normalized. UsedCount only advances on a successfully placed order.
type Coupon struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`
	DiscountType   string         `gorm:"type:varchar(20);not null" json:"discount_type"` // percentage / fixed
	DiscountValue  Money          `gorm:"type:decimal(20,2);not null" json:"discount_value"`
	MinOrderAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_amount"`
	MaxUses        int            `gorm:"not null;default:0" json:"max_uses"` // 0 means unlimited
	UsedCount      int            `gorm:"not null;default:0" json:"used_count"`
	ExpiresAt      *time.Time     `gorm:"index" json:"expires_at"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Coupon) TableName() string {
	return "coupons"
}
