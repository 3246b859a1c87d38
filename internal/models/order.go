package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a placed order. OrderNo is the customer-facing identifier
// (prefix + random alphanumerics) and carries a uniqueness constraint so
// a generation collision surfaces as a duplicate-key error.
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`
	CustomerName   string         `gorm:"type:varchar(200);not null" json:"customer_name"`
	Phone          string         `gorm:"type:varchar(20);not null;index" json:"phone"` // +91 normalized
	Email          string         `gorm:"type:varchar(200)" json:"email,omitempty"`
	Address        string         `gorm:"type:text;not null" json:"address"`
	State          string         `gorm:"type:varchar(100);not null" json:"state"`
	Pincode        string         `gorm:"type:varchar(10);not null" json:"pincode"`
	Landmark1      string         `gorm:"type:varchar(300)" json:"landmark1,omitempty"`
	Landmark2      string         `gorm:"type:varchar(300)" json:"landmark2,omitempty"`
	Landmark3      string         `gorm:"type:varchar(300)" json:"landmark3,omitempty"`
	PaymentMethod  string         `gorm:"type:varchar(20);not null;index" json:"payment_method"` // online / cod
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`
	CouponDiscount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"coupon_discount"`
	GSTAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"gst_amount"`
	ShippingFee    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`
	Total          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
	CouponID       *uint          `gorm:"index" json:"coupon_id,omitempty"`
	ClientIP       string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`
	Status         string         `gorm:"index;not null" json:"status"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
