package models

import (
	"time"

	"gorm.io/gorm"
)

// IndividualPhoneRestriction overrides the global order limits for one
// phone. When an active row exists, only the per-day counters below apply
// to that phone; global limits are skipped entirely.
type IndividualPhoneRestriction struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Phone            string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"` // +91 normalized
	CODDailyLimit    int            `gorm:"not null;default:0" json:"cod_daily_limit"`
	OnlineDailyLimit int            `gorm:"not null;default:0" json:"online_daily_limit"`
	IsActive         bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (IndividualPhoneRestriction) TableName() string {
	return "individual_phone_restrictions"
}

// IndividualPhoneOrderCount is the per-day counter for phones under an
// individual restriction, keyed by phone + payment method + calendar day.
type IndividualPhoneOrderCount struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Phone         string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_individual_count_key" json:"phone"`
	PaymentMethod string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_individual_count_key" json:"payment_method"`
	OrderDate     string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_individual_count_key" json:"order_date"` // YYYY-MM-DD
	OrderCount    int       `gorm:"not null;default:0" json:"order_count"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (IndividualPhoneOrderCount) TableName() string {
	return "individual_phone_order_counts"
}

// RestrictionConfig is the singleton global rate-limit configuration.
// Counters keep accruing while a family is disabled so enabling it later
// enforces against accurate history.
type RestrictionConfig struct {
	ID                        uint      `gorm:"primarykey" json:"id"`
	CODRestrictionsEnabled    bool      `gorm:"not null;default:false" json:"cod_restrictions_enabled"`
	OnlineRestrictionsEnabled bool      `gorm:"not null;default:false" json:"online_restrictions_enabled"`
	PhoneOrderLimit           int       `gorm:"not null;default:0" json:"phone_order_limit"`
	OnlinePhoneOrderLimit     int       `gorm:"not null;default:0" json:"online_phone_order_limit"`
	IPDailyOrderLimit         int       `gorm:"not null;default:0" json:"ip_daily_order_limit"`
	OnlineIPDailyOrderLimit   int       `gorm:"not null;default:0" json:"online_ip_daily_order_limit"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (RestrictionConfig) TableName() string {
	return "cod_restrictions"
}

// PhoneOrderCount is the lifetime COD order counter per phone.
type PhoneOrderCount struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Phone         string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	OrderCount    int       `gorm:"not null;default:0" json:"order_count"`
	LastOrderDate string    `gorm:"type:varchar(10)" json:"last_order_date"` // YYYY-MM-DD
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (PhoneOrderCount) TableName() string {
	return "phone_order_counts"
}

// OnlinePhoneOrderCount is the lifetime online order counter per phone.
type OnlinePhoneOrderCount struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Phone         string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	OrderCount    int       `gorm:"not null;default:0" json:"order_count"`
	LastOrderDate string    `gorm:"type:varchar(10)" json:"last_order_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (OnlinePhoneOrderCount) TableName() string {
	return "online_phone_order_counts"
}

// IPOrderCount is the per-day COD order counter per client IP.
type IPOrderCount struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	IPAddress  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_ip_count_key" json:"ip_address"`
	OrderDate  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_ip_count_key" json:"order_date"`
	OrderCount int       `gorm:"not null;default:0" json:"order_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (IPOrderCount) TableName() string {
	return "ip_order_counts"
}

// OnlineIPOrderCount is the per-day online order counter per client IP.
type OnlineIPOrderCount struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	IPAddress  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_online_ip_count_key" json:"ip_address"`
	OrderDate  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_online_ip_count_key" json:"order_date"`
	OrderCount int       `gorm:"not null;default:0" json:"order_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (OnlineIPOrderCount) TableName() string {
	return "online_ip_order_counts"
}
