package repository

import "time"

// ProductListFilter filters product listings.
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// BannerListFilter filters banner listings.
type BannerListFilter struct {
	Page      int
	PageSize  int
	IsActive  *bool
	OnlyValid bool // within start/end window
}

// OrderListFilter filters order listings.
type OrderListFilter struct {
	Page          int
	PageSize      int
	Status        string
	OrderNo       string
	Phone         string
	PaymentMethod string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// CouponListFilter filters coupon listings.
type CouponListFilter struct {
	Page     int
	PageSize int
	Code     string
	IsActive *bool
}

// BannedUserListFilter filters ban list entries.
type BannedUserListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// RestrictionListFilter filters individual phone restrictions.
type RestrictionListFilter struct {
	Page     int
	PageSize int
	Phone    string
	IsActive *bool
}
