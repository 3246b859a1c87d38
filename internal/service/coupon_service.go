package service

import (
	"strings"
	"time"

	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService resolves coupon codes at checkout and backs the admin
// coupon CRUD. Applying a coupon never touches used_count; usage is
// recorded once, when the order actually lands.
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService creates a coupon service.
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// Apply resolves a user-entered code against the current subtotal. The
// code is case-insensitive; lookups run on the uppercased form. Checks
// run in a fixed order so each rejection names exactly one reason.
func (s *CouponService) Apply(code string, subtotal models.Money) (*AppliedCoupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrCouponCodeRequired
	}

	coupon, err := s.couponRepo.GetByCode(normalized)
	if err != nil {
		return nil, err
	}
	if coupon == nil || !coupon.IsActive {
		return nil, ErrCouponNotFound
	}
	if coupon.ExpiresAt != nil && time.Now().After(*coupon.ExpiresAt) {
		return nil, ErrCouponExpired
	}
	if coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses {
		return nil, ErrCouponUsageExceeded
	}
	if coupon.MinOrderAmount.Decimal.GreaterThan(decimal.Zero) &&
		subtotal.Decimal.LessThan(coupon.MinOrderAmount.Decimal) {
		return nil, ErrCouponMinOrder
	}

	return &AppliedCoupon{
		ID:            coupon.ID,
		Code:          coupon.Code,
		DiscountType:  coupon.DiscountType,
		DiscountValue: coupon.DiscountValue,
	}, nil
}

// GetByID fetches a coupon for the admin detail view.
func (s *CouponService) GetByID(id uint) (*models.Coupon, error) {
	return s.couponRepo.GetByID(id)
}

// List returns coupons for the admin list view.
func (s *CouponService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// Create stores a new coupon with an uppercased code.
func (s *CouponService) Create(coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	return s.couponRepo.Create(coupon)
}

// Update saves coupon changes, keeping the code uppercased.
func (s *CouponService) Update(coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	return s.couponRepo.Update(coupon)
}

// Delete removes a coupon.
func (s *CouponService) Delete(id uint) error {
	return s.couponRepo.Delete(id)
}
