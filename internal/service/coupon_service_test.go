package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/royale-store/royale-api/internal/constants"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCouponTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("migrate coupon model failed: %v", err)
	}
	return NewCouponService(repository.NewCouponRepository(db)), db
}

func createCoupon(t *testing.T, db *gorm.DB, coupon *models.Coupon) *models.Coupon {
	t.Helper()
	active := coupon.IsActive
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	// GORM omits zero-value fields on create, so the default:true column
	// tag would silently override IsActive: false.
	if !active {
		if err := db.Model(coupon).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate coupon failed: %v", err)
		}
	}
	return coupon
}

func TestApplyCouponCaseInsensitive(t *testing.T) {
	coupons, db := setupCouponTest(t)
	value, _ := models.NewMoneyFromString("10")
	createCoupon(t, db, &models.Coupon{
		Code:          "WELCOME10",
		DiscountType:  constants.CouponTypePercentage,
		DiscountValue: value,
		IsActive:      true,
	})

	applied, err := coupons.Apply(" welcome10 ", models.NewMoneyFromInt(500))
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if applied.Code != "WELCOME10" {
		t.Fatalf("applied code = %q, want WELCOME10", applied.Code)
	}
	if applied.DiscountType != constants.CouponTypePercentage {
		t.Fatalf("applied type = %q", applied.DiscountType)
	}
}

func TestApplyCouponNotFound(t *testing.T) {
	coupons, db := setupCouponTest(t)
	value, _ := models.NewMoneyFromString("10")
	createCoupon(t, db, &models.Coupon{
		Code:          "DISABLED",
		DiscountType:  constants.CouponTypePercentage,
		DiscountValue: value,
		IsActive:      false,
	})

	if _, err := coupons.Apply("MISSING", models.NewMoneyFromInt(500)); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("unknown code: got %v, want %v", err, ErrCouponNotFound)
	}
	// An inactive coupon is indistinguishable from a missing one.
	if _, err := coupons.Apply("DISABLED", models.NewMoneyFromInt(500)); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("inactive code: got %v, want %v", err, ErrCouponNotFound)
	}
}

func TestApplyCouponExpired(t *testing.T) {
	coupons, db := setupCouponTest(t)
	value, _ := models.NewMoneyFromString("10")
	expired := time.Now().Add(-time.Hour)
	createCoupon(t, db, &models.Coupon{
		Code:          "OLD10",
		DiscountType:  constants.CouponTypePercentage,
		DiscountValue: value,
		ExpiresAt:     &expired,
		// Expiry is checked before usage, so an exhausted expired coupon
		// still reports expired.
		MaxUses:   1,
		UsedCount: 1,
		IsActive:  true,
	})

	if _, err := coupons.Apply("OLD10", models.NewMoneyFromInt(500)); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expired code: got %v, want %v", err, ErrCouponExpired)
	}
}

func TestApplyCouponUsageExceeded(t *testing.T) {
	coupons, db := setupCouponTest(t)
	value, _ := models.NewMoneyFromString("50")
	createCoupon(t, db, &models.Coupon{
		Code:          "FLAT50",
		DiscountType:  constants.CouponTypeFixed,
		DiscountValue: value,
		MaxUses:       2,
		UsedCount:     2,
		IsActive:      true,
	})

	if _, err := coupons.Apply("FLAT50", models.NewMoneyFromInt(500)); !errors.Is(err, ErrCouponUsageExceeded) {
		t.Fatalf("exhausted code: got %v, want %v", err, ErrCouponUsageExceeded)
	}
}

func TestApplyCouponBelowMinimumOrder(t *testing.T) {
	coupons, db := setupCouponTest(t)
	value, _ := models.NewMoneyFromString("50")
	minOrder, _ := models.NewMoneyFromString("500")
	createCoupon(t, db, &models.Coupon{
		Code:           "BIG50",
		DiscountType:   constants.CouponTypeFixed,
		DiscountValue:  value,
		MinOrderAmount: minOrder,
		IsActive:       true,
	})

	if _, err := coupons.Apply("BIG50", models.NewMoneyFromInt(499)); !errors.Is(err, ErrCouponMinOrder) {
		t.Fatalf("below minimum: got %v, want %v", err, ErrCouponMinOrder)
	}
	if _, err := coupons.Apply("BIG50", models.NewMoneyFromInt(500)); err != nil {
		t.Fatalf("at minimum: got %v, want nil", err)
	}
}

func TestApplyCouponDoesNotTouchUsedCount(t *testing.T) {
	coupons, db := setupCouponTest(t)
	value, _ := models.NewMoneyFromString("10")
	coupon := createCoupon(t, db, &models.Coupon{
		Code:          "WELCOME10",
		DiscountType:  constants.CouponTypePercentage,
		DiscountValue: value,
		MaxUses:       10,
		IsActive:      true,
	})

	for i := 0; i < 3; i++ {
		if _, err := coupons.Apply("WELCOME10", models.NewMoneyFromInt(500)); err != nil {
			t.Fatalf("apply %d failed: %v", i, err)
		}
	}

	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("used_count = %d after apply, want 0", reloaded.UsedCount)
	}
}

func TestApplyCouponEmptyCode(t *testing.T) {
	coupons, _ := setupCouponTest(t)
	if _, err := coupons.Apply("  ", models.NewMoneyFromInt(500)); !errors.Is(err, ErrCouponCodeRequired) {
		t.Fatalf("blank code: got %v, want %v", err, ErrCouponCodeRequired)
	}
}
