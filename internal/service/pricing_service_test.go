package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/royale-store/royale-api/internal/constants"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPricingTest(t *testing.T) (*PricingService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate pricing models failed: %v", err)
	}
	pricing := NewPricingService(
		repository.NewProductRepository(db),
		decimal.NewFromInt(40),
		decimal.NewFromInt(300),
	)
	return pricing, db
}

func createPricingProduct(t *testing.T, db *gorm.DB, slug string, categoryGST, productGST string) *models.Product {
	t.Helper()
	catGST, err := models.NewMoneyFromString(categoryGST)
	if err != nil {
		t.Fatalf("parse category gst failed: %v", err)
	}
	category := &models.Category{Slug: slug + "-category", Name: "Category", GSTPercentage: catGST}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	prodGST, err := models.NewMoneyFromString(productGST)
	if err != nil {
		t.Fatalf("parse product gst failed: %v", err)
	}
	product := &models.Product{
		CategoryID:    category.ID,
		Slug:          slug,
		Name:          "Product",
		Price:         models.NewMoneyFromInt(1000),
		GSTPercentage: prodGST,
		IsActive:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func cartLine(productID uint, unitPrice, discountPct string, qty int) models.CartItem {
	price, _ := models.NewMoneyFromString(unitPrice)
	disc, _ := models.NewMoneyFromString(discountPct)
	return models.CartItem{
		ProductID:          productID,
		ProductName:        "Product",
		UnitPrice:          price,
		DiscountPercentage: disc,
		Quantity:           qty,
	}
}

func assertAmount(t *testing.T, label string, got models.Money, want string) {
	t.Helper()
	if got.String() != want {
		t.Fatalf("%s = %s, want %s", label, got.String(), want)
	}
}

func TestQuoteDiscountAndGST(t *testing.T) {
	pricing, db := setupPricingTest(t)
	product := createPricingProduct(t, db, "quote-gst", "0", "5")

	// 1000 at 10% off = 900 subtotal, 5% GST = 45, free shipping above 300.
	breakdown, err := pricing.Quote([]models.CartItem{
		cartLine(product.ID, "1000", "10", 1),
	}, nil)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	assertAmount(t, "subtotal", breakdown.Subtotal, "900.00")
	assertAmount(t, "gst", breakdown.GSTAmount, "45.00")
	assertAmount(t, "shipping", breakdown.ShippingFee, "0.00")
	assertAmount(t, "total", breakdown.Total, "945.00")
}

func TestQuotePercentageCoupon(t *testing.T) {
	pricing, db := setupPricingTest(t)
	product := createPricingProduct(t, db, "quote-coupon", "0", "5")

	ten, _ := models.NewMoneyFromString("10")
	breakdown, err := pricing.Quote([]models.CartItem{
		cartLine(product.ID, "1000", "10", 1),
	}, &AppliedCoupon{
		ID:            1,
		Code:          "WELCOME10",
		DiscountType:  constants.CouponTypePercentage,
		DiscountValue: ten,
	})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	assertAmount(t, "coupon discount", breakdown.CouponDiscount, "90.00")
	assertAmount(t, "total", breakdown.Total, "855.00")
}

func TestQuoteFixedCouponCappedAtSubtotal(t *testing.T) {
	pricing, db := setupPricingTest(t)
	product := createPricingProduct(t, db, "quote-fixed-cap", "0", "0")

	value, _ := models.NewMoneyFromString("500")
	breakdown, err := pricing.Quote([]models.CartItem{
		cartLine(product.ID, "200", "0", 1),
	}, &AppliedCoupon{
		ID:            1,
		Code:          "FLAT500",
		DiscountType:  constants.CouponTypeFixed,
		DiscountValue: value,
	})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	assertAmount(t, "coupon discount", breakdown.CouponDiscount, "200.00")
	assertAmount(t, "shipping", breakdown.ShippingFee, "40.00")
	assertAmount(t, "total", breakdown.Total, "40.00")
}

func TestQuoteShippingThreshold(t *testing.T) {
	pricing, db := setupPricingTest(t)
	product := createPricingProduct(t, db, "quote-shipping", "0", "0")

	// Just below the threshold ships at the flat fee.
	breakdown, err := pricing.Quote([]models.CartItem{
		cartLine(product.ID, "299.99", "0", 1),
	}, nil)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	assertAmount(t, "shipping below threshold", breakdown.ShippingFee, "40.00")
	assertAmount(t, "total below threshold", breakdown.Total, "339.99")

	// Exactly at the threshold ships free.
	breakdown, err = pricing.Quote([]models.CartItem{
		cartLine(product.ID, "300", "0", 1),
	}, nil)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	assertAmount(t, "shipping at threshold", breakdown.ShippingFee, "0.00")
	assertAmount(t, "total at threshold", breakdown.Total, "300.00")
}

func TestQuoteEmptyCart(t *testing.T) {
	pricing, _ := setupPricingTest(t)

	breakdown, err := pricing.Quote(nil, nil)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	assertAmount(t, "subtotal", breakdown.Subtotal, "0.00")
	assertAmount(t, "coupon discount", breakdown.CouponDiscount, "0.00")
	assertAmount(t, "gst", breakdown.GSTAmount, "0.00")
	assertAmount(t, "shipping", breakdown.ShippingFee, "0.00")
	assertAmount(t, "total", breakdown.Total, "0.00")
}

func TestQuoteGSTRateFallsBackToCategory(t *testing.T) {
	pricing, db := setupPricingTest(t)
	// Product rate zero, category rate 18.
	product := createPricingProduct(t, db, "quote-category-gst", "18", "0")

	breakdown, err := pricing.Quote([]models.CartItem{
		cartLine(product.ID, "100", "0", 1),
	}, nil)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	assertAmount(t, "gst from category", breakdown.GSTAmount, "18.00")
}

func TestQuoteGSTProductRateOverridesCategory(t *testing.T) {
	pricing, db := setupPricingTest(t)
	product := createPricingProduct(t, db, "quote-product-gst", "18", "5")

	breakdown, err := pricing.Quote([]models.CartItem{
		cartLine(product.ID, "100", "0", 2),
	}, nil)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	assertAmount(t, "gst from product rate", breakdown.GSTAmount, "10.00")
}

func TestQuoteMultiLineQuantities(t *testing.T) {
	pricing, db := setupPricingTest(t)
	first := createPricingProduct(t, db, "quote-multi-a", "0", "0")
	second := createPricingProduct(t, db, "quote-multi-b", "0", "0")

	breakdown, err := pricing.Quote([]models.CartItem{
		cartLine(first.ID, "150", "0", 2),
		cartLine(second.ID, "49.50", "0", 1),
	}, nil)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	assertAmount(t, "subtotal", breakdown.Subtotal, "349.50")
	assertAmount(t, "shipping", breakdown.ShippingFee, "0.00")
}
