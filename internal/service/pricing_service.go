package service

import (
	"github.com/royale-store/royale-api/internal/constants"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"

	"github.com/shopspring/decimal"
)

// PricingService computes the order total from a cart snapshot and an
// optional applied coupon. All intermediate math stays full precision;
// amounts round to 2 decimals only at the Breakdown boundary.
type PricingService struct {
	productRepo           repository.ProductRepository
	shippingFee           decimal.Decimal
	freeShippingThreshold decimal.Decimal
}

// NewPricingService creates a pricing service. shippingFee applies below
// the threshold; a subtotal at or above the threshold ships free.
func NewPricingService(productRepo repository.ProductRepository, shippingFee, freeShippingThreshold decimal.Decimal) *PricingService {
	return &PricingService{
		productRepo:           productRepo,
		shippingFee:           shippingFee,
		freeShippingThreshold: freeShippingThreshold,
	}
}

// AppliedCoupon is the resolved discount descriptor attached to a quote.
type AppliedCoupon struct {
	ID            uint         `json:"id"`
	Code          string       `json:"code"`
	DiscountType  string       `json:"discount_type"`
	DiscountValue models.Money `json:"discount_value"`
}

// PriceBreakdown is the quoted cost of a cart.
type PriceBreakdown struct {
	Subtotal       models.Money `json:"subtotal"`
	CouponDiscount models.Money `json:"coupon_discount"`
	GSTAmount      models.Money `json:"gst_amount"`
	ShippingFee    models.Money `json:"shipping_fee"`
	Total          models.Money `json:"total"`
}

// Quote prices the cart. The per-item GST rate comes from the product
// when set above zero, else from its category, else zero. Shipping is
// charged only below the free threshold; an empty cart quotes all zeros.
func (s *PricingService) Quote(items []models.CartItem, coupon *AppliedCoupon) (PriceBreakdown, error) {
	if len(items) == 0 {
		return PriceBreakdown{}, nil
	}

	rates, err := s.resolveGSTRates(items)
	if err != nil {
		return PriceBreakdown{}, err
	}

	hundred := decimal.NewFromInt(100)
	subtotal := decimal.Zero
	gst := decimal.Zero
	for _, item := range items {
		discounted := item.UnitPrice.Decimal.
			Mul(hundred.Sub(item.DiscountPercentage.Decimal)).
			Div(hundred)
		lineSubtotal := discounted.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineSubtotal)
		gst = gst.Add(lineSubtotal.Mul(rates[item.ProductID]).Div(hundred))
	}

	couponDiscount := decimal.Zero
	if coupon != nil {
		couponDiscount = calculateCouponDiscount(coupon.DiscountType, coupon.DiscountValue.Decimal, subtotal)
	}

	shipping := decimal.Zero
	if subtotal.LessThan(s.freeShippingThreshold) {
		shipping = s.shippingFee
	}

	total := subtotal.Sub(couponDiscount).Add(gst).Add(shipping)

	return PriceBreakdown{
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		CouponDiscount: models.NewMoneyFromDecimal(couponDiscount),
		GSTAmount:      models.NewMoneyFromDecimal(gst),
		ShippingFee:    models.NewMoneyFromDecimal(shipping),
		Total:          models.NewMoneyFromDecimal(total),
	}, nil
}

// DiscountedUnitPrice returns the per-unit price after the item discount,
// as persisted on order lines.
func DiscountedUnitPrice(item models.CartItem) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return item.UnitPrice.Decimal.
		Mul(hundred.Sub(item.DiscountPercentage.Decimal)).
		Div(hundred)
}

// calculateCouponDiscount applies the coupon to a subtotal. A fixed
// coupon never discounts more than the subtotal itself.
func calculateCouponDiscount(discountType string, value, subtotal decimal.Decimal) decimal.Decimal {
	switch discountType {
	case constants.CouponTypePercentage:
		return subtotal.Mul(value).Div(decimal.NewFromInt(100))
	case constants.CouponTypeFixed:
		if value.GreaterThan(subtotal) {
			return subtotal
		}
		return value
	default:
		return decimal.Zero
	}
}

// resolveGSTRates batch-loads the effective tax rate per product id.
func (s *PricingService) resolveGSTRates(items []models.CartItem) (map[uint]decimal.Decimal, error) {
	ids := make([]uint, 0, len(items))
	seen := make(map[uint]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}

	rates := make(map[uint]decimal.Decimal, len(ids))
	for _, product := range products {
		rate := decimal.Zero
		if product.GSTPercentage.Decimal.GreaterThan(decimal.Zero) {
			rate = product.GSTPercentage.Decimal
		} else if product.Category.GSTPercentage.Decimal.GreaterThan(decimal.Zero) {
			rate = product.Category.GSTPercentage.Decimal
		}
		rates[product.ID] = rate
	}
	// Unknown products price at zero tax rather than failing the quote.
	return rates, nil
}
