package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/royale-store/royale-api/internal/constants"
	"github.com/royale-store/royale-api/internal/logger"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/queue"
	"github.com/royale-store/royale-api/internal/repository"

	"gorm.io/gorm"
)

const orderNoMaxAttempts = 5

// allowedStatusTransitions is the order lifecycle. Cancellation is
// possible until the order ships.
var allowedStatusTransitions = map[string][]string{
	constants.OrderStatusPending:   {constants.OrderStatusConfirmed, constants.OrderStatusCancelled},
	constants.OrderStatusConfirmed: {constants.OrderStatusShipped, constants.OrderStatusCancelled},
	constants.OrderStatusShipped:   {constants.OrderStatusDelivered},
}

// CheckoutService drives order submission: re-validates the checkout
// steps, runs the eligibility gates, prices the cart, and lands the
// order with its items in one transaction. Everything after the commit
// is best effort.
type CheckoutService struct {
	orderRepo       repository.OrderRepository
	cartRepo        repository.CartRepository
	couponRepo      repository.CouponRepository
	restrictionRepo repository.RestrictionRepository

	pricing     *PricingService
	coupons     *CouponService
	eligibility *EligibilityService
	queueClient *queue.Client
	notifier    *NotificationService

	orderNoPrefix string
	orderNoLength int

	// one submission per phone at a time
	inFlight sync.Map
}

// CheckoutServiceOptions bundles the orchestrator's collaborators.
type CheckoutServiceOptions struct {
	OrderRepo       repository.OrderRepository
	CartRepo        repository.CartRepository
	CouponRepo      repository.CouponRepository
	RestrictionRepo repository.RestrictionRepository
	Pricing         *PricingService
	Coupons         *CouponService
	Eligibility     *EligibilityService
	QueueClient     *queue.Client
	Notifier        *NotificationService
	OrderNoPrefix   string
	OrderNoLength   int
}

// NewCheckoutService creates the checkout orchestrator.
func NewCheckoutService(opts CheckoutServiceOptions) *CheckoutService {
	prefix := opts.OrderNoPrefix
	if prefix == "" {
		prefix = constants.OrderNoPrefixDefault
	}
	length := opts.OrderNoLength
	if length <= 0 {
		length = constants.OrderNoLengthDefault
	}
	return &CheckoutService{
		orderRepo:       opts.OrderRepo,
		cartRepo:        opts.CartRepo,
		couponRepo:      opts.CouponRepo,
		restrictionRepo: opts.RestrictionRepo,
		pricing:         opts.Pricing,
		coupons:         opts.Coupons,
		eligibility:     opts.Eligibility,
		queueClient:     opts.QueueClient,
		notifier:        opts.Notifier,
		orderNoPrefix:   prefix,
		orderNoLength:   length,
	}
}

// SubmitInput is one checkout submission.
type SubmitInput struct {
	SessionID     string       `json:"-"`
	Step          string       `json:"step"`
	Form          DeliveryForm `json:"form"`
	PaymentMethod string       `json:"payment_method"`
	CouponCode    string       `json:"coupon_code"`
	PolicyAgreed  bool         `json:"policy_agreed"`
	ClientIP      string       `json:"-"`
}

// SubmitResult is the successful submission response.
type SubmitResult struct {
	Order     *models.Order  `json:"order"`
	Breakdown PriceBreakdown `json:"breakdown"`
}

// Submit places an order. Step validation and every eligibility gate run
// again here regardless of what the client claims to have passed.
func (s *CheckoutService) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	if strings.TrimSpace(input.SessionID) == "" {
		return nil, ErrSessionRequired
	}
	step, ok := ParseCheckoutStep(input.Step)
	if !ok || step != StepPayment {
		return nil, ErrStepLocked
	}
	if err := ValidateDeliveryStep(input.Form); err != nil {
		return nil, err
	}
	if err := ValidateAddressStep(input.Form); err != nil {
		return nil, err
	}

	phone := NormalizeIndianMobile(input.Form.Phone)
	if phone == "" {
		return nil, ErrPhoneInvalid
	}

	if _, loaded := s.inFlight.LoadOrStore(phone, struct{}{}); loaded {
		return nil, ErrSubmitInFlight
	}
	defer s.inFlight.Delete(phone)

	items, err := s.cartRepo.ListBySession(input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := s.eligibility.Check(EligibilityInput{
		Phone:         phone,
		Email:         input.Form.Email,
		PaymentMethod: input.PaymentMethod,
		Items:         items,
		ClientIP:      input.ClientIP,
		PolicyAgreed:  input.PolicyAgreed,
		Now:           time.Now(),
	}); err != nil {
		return nil, err
	}

	var coupon *AppliedCoupon
	if strings.TrimSpace(input.CouponCode) != "" {
		base, err := s.pricing.Quote(items, nil)
		if err != nil {
			return nil, err
		}
		coupon, err = s.coupons.Apply(input.CouponCode, base.Subtotal)
		if err != nil {
			return nil, err
		}
	}

	breakdown, err := s.pricing.Quote(items, coupon)
	if err != nil {
		return nil, err
	}

	order, err := s.createOrder(input, phone, items, coupon, breakdown)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, order, phone, input, coupon)

	return &SubmitResult{Order: order, Breakdown: breakdown}, nil
}

// createOrder inserts the order and its items in one transaction,
// regenerating the order number on a uniqueness conflict.
func (s *CheckoutService) createOrder(input SubmitInput, phone string, items []models.CartItem, coupon *AppliedCoupon, breakdown PriceBreakdown) (*models.Order, error) {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			UnitPrice:        models.NewMoneyFromDecimal(DiscountedUnitPrice(item)),
			Quantity:         item.Quantity,
			VariantID:        item.VariantID,
			VariantAttribute: item.VariantAttribute,
			VariantValue:     item.VariantValue,
		})
	}

	var lastErr error
	for attempt := 0; attempt < orderNoMaxAttempts; attempt++ {
		orderNo, err := s.generateOrderNo()
		if err != nil {
			return nil, err
		}

		order := &models.Order{
			OrderNo:        orderNo,
			CustomerName:   strings.TrimSpace(input.Form.Name),
			Phone:          FormatIndianPhone(phone),
			Email:          strings.TrimSpace(input.Form.Email),
			Address:        strings.TrimSpace(input.Form.Address),
			State:          strings.TrimSpace(input.Form.State),
			Pincode:        strings.TrimSpace(input.Form.Pincode),
			Landmark1:      strings.TrimSpace(input.Form.Landmark1),
			Landmark2:      strings.TrimSpace(input.Form.Landmark2),
			Landmark3:      strings.TrimSpace(input.Form.Landmark3),
			PaymentMethod:  input.PaymentMethod,
			Subtotal:       breakdown.Subtotal,
			CouponDiscount: breakdown.CouponDiscount,
			GSTAmount:      breakdown.GSTAmount,
			ShippingFee:    breakdown.ShippingFee,
			Total:          breakdown.Total,
			ClientIP:       input.ClientIP,
			Status:         constants.OrderStatusPending,
		}
		if coupon != nil {
			couponID := coupon.ID
			order.CouponID = &couponID
		}

		txItems := make([]models.OrderItem, len(orderItems))
		copy(txItems, orderItems)

		err = models.DB.Transaction(func(tx *gorm.DB) error {
			return s.orderRepo.WithTx(tx).Create(order, txItems)
		})
		if err == nil {
			order.Items = txItems
			return order, nil
		}
		if !isDuplicateKeyErr(err) {
			logger.Errorw("order_create_failed", "error", err)
			return nil, ErrOrderCreateFailed
		}
		lastErr = err
		logger.Warnw("order_no_conflict", "order_no", orderNo, "attempt", attempt+1)
	}
	logger.Errorw("order_no_exhausted", "attempts", orderNoMaxAttempts, "error", lastErr)
	return nil, ErrOrderCreateFailed
}

// afterCommit runs the post-commit side effects. Each one logs its own
// failure and never unwinds the placed order.
func (s *CheckoutService) afterCommit(ctx context.Context, order *models.Order, phone string, input SubmitInput, coupon *AppliedCoupon) {
	s.recordOrderCounters(order, phone)

	if coupon != nil {
		if err := s.couponRepo.IncrementUsedCount(coupon.ID, 1); err != nil {
			logger.Errorw("coupon_usage_increment_failed", "order_no", order.OrderNo, "coupon_id", coupon.ID, "error", err)
		}
	}

	if err := s.cartRepo.ClearSession(input.SessionID); err != nil {
		logger.Errorw("cart_clear_failed", "order_no", order.OrderNo, "error", err)
	}

	s.dispatchNewOrderNotify(ctx, order)
}

// recordOrderCounters increments exactly one counter family. A phone
// with an active individual restriction counts against its daily
// counter; everyone else accrues the global counters, whether or not
// global enforcement is currently enabled.
func (s *CheckoutService) recordOrderCounters(order *models.Order, phone string) {
	formatted := FormatIndianPhone(phone)
	today := time.Now().Format("2006-01-02")

	restriction, err := s.restrictionRepo.GetActiveIndividualByPhone(formatted)
	if err != nil {
		logger.Errorw("order_counter_lookup_failed", "order_no", order.OrderNo, "error", err)
		return
	}

	if restriction != nil {
		if err := s.restrictionRepo.IncrementIndividualDailyCount(formatted, order.PaymentMethod, today); err != nil {
			logger.Errorw("order_counter_increment_failed", "order_no", order.OrderNo, "tier", "individual", "error", err)
		}
		return
	}

	if err := s.restrictionRepo.IncrementPhoneLifetimeCount(formatted, order.PaymentMethod, today); err != nil {
		logger.Errorw("order_counter_increment_failed", "order_no", order.OrderNo, "tier", "global_phone", "error", err)
	}
	if order.ClientIP != "" {
		if err := s.restrictionRepo.IncrementIPDailyCount(order.ClientIP, order.PaymentMethod, today); err != nil {
			logger.Errorw("order_counter_increment_failed", "order_no", order.OrderNo, "tier", "global_ip", "error", err)
		}
	}
}

func (s *CheckoutService) dispatchNewOrderNotify(ctx context.Context, order *models.Order) {
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderNotify(queue.OrderNotifyPayload{OrderID: order.ID}); err != nil {
			logger.Errorw("order_notify_enqueue_failed", "order_no", order.OrderNo, "error", err)
		}
		return
	}
	if s.notifier.Enabled() {
		if err := s.notifier.NotifyNewOrder(ctx, order.ID); err != nil {
			logger.Errorw("order_notify_failed", "order_no", order.OrderNo, "error", err)
		}
	}
}

// TrackOrder returns an order for public tracking. The phone number in
// any accepted input form is the access credential.
func (s *CheckoutService) TrackOrder(orderNo, rawPhone string) (*models.Order, error) {
	orderNo = strings.ToUpper(strings.TrimSpace(orderNo))
	phone := NormalizeIndianMobile(rawPhone)
	if phone == "" {
		return nil, ErrPhoneInvalid
	}
	order, err := s.orderRepo.GetByOrderNoAndPhone(orderNo, FormatIndianPhone(phone))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders returns orders for the backoffice.
func (s *CheckoutService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrder fetches one order for the backoffice detail view.
func (s *CheckoutService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateOrderStatus moves an order along the lifecycle and notifies the
// channel about the change.
func (s *CheckoutService) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if !statusTransitionAllowed(order.Status, status) {
		return nil, ErrOrderStatusInvalid
	}
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status

	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{OrderID: id, Status: status}); err != nil {
			logger.Errorw("order_status_notify_enqueue_failed", "order_no", order.OrderNo, "error", err)
		}
	} else if s.notifier.Enabled() {
		if err := s.notifier.NotifyOrderStatus(ctx, id, status); err != nil {
			logger.Errorw("order_status_notify_failed", "order_no", order.OrderNo, "error", err)
		}
	}
	return order, nil
}

func statusTransitionAllowed(from, to string) bool {
	for _, allowed := range allowedStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// generateOrderNo builds "<prefix><N random chars>" from the order
// number charset using crypto/rand.
func (s *CheckoutService) generateOrderNo() (string, error) {
	charset := constants.OrderNoCharset
	max := big.NewInt(int64(len(charset)))
	var b strings.Builder
	b.WriteString(s.orderNoPrefix)
	for i := 0; i < s.orderNoLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(charset[n.Int64()])
	}
	return b.String(), nil
}

// isDuplicateKeyErr detects unique-constraint violations across the
// supported drivers.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
