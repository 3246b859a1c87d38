package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/royale-store/royale-api/internal/logger"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"
	"github.com/royale-store/royale-api/internal/telegram"
)

// NotificationService delivers order events to the store's Telegram
// channel. Delivery is best effort: failures are logged and never
// surface to the customer path.
type NotificationService struct {
	orderRepo repository.OrderRepository
	tg        *telegram.Client
}

// NewNotificationService creates a notification service.
func NewNotificationService(orderRepo repository.OrderRepository, tg *telegram.Client) *NotificationService {
	return &NotificationService{
		orderRepo: orderRepo,
		tg:        tg,
	}
}

// Enabled reports whether a Telegram destination is configured.
func (s *NotificationService) Enabled() bool {
	return s != nil && s.tg.Enabled()
}

// NotifyNewOrder sends the new-order summary for the given order id.
func (s *NotificationService) NotifyNewOrder(ctx context.Context, orderID uint) error {
	if !s.Enabled() {
		return nil
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Warnw("notify_order_missing", "order_id", orderID)
		return nil
	}
	return s.tg.SendMessage(ctx, FormatNewOrderMessage(order))
}

// NotifyOrderStatus sends a status-change note for the given order id.
func (s *NotificationService) NotifyOrderStatus(ctx context.Context, orderID uint, status string) error {
	if !s.Enabled() {
		return nil
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Warnw("notify_order_missing", "order_id", orderID)
		return nil
	}
	var b strings.Builder
	b.WriteString("🔔 *ORDER UPDATE* 🔔\n\n")
	fmt.Fprintf(&b, "Order No: `%s`\n", order.OrderNo)
	fmt.Fprintf(&b, "Customer: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Status: *%s*\n", strings.ToUpper(status))
	return s.tg.SendMessage(ctx, b.String())
}

// FormatNewOrderMessage renders the order summary posted to the channel.
func FormatNewOrderMessage(order *models.Order) string {
	var b strings.Builder
	b.WriteString("📦 *NEW ORDER* 📦\n\n")
	fmt.Fprintf(&b, "Order No: `%s`\n", order.OrderNo)
	fmt.Fprintf(&b, "Customer: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", order.Phone)
	if order.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", order.Email)
	}
	fmt.Fprintf(&b, "Payment: %s\n", strings.ToUpper(order.PaymentMethod))

	b.WriteString("\n*Address*\n")
	fmt.Fprintf(&b, "%s\n", order.Address)
	for _, landmark := range []string{order.Landmark1, order.Landmark2, order.Landmark3} {
		if strings.TrimSpace(landmark) != "" {
			fmt.Fprintf(&b, "%s\n", landmark)
		}
	}
	fmt.Fprintf(&b, "%s - %s\n", order.State, order.Pincode)

	if len(order.Items) > 0 {
		b.WriteString("\n*Items*\n")
		for _, item := range order.Items {
			name := item.ProductName
			if item.VariantValue != "" {
				name = fmt.Sprintf("%s (%s)", name, item.VariantValue)
			}
			fmt.Fprintf(&b, "- %s x%d @ ₹%s\n", name, item.Quantity, item.UnitPrice.StringFixed(2))
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: ₹%s\n", order.Subtotal.StringFixed(2))
	if order.CouponDiscount.IsPositive() {
		fmt.Fprintf(&b, "Coupon: -₹%s\n", order.CouponDiscount.StringFixed(2))
	}
	fmt.Fprintf(&b, "GST: ₹%s\n", order.GSTAmount.StringFixed(2))
	fmt.Fprintf(&b, "Shipping: ₹%s\n", order.ShippingFee.StringFixed(2))
	fmt.Fprintf(&b, "*Total: ₹%s*\n\n", order.Total.StringFixed(2))

	fmt.Fprintf(&b, "Date: %s\n", order.CreatedAt.Format("02 Jan 2006 15:04"))
	fmt.Fprintf(&b, "Status: %s", strings.ToUpper(order.Status))
	return b.String()
}
