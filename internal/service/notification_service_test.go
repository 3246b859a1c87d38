package service

import (
	"strings"
	"testing"

	"github.com/royale-store/royale-api/internal/constants"
	"github.com/royale-store/royale-api/internal/models"
)

func TestFormatNewOrderMessage(t *testing.T) {
	discount, _ := models.NewMoneyFromString("90")
	order := &models.Order{
		OrderNo:        "RYL-AB12CD34",
		CustomerName:   "Asha Verma",
		Phone:          "+919876543210",
		Email:          "asha@example.com",
		Address:        "12 MG Road",
		State:          "Karnataka",
		Pincode:        "560001",
		Landmark1:      "Near Metro Station",
		PaymentMethod:  constants.PaymentMethodCOD,
		Subtotal:       models.NewMoneyFromInt(900),
		CouponDiscount: discount,
		GSTAmount:      models.NewMoneyFromInt(45),
		Total:          models.NewMoneyFromInt(855),
		Status:         constants.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductName: "Oud Royale", VariantValue: "100ml", UnitPrice: models.NewMoneyFromInt(900), Quantity: 1},
		},
	}

	message := FormatNewOrderMessage(order)
	for _, want := range []string{
		"Order No: `RYL-AB12CD34`",
		"Customer: Asha Verma",
		"Phone: +919876543210",
		"Payment: COD",
		"Near Metro Station",
		"Karnataka - 560001",
		"- Oud Royale (100ml) x1 @ ₹900.00",
		"Subtotal: ₹900.00",
		"Coupon: -₹90.00",
		"GST: ₹45.00",
		"*Total: ₹855.00*",
		"Status: PENDING",
	} {
		if !strings.Contains(message, want) {
			t.Fatalf("message missing %q:\n%s", want, message)
		}
	}
}

func TestFormatNewOrderMessageOmitsEmptyFields(t *testing.T) {
	order := &models.Order{
		OrderNo:       "RYL-AB12CD34",
		CustomerName:  "Asha Verma",
		Phone:         "+919876543210",
		Address:       "12 MG Road",
		State:         "Karnataka",
		Pincode:       "560001",
		PaymentMethod: constants.PaymentMethodOnline,
		Subtotal:      models.NewMoneyFromInt(500),
		Total:         models.NewMoneyFromInt(500),
		Status:        constants.OrderStatusPending,
	}

	message := FormatNewOrderMessage(order)
	if strings.Contains(message, "Email:") {
		t.Fatalf("message includes empty email:\n%s", message)
	}
	if strings.Contains(message, "Coupon:") {
		t.Fatalf("message includes zero coupon line:\n%s", message)
	}
}

func TestNotificationServiceDisabledWithoutClient(t *testing.T) {
	service := NewNotificationService(nil, nil)
	if service.Enabled() {
		t.Fatalf("service without a telegram client reports enabled")
	}
}
