package constants

// Order status values.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment method values.
const (
	PaymentMethodOnline = "online"
	PaymentMethodCOD    = "cod"
)

// Coupon discount types.
const (
	CouponTypeFixed      = "fixed"
	CouponTypePercentage = "percentage"
)

// Checkout step identifiers.
const (
	CheckoutStepDelivery = "delivery"
	CheckoutStepAddress  = "address"
	CheckoutStepPayment  = "payment"
)

// Queue names and task types.
const (
	QueueDefault          = "default"
	TaskOrderNotify       = "order:notify"
	TaskOrderStatusNotify = "order:status_notify"
)

// Cache defaults.
const (
	RedisPrefixDefault = "ryl"
)

// Order number defaults; the generated id is prefix + charset characters.
const (
	OrderNoPrefixDefault = "RYL-"
	OrderNoLengthDefault = 8
	OrderNoCharset       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Indian phone canonical prefix.
const (
	PhoneCountryPrefix = "+91"
)
