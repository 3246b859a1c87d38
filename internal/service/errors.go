package service

import "errors"

// Validation and step-gate errors.
var (
	ErrNameRequired    = errors.New("name is required")
	ErrPhoneRequired   = errors.New("phone is required")
	ErrPhoneInvalid    = errors.New("enter a valid 10-digit mobile number")
	ErrAddressRequired = errors.New("address is required")
	ErrStateRequired   = errors.New("state is required")
	ErrPincodeInvalid  = errors.New("enter a valid 6-digit pincode")
	ErrStepLocked      = errors.New("complete the previous step first")
)

// Coupon resolver errors.
var (
	ErrCouponCodeRequired  = errors.New("coupon code is required")
	ErrCouponNotFound      = errors.New("invalid coupon code")
	ErrCouponExpired       = errors.New("this coupon has expired")
	ErrCouponUsageExceeded = errors.New("this coupon has reached its usage limit")
	ErrCouponMinOrder      = errors.New("order amount is below the coupon minimum")
)

// Eligibility errors. The ban message stays generic on purpose so the
// response never reveals which identifier matched.
var (
	ErrCustomerBanned       = errors.New("unable to place order, please contact support for assistance")
	ErrPolicyNotAgreed      = errors.New("please agree to the policies to continue")
	ErrEmptyCart            = errors.New("your cart is empty")
	ErrCODNotAvailable      = errors.New("cash on delivery is not available for some items in your cart")
	ErrPaymentMethodInvalid = errors.New("invalid payment method")
)

// Submission errors.
var (
	ErrOrderCreateFailed  = errors.New("failed to place order, please try again")
	ErrSubmitInFlight     = errors.New("an order is already being placed")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderStatusInvalid = errors.New("invalid order status")
)

// Catalog and cart errors.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInactive  = errors.New("product is not available")
	ErrCartLineNotFound = errors.New("cart item not found")
	ErrQuantityInvalid  = errors.New("quantity must be greater than zero")
	ErrSessionRequired  = errors.New("session token is required")
)

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// LimitExceededError reports a rate-limit rejection with enough structure
// for handlers and logs to name the tier and scope that tripped.
type LimitExceededError struct {
	Tier    string // individual / global
	Scope   string // phone / ip
	Method  string // cod / online
	Limit   int
	Current int
}

// Error implements error.
func (e *LimitExceededError) Error() string {
	if e.Method == "cod" {
		return "daily cash on delivery order limit reached, please try again tomorrow"
	}
	return "daily order limit reached, please try again tomorrow"
}
