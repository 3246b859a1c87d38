package public

import (
	"errors"

	"github.com/royale-store/royale-api/internal/http/handlers/shared"
	"github.com/royale-store/royale-api/internal/http/response"
	"github.com/royale-store/royale-api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps one business error to a response code and
// message.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	var limitErr *service.LimitExceededError
	if errors.As(err, &limitErr) {
		shared.RespondError(c, response.CodeTooManyRequests, limitErr.Error(), nil)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			shared.RespondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	shared.RespondError(c, fallbackCode, fallbackMsg, err)
}

var formErrorRules = []mappedHandlerError{
	{target: service.ErrNameRequired, code: response.CodeBadRequest, msg: "name is required"},
	{target: service.ErrPhoneRequired, code: response.CodeBadRequest, msg: "phone is required"},
	{target: service.ErrPhoneInvalid, code: response.CodeBadRequest, msg: "phone number is invalid"},
	{target: service.ErrAddressRequired, code: response.CodeBadRequest, msg: "address is required"},
	{target: service.ErrStateRequired, code: response.CodeBadRequest, msg: "state is required"},
	{target: service.ErrPincodeInvalid, code: response.CodeBadRequest, msg: "pincode is invalid"},
	{target: service.ErrStepLocked, code: response.CodeBadRequest, msg: "complete the earlier checkout steps first"},
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponCodeRequired, code: response.CodeBadRequest, msg: "coupon code is required"},
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "coupon not found"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, msg: "coupon has expired"},
	{target: service.ErrCouponUsageExceeded, code: response.CodeBadRequest, msg: "coupon usage limit reached"},
	{target: service.ErrCouponMinOrder, code: response.CodeBadRequest, msg: "order total is below the coupon minimum"},
}

var eligibilityErrorRules = []mappedHandlerError{
	{target: service.ErrCustomerBanned, code: response.CodeForbidden, msg: service.ErrCustomerBanned.Error()},
	{target: service.ErrPolicyNotAgreed, code: response.CodeBadRequest, msg: "please agree to the policies to continue"},
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrCODNotAvailable, code: response.CodeBadRequest, msg: "cash on delivery is not available for some items"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "payment method is invalid"},
}

var submitErrorRules = []mappedHandlerError{
	{target: service.ErrSessionRequired, code: response.CodeBadRequest, msg: "session is required"},
	{target: service.ErrSubmitInFlight, code: response.CodeTooManyRequests, msg: "an order for this phone is already being placed"},
	{target: service.ErrOrderCreateFailed, code: response.CodeInternal, msg: "failed to place order, please try again"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrSessionRequired, code: response.CodeBadRequest, msg: "session is required"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductInactive, code: response.CodeBadRequest, msg: "product is unavailable"},
	{target: service.ErrCartLineNotFound, code: response.CodeNotFound, msg: "cart item not found"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, msg: "quantity is invalid"},
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var checkoutSubmitErrorRules = concatMappedHandlerErrors(
	formErrorRules,
	couponErrorRules,
	eligibilityErrorRules,
	submitErrorRules,
)
