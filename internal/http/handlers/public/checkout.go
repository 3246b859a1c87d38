package public

import (
	"github.com/royale-store/royale-api/internal/http/handlers/shared"
	"github.com/royale-store/royale-api/internal/http/response"
	"github.com/royale-store/royale-api/internal/service"

	"github.com/gin-gonic/gin"
)

type quoteRequest struct {
	CouponCode string `json:"coupon_code"`
}

type validateStepRequest struct {
	Step string               `json:"step" binding:"required"`
	Form service.DeliveryForm `json:"form"`
}

type applyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// Quote POST /api/checkout/quote
// Prices the current cart, optionally with a coupon code.
func (h *Handler) Quote(c *gin.Context) {
	var req quoteRequest
	_ = c.ShouldBindJSON(&req)

	session := sessionID(c)
	if session == "" {
		response.BadRequest(c, "session is required")
		return
	}
	items, err := h.CartService.List(session)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}

	var coupon *service.AppliedCoupon
	if req.CouponCode != "" {
		base, err := h.PricingService.Quote(items, nil)
		if err != nil {
			shared.RespondError(c, response.CodeInternal, "failed to price cart", err)
			return
		}
		coupon, err = h.CouponService.Apply(req.CouponCode, base.Subtotal)
		if err != nil {
			respondWithMappedError(c, err, couponErrorRules, response.CodeInternal, "failed to apply coupon")
			return
		}
	}

	breakdown, err := h.PricingService.Quote(items, coupon)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to price cart", err)
		return
	}
	response.Success(c, gin.H{
		"breakdown": breakdown,
		"coupon":    coupon,
	})
}

// ValidateStep POST /api/checkout/validate
// Runs the gate for one checkout step so the UI can advance.
func (h *Handler) ValidateStep(c *gin.Context) {
	var req validateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	step, ok := service.ParseCheckoutStep(req.Step)
	if !ok {
		response.BadRequest(c, "unknown checkout step")
		return
	}

	var err error
	switch step {
	case service.StepDelivery:
		err = service.ValidateDeliveryStep(req.Form)
	case service.StepAddress:
		err = service.ValidateAddressStep(req.Form)
	default:
		err = nil
	}
	if err != nil {
		respondWithMappedError(c, err, formErrorRules, response.CodeBadRequest, "validation failed")
		return
	}
	response.SuccessWithMsg(c, "step valid", gin.H{"step": step.String()})
}

// ApplyCoupon POST /api/checkout/coupon
// Resolves a coupon against the current cart subtotal without reserving
// usage.
func (h *Handler) ApplyCoupon(c *gin.Context) {
	var req applyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	session := sessionID(c)
	if session == "" {
		response.BadRequest(c, "session is required")
		return
	}
	items, err := h.CartService.List(session)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}
	base, err := h.PricingService.Quote(items, nil)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to price cart", err)
		return
	}
	coupon, err := h.CouponService.Apply(req.Code, base.Subtotal)
	if err != nil {
		respondWithMappedError(c, err, couponErrorRules, response.CodeInternal, "failed to apply coupon")
		return
	}
	breakdown, err := h.PricingService.Quote(items, coupon)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to price cart", err)
		return
	}
	response.Success(c, gin.H{
		"coupon":    coupon,
		"breakdown": breakdown,
	})
}

// SubmitOrder POST /api/checkout/submit
func (h *Handler) SubmitOrder(c *gin.Context) {
	var input service.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	input.SessionID = sessionID(c)
	input.ClientIP = h.clientIP(c)

	result, err := h.CheckoutService.Submit(c.Request.Context(), input)
	if err != nil {
		respondWithMappedError(c, err, checkoutSubmitErrorRules, response.CodeInternal, "failed to place order")
		return
	}
	response.SuccessWithMsg(c, "order placed", result)
}

// TrackOrder GET /api/orders/track
func (h *Handler) TrackOrder(c *gin.Context) {
	orderNo := c.Query("order_no")
	phone := c.Query("phone")
	if orderNo == "" || phone == "" {
		response.BadRequest(c, "order_no and phone are required")
		return
	}
	order, err := h.CheckoutService.TrackOrder(orderNo, phone)
	if err != nil {
		switch err {
		case service.ErrOrderNotFound:
			response.NotFound(c, "order not found")
		case service.ErrPhoneInvalid:
			response.BadRequest(c, "phone number is invalid")
		default:
			shared.RespondError(c, response.CodeInternal, "failed to load order", err)
		}
		return
	}
	response.Success(c, order)
}

// clientIP prefers the transport-level address and falls back to the
// external echo service when the proxy chain hides it.
func (h *Handler) clientIP(c *gin.Context) string {
	ip := c.ClientIP()
	if ip != "" && ip != "::1" && ip != "127.0.0.1" {
		return ip
	}
	if resolved := h.IPResolver.Resolve(c.Request.Context()); resolved != "" {
		return resolved
	}
	return ip
}
