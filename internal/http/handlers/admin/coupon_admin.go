package admin

import (
	"strconv"
	"time"

	"github.com/royale-store/royale-api/internal/http/handlers/shared"
	"github.com/royale-store/royale-api/internal/http/response"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"

	"github.com/gin-gonic/gin"
)

type couponRequest struct {
	Code           string       `json:"code" binding:"required"`
	DiscountType   string       `json:"discount_type" binding:"required"`
	DiscountValue  models.Money `json:"discount_value"`
	MinOrderAmount models.Money `json:"min_order_amount"`
	MaxUses        int          `json:"max_uses"`
	ExpiresAt      *time.Time   `json:"expires_at"`
	IsActive       *bool        `json:"is_active"`
}

func (r couponRequest) apply(coupon *models.Coupon) {
	coupon.Code = r.Code
	coupon.DiscountType = r.DiscountType
	coupon.DiscountValue = r.DiscountValue
	coupon.MinOrderAmount = r.MinOrderAmount
	coupon.MaxUses = r.MaxUses
	coupon.ExpiresAt = r.ExpiresAt
	if r.IsActive != nil {
		coupon.IsActive = *r.IsActive
	}
}

// ListCoupons GET /api/admin/coupons
func (h *Handler) ListCoupons(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	coupons, total, err := h.CouponService.List(repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     c.Query("code"),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load coupons", err)
		return
	}
	response.SuccessWithPage(c, coupons, shared.BuildPagination(page, pageSize, total))
}

// CreateCoupon POST /api/admin/coupons
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	coupon := &models.Coupon{IsActive: true}
	req.apply(coupon)
	if err := h.CouponService.Create(coupon); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to create coupon", err)
		return
	}
	response.SuccessWithMsg(c, "coupon created", coupon)
}

// UpdateCoupon PUT /api/admin/coupons/:id
func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid coupon id")
		return
	}
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	coupon, err := h.CouponService.GetByID(uint(id))
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load coupon", err)
		return
	}
	if coupon == nil {
		response.NotFound(c, "coupon not found")
		return
	}
	req.apply(coupon)
	if err := h.CouponService.Update(coupon); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to update coupon", err)
		return
	}
	response.SuccessWithMsg(c, "coupon updated", coupon)
}

// DeleteCoupon DELETE /api/admin/coupons/:id
func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid coupon id")
		return
	}
	if err := h.CouponService.Delete(uint(id)); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to delete coupon", err)
		return
	}
	response.SuccessWithMsg(c, "coupon deleted", nil)
}
