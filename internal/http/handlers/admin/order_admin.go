package admin

import (
	"strconv"

	"github.com/royale-store/royale-api/internal/http/handlers/shared"
	"github.com/royale-store/royale-api/internal/http/response"
	"github.com/royale-store/royale-api/internal/repository"
	"github.com/royale-store/royale-api/internal/service"

	"github.com/gin-gonic/gin"
)

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders GET /api/admin/orders
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	orders, total, err := h.CheckoutService.ListOrders(repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        c.Query("status"),
		OrderNo:       c.Query("order_no"),
		Phone:         c.Query("phone"),
		PaymentMethod: c.Query("payment_method"),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load orders", err)
		return
	}
	response.SuccessWithPage(c, orders, shared.BuildPagination(page, pageSize, total))
}

// GetOrder GET /api/admin/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	order, err := h.CheckoutService.GetOrder(uint(id))
	if err != nil {
		if err == service.ErrOrderNotFound {
			response.NotFound(c, "order not found")
			return
		}
		shared.RespondError(c, response.CodeInternal, "failed to load order", err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus PUT /api/admin/orders/:id/status
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	order, err := h.CheckoutService.UpdateOrderStatus(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		switch err {
		case service.ErrOrderNotFound:
			response.NotFound(c, "order not found")
		case service.ErrOrderStatusInvalid:
			response.BadRequest(c, "status transition not allowed")
		default:
			shared.RespondError(c, response.CodeInternal, "failed to update order", err)
		}
		return
	}
	response.SuccessWithMsg(c, "order updated", order)
}
