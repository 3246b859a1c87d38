package public

import (
	"github.com/royale-store/royale-api/internal/http/response"
	"github.com/royale-store/royale-api/internal/service"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID        uint   `json:"product_id" binding:"required"`
	Quantity         int    `json:"quantity" binding:"required"`
	VariantID        string `json:"variant_id"`
	VariantAttribute string `json:"variant_attribute"`
	VariantValue     string `json:"variant_value"`
}

type updateCartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// ListCart GET /api/cart
func (h *Handler) ListCart(c *gin.Context) {
	items, err := h.CartService.List(sessionID(c))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to load cart")
		return
	}
	response.Success(c, items)
}

// AddCartItem POST /api/cart/items
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	err := h.CartService.Add(service.AddItemInput{
		SessionID:        sessionID(c),
		ProductID:        req.ProductID,
		Quantity:         req.Quantity,
		VariantID:        req.VariantID,
		VariantAttribute: req.VariantAttribute,
		VariantValue:     req.VariantValue,
	})
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to add to cart")
		return
	}
	response.SuccessWithMsg(c, "added to cart", nil)
}

// UpdateCartItem PUT /api/cart/items
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	err := h.CartService.UpdateQuantity(sessionID(c), req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart")
		return
	}
	response.SuccessWithMsg(c, "cart updated", nil)
}

// RemoveCartItem DELETE /api/cart/items
func (h *Handler) RemoveCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	err := h.CartService.Remove(sessionID(c), req.ProductID, req.VariantID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to remove from cart")
		return
	}
	response.SuccessWithMsg(c, "removed from cart", nil)
}

// ClearCart DELETE /api/cart
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.CartService.Clear(sessionID(c)); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to clear cart")
		return
	}
	response.SuccessWithMsg(c, "cart cleared", nil)
}
