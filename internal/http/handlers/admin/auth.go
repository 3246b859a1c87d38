package admin

import (
	"github.com/royale-store/royale-api/internal/http/handlers/shared"
	"github.com/royale-store/royale-api/internal/http/response"
	"github.com/royale-store/royale-api/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/admin/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			response.Unauthorized(c, "invalid username or password")
		case service.ErrAccountDisabled:
			response.Forbidden(c, "account is disabled")
		default:
			shared.RespondError(c, response.CodeInternal, "login failed", err)
		}
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
		},
	})
}

// Me GET /api/admin/me
func (h *Handler) Me(c *gin.Context) {
	adminID, ok := c.Get("admin_id")
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	id, _ := adminID.(uint)
	admin, err := h.AuthService.GetAdmin(id)
	if err != nil || admin == nil {
		response.Unauthorized(c, "unauthorized")
		return
	}
	response.Success(c, gin.H{
		"id":            admin.ID,
		"username":      admin.Username,
		"last_login_at": admin.LastLoginAt,
	})
}
