package admin

import (
	"strconv"

	"github.com/royale-store/royale-api/internal/http/handlers/shared"
	"github.com/royale-store/royale-api/internal/http/response"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"
	"github.com/royale-store/royale-api/internal/service"

	"github.com/gin-gonic/gin"
)

type banRequest struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Reason   string `json:"reason"`
	IsActive *bool  `json:"is_active"`
}

// ListBans GET /api/admin/bans
func (h *Handler) ListBans(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	entries, total, err := h.RestrictionAdminService.ListBans(repository.BannedUserListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load ban list", err)
		return
	}
	response.SuccessWithPage(c, entries, shared.BuildPagination(page, pageSize, total))
}

// CreateBan POST /api/admin/bans
func (h *Handler) CreateBan(c *gin.Context) {
	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	entry := &models.BannedUser{
		Phone:    req.Phone,
		Email:    req.Email,
		Reason:   req.Reason,
		IsActive: true,
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}
	if err := h.RestrictionAdminService.CreateBan(entry); err != nil {
		if err == service.ErrPhoneRequired {
			response.BadRequest(c, "a phone or email is required")
			return
		}
		shared.RespondError(c, response.CodeInternal, "failed to create ban", err)
		return
	}
	response.SuccessWithMsg(c, "ban created", entry)
}

// UpdateBan PUT /api/admin/bans/:id
func (h *Handler) UpdateBan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid ban id")
		return
	}
	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	entry := &models.BannedUser{
		ID:     uint(id),
		Phone:  req.Phone,
		Email:  req.Email,
		Reason: req.Reason,
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}
	if err := h.RestrictionAdminService.UpdateBan(entry); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to update ban", err)
		return
	}
	response.SuccessWithMsg(c, "ban updated", entry)
}

// DeleteBan DELETE /api/admin/bans/:id
func (h *Handler) DeleteBan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid ban id")
		return
	}
	if err := h.RestrictionAdminService.DeleteBan(uint(id)); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to delete ban", err)
		return
	}
	response.SuccessWithMsg(c, "ban deleted", nil)
}
