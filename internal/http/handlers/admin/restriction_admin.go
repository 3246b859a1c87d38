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

type individualRestrictionRequest struct {
	Phone            string `json:"phone" binding:"required"`
	CODDailyLimit    int    `json:"cod_daily_limit"`
	OnlineDailyLimit int    `json:"online_daily_limit"`
	IsActive         *bool  `json:"is_active"`
}

// ListRestrictions GET /api/admin/restrictions
func (h *Handler) ListRestrictions(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	restrictions, total, err := h.RestrictionAdminService.ListIndividualRestrictions(repository.RestrictionListFilter{
		Page:     page,
		PageSize: pageSize,
		Phone:    c.Query("phone"),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load restrictions", err)
		return
	}
	response.SuccessWithPage(c, restrictions, shared.BuildPagination(page, pageSize, total))
}

// CreateRestriction POST /api/admin/restrictions
func (h *Handler) CreateRestriction(c *gin.Context) {
	var req individualRestrictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	restriction := &models.IndividualPhoneRestriction{
		Phone:            req.Phone,
		CODDailyLimit:    req.CODDailyLimit,
		OnlineDailyLimit: req.OnlineDailyLimit,
		IsActive:         true,
	}
	if req.IsActive != nil {
		restriction.IsActive = *req.IsActive
	}
	if err := h.RestrictionAdminService.CreateIndividualRestriction(restriction); err != nil {
		if err == service.ErrPhoneInvalid {
			response.BadRequest(c, "phone number is invalid")
			return
		}
		shared.RespondError(c, response.CodeInternal, "failed to create restriction", err)
		return
	}
	response.SuccessWithMsg(c, "restriction created", restriction)
}

// UpdateRestriction PUT /api/admin/restrictions/:id
func (h *Handler) UpdateRestriction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid restriction id")
		return
	}
	var req individualRestrictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	restriction := &models.IndividualPhoneRestriction{
		ID:               uint(id),
		Phone:            req.Phone,
		CODDailyLimit:    req.CODDailyLimit,
		OnlineDailyLimit: req.OnlineDailyLimit,
	}
	if req.IsActive != nil {
		restriction.IsActive = *req.IsActive
	}
	if err := h.RestrictionAdminService.UpdateIndividualRestriction(restriction); err != nil {
		if err == service.ErrPhoneInvalid {
			response.BadRequest(c, "phone number is invalid")
			return
		}
		shared.RespondError(c, response.CodeInternal, "failed to update restriction", err)
		return
	}
	response.SuccessWithMsg(c, "restriction updated", restriction)
}

// DeleteRestriction DELETE /api/admin/restrictions/:id
func (h *Handler) DeleteRestriction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid restriction id")
		return
	}
	if err := h.RestrictionAdminService.DeleteIndividualRestriction(uint(id)); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to delete restriction", err)
		return
	}
	response.SuccessWithMsg(c, "restriction deleted", nil)
}

// GetRestrictionConfig GET /api/admin/restrictions/config
func (h *Handler) GetRestrictionConfig(c *gin.Context) {
	config, err := h.RestrictionAdminService.GetConfig()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load config", err)
		return
	}
	response.Success(c, config)
}

// UpdateRestrictionConfig PUT /api/admin/restrictions/config
func (h *Handler) UpdateRestrictionConfig(c *gin.Context) {
	var config models.RestrictionConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.RestrictionAdminService.UpdateConfig(&config); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to update config", err)
		return
	}
	response.SuccessWithMsg(c, "config updated", config)
}
