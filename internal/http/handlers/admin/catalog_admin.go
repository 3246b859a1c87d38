package admin

import (
	"strconv"

	"github.com/royale-store/royale-api/internal/http/handlers/shared"
	"github.com/royale-store/royale-api/internal/http/response"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ListProducts GET /api/admin/products
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)
	products, total, err := h.CatalogService.AdminListProducts(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: uint(categoryID),
		Search:     c.Query("search"),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load products", err)
		return
	}
	response.SuccessWithPage(c, products, shared.BuildPagination(page, pageSize, total))
}

// CreateProduct POST /api/admin/products
func (h *Handler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.CatalogService.CreateProduct(c.Request.Context(), &product); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to create product", err)
		return
	}
	response.SuccessWithMsg(c, "product created", product)
}

// UpdateProduct PUT /api/admin/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	product.ID = id
	if err := h.CatalogService.UpdateProduct(c.Request.Context(), &product); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to update product", err)
		return
	}
	response.SuccessWithMsg(c, "product updated", product)
}

// DeleteProduct DELETE /api/admin/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to delete product", err)
		return
	}
	response.SuccessWithMsg(c, "product deleted", nil)
}

// ListCategories GET /api/admin/categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.AdminListCategories()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load categories", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory POST /api/admin/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.CatalogService.CreateCategory(c.Request.Context(), &category); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to create category", err)
		return
	}
	response.SuccessWithMsg(c, "category created", category)
}

// UpdateCategory PUT /api/admin/categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	category.ID = id
	if err := h.CatalogService.UpdateCategory(c.Request.Context(), &category); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to update category", err)
		return
	}
	response.SuccessWithMsg(c, "category updated", category)
}

// DeleteCategory DELETE /api/admin/categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to delete category", err)
		return
	}
	response.SuccessWithMsg(c, "category deleted", nil)
}

// ListBanners GET /api/admin/banners
func (h *Handler) ListBanners(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	banners, total, err := h.CatalogService.AdminListBanners(repository.BannerListFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load banners", err)
		return
	}
	response.SuccessWithPage(c, banners, shared.BuildPagination(page, pageSize, total))
}

// CreateBanner POST /api/admin/banners
func (h *Handler) CreateBanner(c *gin.Context) {
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.CatalogService.CreateBanner(c.Request.Context(), &banner); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to create banner", err)
		return
	}
	response.SuccessWithMsg(c, "banner created", banner)
}

// UpdateBanner PUT /api/admin/banners/:id
func (h *Handler) UpdateBanner(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	banner.ID = id
	if err := h.CatalogService.UpdateBanner(c.Request.Context(), &banner); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to update banner", err)
		return
	}
	response.SuccessWithMsg(c, "banner updated", banner)
}

// DeleteBanner DELETE /api/admin/banners/:id
func (h *Handler) DeleteBanner(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteBanner(c.Request.Context(), id); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to delete banner", err)
		return
	}
	response.SuccessWithMsg(c, "banner deleted", nil)
}
