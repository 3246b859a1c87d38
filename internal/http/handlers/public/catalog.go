package public

import (
	"strconv"

	"github.com/royale-store/royale-api/internal/http/handlers/shared"
	"github.com/royale-store/royale-api/internal/http/response"
	"github.com/royale-store/royale-api/internal/repository"
	"github.com/royale-store/royale-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListBanners GET /api/banners
func (h *Handler) ListBanners(c *gin.Context) {
	banners, err := h.CatalogService.ListBanners(c.Request.Context())
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load banners", err)
		return
	}
	response.Success(c, banners)
}

// ListCategories GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(c.Request.Context())
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load categories", err)
		return
	}
	response.Success(c, categories)
}

// ListProducts GET /api/products
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)

	products, total, err := h.CatalogService.ListProducts(repository.ProductListFilter{
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

// GetProduct GET /api/products/:slug
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.CatalogService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		if err == service.ErrProductNotFound {
			response.NotFound(c, "product not found")
			return
		}
		shared.RespondError(c, response.CodeInternal, "failed to load product", err)
		return
	}
	response.Success(c, product)
}
