package service

import (
	"context"
	"time"

	"github.com/royale-store/royale-api/internal/cache"
	"github.com/royale-store/royale-api/internal/logger"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"
)

const (
	cacheKeyBanners    = "catalog:banners"
	cacheKeyCategories = "catalog:categories"
	catalogCacheTTL    = 5 * time.Minute
)

// CatalogService serves the public storefront reads and the admin CRUD
// behind them. Public listings cache in Redis; admin writes invalidate.
type CatalogService struct {
	bannerRepo   repository.BannerRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService creates a catalog service.
func NewCatalogService(bannerRepo repository.BannerRepository, categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{
		bannerRepo:   bannerRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// ListBanners returns the active banners inside their display window.
func (s *CatalogService) ListBanners(ctx context.Context) ([]models.Banner, error) {
	var cached []models.Banner
	if hit, err := cache.GetJSON(ctx, cacheKeyBanners, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", cacheKeyBanners, "error", err)
	} else if hit {
		return cached, nil
	}

	active := true
	banners, _, err := s.bannerRepo.List(repository.BannerListFilter{
		IsActive:  &active,
		OnlyValid: true,
	})
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, cacheKeyBanners, banners, catalogCacheTTL); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", cacheKeyBanners, "error", err)
	}
	return banners, nil
}

// ListCategories returns the active categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if hit, err := cache.GetJSON(ctx, cacheKeyCategories, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", cacheKeyCategories, "error", err)
	} else if hit {
		return cached, nil
	}

	categories, err := s.categoryRepo.ListActive()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, cacheKeyCategories, categories, catalogCacheTTL); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", cacheKeyCategories, "error", err)
	}
	return categories, nil
}

// ListProducts returns a page of active products.
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

// GetProductBySlug fetches one active product for the detail page.
func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Admin CRUD below. Writes drop the public caches.

// AdminListProducts returns products without the active filter.
func (s *CatalogService) AdminListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

// AdminGetProduct fetches a product by id.
func (s *CatalogService) AdminGetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct inserts a product.
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.productRepo.Create(product)
}

// UpdateProduct saves a product.
func (s *CatalogService) UpdateProduct(ctx context.Context, product *models.Product) error {
	return s.productRepo.Update(product)
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return s.productRepo.Delete(id)
}

// AdminListCategories returns all categories including inactive.
func (s *CatalogService) AdminListCategories() ([]models.Category, error) {
	return s.categoryRepo.ListAll()
}

// CreateCategory inserts a category.
func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.categoryRepo.Create(category); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyCategories)
	return nil
}

// UpdateCategory saves a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, category *models.Category) error {
	if err := s.categoryRepo.Update(category); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyCategories)
	return nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyCategories)
	return nil
}

// AdminListBanners returns banners for the backoffice.
func (s *CatalogService) AdminListBanners(filter repository.BannerListFilter) ([]models.Banner, int64, error) {
	return s.bannerRepo.List(filter)
}

// CreateBanner inserts a banner.
func (s *CatalogService) CreateBanner(ctx context.Context, banner *models.Banner) error {
	if err := s.bannerRepo.Create(banner); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyBanners)
	return nil
}

// UpdateBanner saves a banner.
func (s *CatalogService) UpdateBanner(ctx context.Context, banner *models.Banner) error {
	if err := s.bannerRepo.Update(banner); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyBanners)
	return nil
}

// DeleteBanner removes a banner.
func (s *CatalogService) DeleteBanner(ctx context.Context, id uint) error {
	if err := s.bannerRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyBanners)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, key string) {
	if err := cache.Del(ctx, key); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "key", key, "error", err)
	}
}
