package repository

import (
	"errors"
	"time"

	"github.com/royale-store/royale-api/internal/models"

	"gorm.io/gorm"
)

// BannerRepository is the banner data access interface.
type BannerRepository interface {
	GetByID(id uint) (*models.Banner, error)
	List(filter BannerListFilter) ([]models.Banner, int64, error)
	Create(banner *models.Banner) error
	Update(banner *models.Banner) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormBannerRepository
}

// GormBannerRepository is the GORM implementation.
type GormBannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository creates a banner repository.
func NewBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormBannerRepository) WithTx(tx *gorm.DB) *GormBannerRepository {
	if tx == nil {
		return r
	}
	return &GormBannerRepository{db: tx}
}

// GetByID fetches a banner by id.
func (r *GormBannerRepository) GetByID(id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &banner, nil
}

// List returns banners matching the filter. OnlyValid restricts to the
// current start/end window.
func (r *GormBannerRepository) List(filter BannerListFilter) ([]models.Banner, int64, error) {
	var banners []models.Banner
	query := r.db.Model(&models.Banner{})

	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.OnlyValid {
		now := time.Now()
		query = query.
			Where("start_at IS NULL OR start_at <= ?", now).
			Where("end_at IS NULL OR end_at >= ?", now)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order desc, id desc").Find(&banners).Error; err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

// Create inserts a banner.
func (r *GormBannerRepository) Create(banner *models.Banner) error {
	return r.db.Create(banner).Error
}

// Update saves a banner.
func (r *GormBannerRepository) Update(banner *models.Banner) error {
	return r.db.Save(banner).Error
}

// Delete removes a banner.
func (r *GormBannerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Banner{}, id).Error
}
