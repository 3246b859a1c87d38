package repository

import (
	"errors"

	"github.com/royale-store/royale-api/internal/models"

	"gorm.io/gorm"
)

// BannedUserRepository is the ban list data access interface.
type BannedUserRepository interface {
	GetByID(id uint) (*models.BannedUser, error)
	FindActiveMatch(phones []string, email string) (*models.BannedUser, error)
	List(filter BannedUserListFilter) ([]models.BannedUser, int64, error)
	Create(entry *models.BannedUser) error
	Update(entry *models.BannedUser) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormBannedUserRepository
}

// GormBannedUserRepository is the GORM implementation.
type GormBannedUserRepository struct {
	db *gorm.DB
}

// NewBannedUserRepository creates a ban list repository.
func NewBannedUserRepository(db *gorm.DB) *GormBannedUserRepository {
	return &GormBannedUserRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormBannedUserRepository) WithTx(tx *gorm.DB) *GormBannedUserRepository {
	if tx == nil {
		return r
	}
	return &GormBannedUserRepository{db: tx}
}

// GetByID fetches a ban entry by id.
func (r *GormBannedUserRepository) GetByID(id uint) (*models.BannedUser, error) {
	var entry models.BannedUser
	if err := r.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// FindActiveMatch returns the first active ban matching any of the phone
// forms or the lowercased email. Callers pass both the +91-prefixed and
// bare phone since the list may store either.
func (r *GormBannedUserRepository) FindActiveMatch(phones []string, email string) (*models.BannedUser, error) {
	query := r.db.Where("is_active = ?", true)
	switch {
	case len(phones) > 0 && email != "":
		query = query.Where("phone IN ? OR email = ?", phones, email)
	case len(phones) > 0:
		query = query.Where("phone IN ?", phones)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		return nil, nil
	}

	var entry models.BannedUser
	if err := query.First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// List returns ban entries matching the filter.
func (r *GormBannedUserRepository) List(filter BannedUserListFilter) ([]models.BannedUser, int64, error) {
	var entries []models.BannedUser
	query := r.db.Model(&models.BannedUser{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("phone LIKE ? OR email LIKE ?", like, like)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Create inserts a ban entry.
func (r *GormBannedUserRepository) Create(entry *models.BannedUser) error {
	return r.db.Create(entry).Error
}

// Update saves a ban entry.
func (r *GormBannedUserRepository) Update(entry *models.BannedUser) error {
	return r.db.Save(entry).Error
}

// Delete removes a ban entry.
func (r *GormBannedUserRepository) Delete(id uint) error {
	return r.db.Delete(&models.BannedUser{}, id).Error
}
