package repository

import (
	"errors"

	"github.com/royale-store/royale-api/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface. Carts are keyed by an
// opaque session token.
type CartRepository interface {
	ListBySession(sessionID string) ([]models.CartItem, error)
	GetLine(sessionID string, productID uint, variantID string) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	UpdateQuantity(id uint, quantity int) error
	DeleteLine(id uint) error
	ClearSession(sessionID string) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListBySession returns every cart line for a session.
func (r *GormCartRepository) ListBySession(sessionID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("session_id = ?", sessionID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetLine fetches one cart line by its natural key.
func (r *GormCartRepository) GetLine(sessionID string, productID uint, variantID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.
		Where("session_id = ? AND product_id = ? AND variant_id = ?", sessionID, productID, variantID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Upsert inserts a cart line, or adds quantity when the line exists.
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	existing, err := r.GetLine(item.SessionID, item.ProductID, item.VariantID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(item).Error
	}
	return r.db.Model(&models.CartItem{}).
		Where("id = ?", existing.ID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
}

// UpdateQuantity sets a line's quantity.
func (r *GormCartRepository) UpdateQuantity(id uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity).Error
}

// DeleteLine removes one cart line.
func (r *GormCartRepository) DeleteLine(id uint) error {
	return r.db.Delete(&models.CartItem{}, id).Error
}

// ClearSession removes every line for a session.
func (r *GormCartRepository) ClearSession(sessionID string) error {
	return r.db.Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error
}
