package repository

import (
	"errors"

	"github.com/royale-store/royale-api/internal/constants"
	"github.com/royale-store/royale-api/internal/models"

	"gorm.io/gorm"
)

// RestrictionRepository is the data access interface for order rate limits:
// the individual per-phone overrides, the global singleton config, and the
// four global counter tables (phone/IP per payment family).
type RestrictionRepository interface {
	GetActiveIndividualByPhone(phone string) (*models.IndividualPhoneRestriction, error)
	GetIndividualByID(id uint) (*models.IndividualPhoneRestriction, error)
	ListIndividual(filter RestrictionListFilter) ([]models.IndividualPhoneRestriction, int64, error)
	CreateIndividual(restriction *models.IndividualPhoneRestriction) error
	UpdateIndividual(restriction *models.IndividualPhoneRestriction) error
	DeleteIndividual(id uint) error

	GetIndividualDailyCount(phone, paymentMethod, orderDate string) (int, error)
	IncrementIndividualDailyCount(phone, paymentMethod, orderDate string) error

	GetConfig() (*models.RestrictionConfig, error)
	UpdateConfig(config *models.RestrictionConfig) error

	GetPhoneLifetimeCount(phone, paymentMethod string) (int, error)
	IncrementPhoneLifetimeCount(phone, paymentMethod, orderDate string) error

	GetIPDailyCount(ip, paymentMethod, orderDate string) (int, error)
	IncrementIPDailyCount(ip, paymentMethod, orderDate string) error

	WithTx(tx *gorm.DB) *GormRestrictionRepository
}

// GormRestrictionRepository is the GORM implementation.
type GormRestrictionRepository struct {
	db *gorm.DB
}

// NewRestrictionRepository creates a restriction repository.
func NewRestrictionRepository(db *gorm.DB) *GormRestrictionRepository {
	return &GormRestrictionRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormRestrictionRepository) WithTx(tx *gorm.DB) *GormRestrictionRepository {
	if tx == nil {
		return r
	}
	return &GormRestrictionRepository{db: tx}
}

// GetActiveIndividualByPhone fetches the active override for a phone.
func (r *GormRestrictionRepository) GetActiveIndividualByPhone(phone string) (*models.IndividualPhoneRestriction, error) {
	var restriction models.IndividualPhoneRestriction
	if err := r.db.
		Where("phone = ? AND is_active = ?", phone, true).
		First(&restriction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restriction, nil
}

// GetIndividualByID fetches an override by id.
func (r *GormRestrictionRepository) GetIndividualByID(id uint) (*models.IndividualPhoneRestriction, error) {
	var restriction models.IndividualPhoneRestriction
	if err := r.db.First(&restriction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restriction, nil
}

// ListIndividual returns overrides matching the filter.
func (r *GormRestrictionRepository) ListIndividual(filter RestrictionListFilter) ([]models.IndividualPhoneRestriction, int64, error) {
	var restrictions []models.IndividualPhoneRestriction
	query := r.db.Model(&models.IndividualPhoneRestriction{})

	if filter.Phone != "" {
		query = query.Where("phone = ?", filter.Phone)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&restrictions).Error; err != nil {
		return nil, 0, err
	}
	return restrictions, total, nil
}

// CreateIndividual inserts an override.
func (r *GormRestrictionRepository) CreateIndividual(restriction *models.IndividualPhoneRestriction) error {
	return r.db.Create(restriction).Error
}

// UpdateIndividual saves an override.
func (r *GormRestrictionRepository) UpdateIndividual(restriction *models.IndividualPhoneRestriction) error {
	return r.db.Save(restriction).Error
}

// DeleteIndividual removes an override.
func (r *GormRestrictionRepository) DeleteIndividual(id uint) error {
	return r.db.Delete(&models.IndividualPhoneRestriction{}, id).Error
}

// GetIndividualDailyCount reads today's count for (phone, method, day).
// Missing row means zero.
func (r *GormRestrictionRepository) GetIndividualDailyCount(phone, paymentMethod, orderDate string) (int, error) {
	var row models.IndividualPhoneOrderCount
	if err := r.db.
		Where("phone = ? AND payment_method = ? AND order_date = ?", phone, paymentMethod, orderDate).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.OrderCount, nil
}

// IncrementIndividualDailyCount bumps the (phone, method, day) counter.
// Update-then-insert against the unique key keeps concurrent submissions
// from losing increments; a duplicate-key insert falls back to the update.
func (r *GormRestrictionRepository) IncrementIndividualDailyCount(phone, paymentMethod, orderDate string) error {
	result := r.db.Model(&models.IndividualPhoneOrderCount{}).
		Where("phone = ? AND payment_method = ? AND order_date = ?", phone, paymentMethod, orderDate).
		UpdateColumn("order_count", gorm.Expr("order_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	err := r.db.Create(&models.IndividualPhoneOrderCount{
		Phone:         phone,
		PaymentMethod: paymentMethod,
		OrderDate:     orderDate,
		OrderCount:    1,
	}).Error
	if err == nil {
		return nil
	}
	// Lost the insert race; the row exists now.
	return r.db.Model(&models.IndividualPhoneOrderCount{}).
		Where("phone = ? AND payment_method = ? AND order_date = ?", phone, paymentMethod, orderDate).
		UpdateColumn("order_count", gorm.Expr("order_count + 1")).Error
}

// GetConfig reads the singleton global restriction config. Missing row
// returns nil, which callers treat as all restrictions disabled.
func (r *GormRestrictionRepository) GetConfig() (*models.RestrictionConfig, error) {
	var config models.RestrictionConfig
	if err := r.db.Order("id asc").First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

// UpdateConfig saves the singleton config, creating it on first write.
func (r *GormRestrictionRepository) UpdateConfig(config *models.RestrictionConfig) error {
	existing, err := r.GetConfig()
	if err != nil {
		return err
	}
	if existing != nil {
		config.ID = existing.ID
	}
	return r.db.Save(config).Error
}

// GetPhoneLifetimeCount reads the lifetime counter for a phone in the
// given payment family.
func (r *GormRestrictionRepository) GetPhoneLifetimeCount(phone, paymentMethod string) (int, error) {
	if paymentMethod == constants.PaymentMethodCOD {
		var row models.PhoneOrderCount
		if err := r.db.Where("phone = ?", phone).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, nil
			}
			return 0, err
		}
		return row.OrderCount, nil
	}
	var row models.OnlinePhoneOrderCount
	if err := r.db.Where("phone = ?", phone).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.OrderCount, nil
}

// IncrementPhoneLifetimeCount bumps the lifetime counter for a phone and
// stamps the last order date.
func (r *GormRestrictionRepository) IncrementPhoneLifetimeCount(phone, paymentMethod, orderDate string) error {
	var model interface{}
	if paymentMethod == constants.PaymentMethodCOD {
		model = &models.PhoneOrderCount{}
	} else {
		model = &models.OnlinePhoneOrderCount{}
	}

	result := r.db.Model(model).
		Where("phone = ?", phone).
		UpdateColumns(map[string]interface{}{
			"order_count":     gorm.Expr("order_count + 1"),
			"last_order_date": orderDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var err error
	if paymentMethod == constants.PaymentMethodCOD {
		err = r.db.Create(&models.PhoneOrderCount{Phone: phone, OrderCount: 1, LastOrderDate: orderDate}).Error
	} else {
		err = r.db.Create(&models.OnlinePhoneOrderCount{Phone: phone, OrderCount: 1, LastOrderDate: orderDate}).Error
	}
	if err == nil {
		return nil
	}
	return r.db.Model(model).
		Where("phone = ?", phone).
		UpdateColumns(map[string]interface{}{
			"order_count":     gorm.Expr("order_count + 1"),
			"last_order_date": orderDate,
		}).Error
}

// GetIPDailyCount reads today's counter for an IP in the given family.
func (r *GormRestrictionRepository) GetIPDailyCount(ip, paymentMethod, orderDate string) (int, error) {
	if paymentMethod == constants.PaymentMethodCOD {
		var row models.IPOrderCount
		if err := r.db.Where("ip_address = ? AND order_date = ?", ip, orderDate).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, nil
			}
			return 0, err
		}
		return row.OrderCount, nil
	}
	var row models.OnlineIPOrderCount
	if err := r.db.Where("ip_address = ? AND order_date = ?", ip, orderDate).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.OrderCount, nil
}

// IncrementIPDailyCount bumps today's counter for an IP.
func (r *GormRestrictionRepository) IncrementIPDailyCount(ip, paymentMethod, orderDate string) error {
	var model interface{}
	if paymentMethod == constants.PaymentMethodCOD {
		model = &models.IPOrderCount{}
	} else {
		model = &models.OnlineIPOrderCount{}
	}

	result := r.db.Model(model).
		Where("ip_address = ? AND order_date = ?", ip, orderDate).
		UpdateColumn("order_count", gorm.Expr("order_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var err error
	if paymentMethod == constants.PaymentMethodCOD {
		err = r.db.Create(&models.IPOrderCount{IPAddress: ip, OrderDate: orderDate, OrderCount: 1}).Error
	} else {
		err = r.db.Create(&models.OnlineIPOrderCount{IPAddress: ip, OrderDate: orderDate, OrderCount: 1}).Error
	}
	if err == nil {
		return nil
	}
	return r.db.Model(model).
		Where("ip_address = ? AND order_date = ?", ip, orderDate).
		UpdateColumn("order_count", gorm.Expr("order_count + 1")).Error
}
