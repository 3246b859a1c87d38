package service

import (
	"strings"

	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"
)

// RestrictionAdminService backs the backoffice screens for the ban list,
// the per-phone overrides, and the global rate-limit config.
type RestrictionAdminService struct {
	bannedRepo      repository.BannedUserRepository
	restrictionRepo repository.RestrictionRepository
}

// NewRestrictionAdminService creates the admin service.
func NewRestrictionAdminService(bannedRepo repository.BannedUserRepository, restrictionRepo repository.RestrictionRepository) *RestrictionAdminService {
	return &RestrictionAdminService{
		bannedRepo:      bannedRepo,
		restrictionRepo: restrictionRepo,
	}
}

// ListBans returns ban entries for the backoffice.
func (s *RestrictionAdminService) ListBans(filter repository.BannedUserListFilter) ([]models.BannedUser, int64, error) {
	return s.bannedRepo.List(filter)
}

// CreateBan adds a ban entry. The phone stores in the canonical +91 form
// when it normalizes; emails store case-folded.
func (s *RestrictionAdminService) CreateBan(entry *models.BannedUser) error {
	normalizeBanEntry(entry)
	if entry.Phone == "" && entry.Email == "" {
		return ErrPhoneRequired
	}
	return s.bannedRepo.Create(entry)
}

// UpdateBan saves a ban entry.
func (s *RestrictionAdminService) UpdateBan(entry *models.BannedUser) error {
	normalizeBanEntry(entry)
	return s.bannedRepo.Update(entry)
}

// DeleteBan removes a ban entry.
func (s *RestrictionAdminService) DeleteBan(id uint) error {
	return s.bannedRepo.Delete(id)
}

func normalizeBanEntry(entry *models.BannedUser) {
	entry.Email = strings.ToLower(strings.TrimSpace(entry.Email))
	entry.Phone = strings.TrimSpace(entry.Phone)
	if bare := NormalizeIndianMobile(entry.Phone); bare != "" {
		entry.Phone = FormatIndianPhone(bare)
	}
}

// ListIndividualRestrictions returns the per-phone overrides.
func (s *RestrictionAdminService) ListIndividualRestrictions(filter repository.RestrictionListFilter) ([]models.IndividualPhoneRestriction, int64, error) {
	return s.restrictionRepo.ListIndividual(filter)
}

// CreateIndividualRestriction adds a per-phone override. The phone must
// normalize; limits at or below zero mean unlimited for that method.
func (s *RestrictionAdminService) CreateIndividualRestriction(restriction *models.IndividualPhoneRestriction) error {
	bare := NormalizeIndianMobile(restriction.Phone)
	if bare == "" {
		return ErrPhoneInvalid
	}
	restriction.Phone = FormatIndianPhone(bare)
	return s.restrictionRepo.CreateIndividual(restriction)
}

// UpdateIndividualRestriction saves a per-phone override.
func (s *RestrictionAdminService) UpdateIndividualRestriction(restriction *models.IndividualPhoneRestriction) error {
	bare := NormalizeIndianMobile(restriction.Phone)
	if bare == "" {
		return ErrPhoneInvalid
	}
	restriction.Phone = FormatIndianPhone(bare)
	return s.restrictionRepo.UpdateIndividual(restriction)
}

// DeleteIndividualRestriction removes a per-phone override.
func (s *RestrictionAdminService) DeleteIndividualRestriction(id uint) error {
	return s.restrictionRepo.DeleteIndividual(id)
}

// GetConfig returns the global rate-limit config, defaults when unset.
func (s *RestrictionAdminService) GetConfig() (*models.RestrictionConfig, error) {
	config, err := s.restrictionRepo.GetConfig()
	if err != nil {
		return nil, err
	}
	if config == nil {
		return &models.RestrictionConfig{}, nil
	}
	return config, nil
}

// UpdateConfig saves the global rate-limit config.
func (s *RestrictionAdminService) UpdateConfig(config *models.RestrictionConfig) error {
	return s.restrictionRepo.UpdateConfig(config)
}
