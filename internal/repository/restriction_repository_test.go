package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/royale-store/royale-api/internal/constants"
	"github.com/royale-store/royale-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRestrictionRepositoryTest(t *testing.T) (*GormRestrictionRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.IndividualPhoneRestriction{},
		&models.IndividualPhoneOrderCount{},
		&models.RestrictionConfig{},
		&models.PhoneOrderCount{},
		&models.OnlinePhoneOrderCount{},
		&models.IPOrderCount{},
		&models.OnlineIPOrderCount{},
	); err != nil {
		t.Fatalf("migrate restriction models failed: %v", err)
	}
	return NewRestrictionRepository(db), db
}

func TestIncrementIndividualDailyCountUpserts(t *testing.T) {
	repo, _ := setupRestrictionRepositoryTest(t)
	phone := "+919876543210"
	day := "2026-08-28"

	count, err := repo.GetIndividualDailyCount(phone, constants.PaymentMethodCOD, day)
	if err != nil || count != 0 {
		t.Fatalf("missing row: got (%d, %v), want (0, nil)", count, err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.IncrementIndividualDailyCount(phone, constants.PaymentMethodCOD, day); err != nil {
			t.Fatalf("increment %d failed: %v", i, err)
		}
	}

	count, err = repo.GetIndividualDailyCount(phone, constants.PaymentMethodCOD, day)
	if err != nil {
		t.Fatalf("read count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}

	// Another day starts its own counter.
	count, err = repo.GetIndividualDailyCount(phone, constants.PaymentMethodCOD, "2026-08-29")
	if err != nil || count != 0 {
		t.Fatalf("next day: got (%d, %v), want (0, nil)", count, err)
	}
}

func TestIncrementPhoneLifetimeCountPerFamily(t *testing.T) {
	repo, _ := setupRestrictionRepositoryTest(t)
	phone := "+919876543210"

	if err := repo.IncrementPhoneLifetimeCount(phone, constants.PaymentMethodCOD, "2026-08-28"); err != nil {
		t.Fatalf("cod increment failed: %v", err)
	}
	if err := repo.IncrementPhoneLifetimeCount(phone, constants.PaymentMethodCOD, "2026-08-29"); err != nil {
		t.Fatalf("cod increment failed: %v", err)
	}
	if err := repo.IncrementPhoneLifetimeCount(phone, constants.PaymentMethodOnline, "2026-08-29"); err != nil {
		t.Fatalf("online increment failed: %v", err)
	}

	codCount, err := repo.GetPhoneLifetimeCount(phone, constants.PaymentMethodCOD)
	if err != nil || codCount != 2 {
		t.Fatalf("cod count: got (%d, %v), want (2, nil)", codCount, err)
	}
	onlineCount, err := repo.GetPhoneLifetimeCount(phone, constants.PaymentMethodOnline)
	if err != nil || onlineCount != 1 {
		t.Fatalf("online count: got (%d, %v), want (1, nil)", onlineCount, err)
	}
}

func TestIncrementIPDailyCountPerFamilyAndDay(t *testing.T) {
	repo, _ := setupRestrictionRepositoryTest(t)
	ip := "203.0.113.7"

	for i := 0; i < 2; i++ {
		if err := repo.IncrementIPDailyCount(ip, constants.PaymentMethodCOD, "2026-08-28"); err != nil {
			t.Fatalf("increment failed: %v", err)
		}
	}
	if err := repo.IncrementIPDailyCount(ip, constants.PaymentMethodOnline, "2026-08-28"); err != nil {
		t.Fatalf("online increment failed: %v", err)
	}

	count, err := repo.GetIPDailyCount(ip, constants.PaymentMethodCOD, "2026-08-28")
	if err != nil || count != 2 {
		t.Fatalf("cod ip count: got (%d, %v), want (2, nil)", count, err)
	}
	count, err = repo.GetIPDailyCount(ip, constants.PaymentMethodOnline, "2026-08-28")
	if err != nil || count != 1 {
		t.Fatalf("online ip count: got (%d, %v), want (1, nil)", count, err)
	}
	count, err = repo.GetIPDailyCount(ip, constants.PaymentMethodCOD, "2026-08-29")
	if err != nil || count != 0 {
		t.Fatalf("next day ip count: got (%d, %v), want (0, nil)", count, err)
	}
}

func TestGetActiveIndividualByPhoneIgnoresInactive(t *testing.T) {
	repo, db := setupRestrictionRepositoryTest(t)
	inactive := &models.IndividualPhoneRestriction{
		Phone:         "+919876543210",
		CODDailyLimit: 2,
		IsActive:      false,
	}
	if err := db.Create(inactive).Error; err != nil {
		t.Fatalf("create restriction failed: %v", err)
	}
	// GORM omits zero-value fields on create, so the default:true column
	// tag would silently override IsActive: false.
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate restriction failed: %v", err)
	}

	restriction, err := repo.GetActiveIndividualByPhone("+919876543210")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if restriction != nil {
		t.Fatalf("inactive restriction returned: %+v", restriction)
	}
}

func TestRestrictionConfigSingleton(t *testing.T) {
	repo, _ := setupRestrictionRepositoryTest(t)

	config, err := repo.GetConfig()
	if err != nil {
		t.Fatalf("read missing config failed: %v", err)
	}
	if config != nil {
		t.Fatalf("missing config = %+v, want nil", config)
	}

	if err := repo.UpdateConfig(&models.RestrictionConfig{
		CODRestrictionsEnabled: true,
		PhoneOrderLimit:        3,
	}); err != nil {
		t.Fatalf("create config failed: %v", err)
	}
	first, err := repo.GetConfig()
	if err != nil || first == nil {
		t.Fatalf("read config: got (%+v, %v)", first, err)
	}

	// A second write updates the same row.
	if err := repo.UpdateConfig(&models.RestrictionConfig{
		CODRestrictionsEnabled: false,
		PhoneOrderLimit:        5,
	}); err != nil {
		t.Fatalf("update config failed: %v", err)
	}
	second, err := repo.GetConfig()
	if err != nil {
		t.Fatalf("reread config failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("config id changed from %d to %d", first.ID, second.ID)
	}
	if second.PhoneOrderLimit != 5 || second.CODRestrictionsEnabled {
		t.Fatalf("config = %+v", second)
	}
}
