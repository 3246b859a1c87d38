package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/royale-store/royale-api/internal/constants"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupEligibilityTest(t *testing.T) (*EligibilityService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.BannedUser{},
		&models.IndividualPhoneRestriction{},
		&models.IndividualPhoneOrderCount{},
		&models.RestrictionConfig{},
		&models.PhoneOrderCount{},
		&models.OnlinePhoneOrderCount{},
		&models.IPOrderCount{},
		&models.OnlineIPOrderCount{},
	); err != nil {
		t.Fatalf("migrate eligibility models failed: %v", err)
	}
	service := NewEligibilityService(
		repository.NewBannedUserRepository(db),
		repository.NewRestrictionRepository(db),
	)
	return service, db
}

func eligibilityInput() EligibilityInput {
	return EligibilityInput{
		Phone:         "9876543210",
		Email:         "asha@example.com",
		PaymentMethod: constants.PaymentMethodCOD,
		Items: []models.CartItem{
			{ProductID: 1, ProductName: "Product", Quantity: 1, CashOnDelivery: true},
		},
		ClientIP:     "203.0.113.7",
		PolicyAgreed: true,
		Now:          time.Now(),
	}
}

func TestCheckBannedPhone(t *testing.T) {
	service, db := setupEligibilityTest(t)
	// Ban stored in the +91 form; input arrives bare.
	if err := db.Create(&models.BannedUser{Phone: "+919876543210", IsActive: true}).Error; err != nil {
		t.Fatalf("create ban failed: %v", err)
	}

	if err := service.Check(eligibilityInput()); !errors.Is(err, ErrCustomerBanned) {
		t.Fatalf("banned phone: got %v, want %v", err, ErrCustomerBanned)
	}
}

func TestCheckBannedBarePhoneForm(t *testing.T) {
	service, db := setupEligibilityTest(t)
	if err := db.Create(&models.BannedUser{Phone: "9876543210", IsActive: true}).Error; err != nil {
		t.Fatalf("create ban failed: %v", err)
	}

	if err := service.Check(eligibilityInput()); !errors.Is(err, ErrCustomerBanned) {
		t.Fatalf("banned bare phone: got %v, want %v", err, ErrCustomerBanned)
	}
}

func TestCheckBannedEmailCaseFolded(t *testing.T) {
	service, db := setupEligibilityTest(t)
	if err := db.Create(&models.BannedUser{Email: "asha@example.com", IsActive: true}).Error; err != nil {
		t.Fatalf("create ban failed: %v", err)
	}

	input := eligibilityInput()
	input.Phone = "9123456789"
	input.Email = "  ASHA@Example.COM "
	if err := service.Check(input); !errors.Is(err, ErrCustomerBanned) {
		t.Fatalf("banned email: got %v, want %v", err, ErrCustomerBanned)
	}
}

func TestCheckInactiveBanIgnored(t *testing.T) {
	service, db := setupEligibilityTest(t)
	ban := &models.BannedUser{Phone: "+919876543210", IsActive: false}
	if err := db.Create(ban).Error; err != nil {
		t.Fatalf("create ban failed: %v", err)
	}
	// GORM omits zero-value fields on create, so the default:true column
	// tag would silently override IsActive: false.
	if err := db.Model(ban).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate ban failed: %v", err)
	}

	if err := service.Check(eligibilityInput()); err != nil {
		t.Fatalf("inactive ban blocked checkout: %v", err)
	}
}

type erroringBanRepo struct {
	repository.BannedUserRepository
}

func (erroringBanRepo) FindActiveMatch(phones []string, email string) (*models.BannedUser, error) {
	return nil, errors.New("connection refused")
}

func TestCheckBanLookupFailureBlocks(t *testing.T) {
	_, db := setupEligibilityTest(t)
	service := NewEligibilityService(
		erroringBanRepo{},
		repository.NewRestrictionRepository(db),
	)

	// The ban gate fails closed with the same generic message.
	if err := service.Check(eligibilityInput()); !errors.Is(err, ErrCustomerBanned) {
		t.Fatalf("ban lookup failure: got %v, want %v", err, ErrCustomerBanned)
	}
}

func TestCheckPolicyNotAgreed(t *testing.T) {
	service, _ := setupEligibilityTest(t)
	input := eligibilityInput()
	input.PolicyAgreed = false
	if err := service.Check(input); !errors.Is(err, ErrPolicyNotAgreed) {
		t.Fatalf("policy gate: got %v, want %v", err, ErrPolicyNotAgreed)
	}
}

func TestCheckEmptyCart(t *testing.T) {
	service, _ := setupEligibilityTest(t)
	input := eligibilityInput()
	input.Items = nil
	if err := service.Check(input); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("empty cart gate: got %v, want %v", err, ErrEmptyCart)
	}
}

func TestCheckCODIneligibleItem(t *testing.T) {
	service, _ := setupEligibilityTest(t)
	input := eligibilityInput()
	input.Items = append(input.Items, models.CartItem{
		ProductID: 2, ProductName: "Prepaid Only", Quantity: 1, CashOnDelivery: false,
	})

	if err := service.Check(input); !errors.Is(err, ErrCODNotAvailable) {
		t.Fatalf("cod gate: got %v, want %v", err, ErrCODNotAvailable)
	}

	// The same cart goes through with online payment.
	input.PaymentMethod = constants.PaymentMethodOnline
	if err := service.Check(input); err != nil {
		t.Fatalf("online payment blocked: %v", err)
	}
}

func TestCheckUnknownPaymentMethod(t *testing.T) {
	service, _ := setupEligibilityTest(t)
	input := eligibilityInput()
	input.PaymentMethod = "wallet"
	if err := service.Check(input); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("payment method gate: got %v, want %v", err, ErrPaymentMethodInvalid)
	}
}

func TestCheckIndividualDailyLimit(t *testing.T) {
	service, db := setupEligibilityTest(t)
	if err := db.Create(&models.IndividualPhoneRestriction{
		Phone:         "+919876543210",
		CODDailyLimit: 2,
		IsActive:      true,
	}).Error; err != nil {
		t.Fatalf("create restriction failed: %v", err)
	}

	input := eligibilityInput()
	today := input.Now.Format("2006-01-02")

	if err := service.Check(input); err != nil {
		t.Fatalf("first order under limit blocked: %v", err)
	}

	if err := db.Create(&models.IndividualPhoneOrderCount{
		Phone:         "+919876543210",
		PaymentMethod: constants.PaymentMethodCOD,
		OrderDate:     today,
		OrderCount:    2,
	}).Error; err != nil {
		t.Fatalf("create counter failed: %v", err)
	}

	err := service.Check(input)
	var limitErr *LimitExceededError
	if !errors.As(err, &limitErr) {
		t.Fatalf("third order: got %v, want LimitExceededError", err)
	}
	if limitErr.Tier != "individual" || limitErr.Limit != 2 {
		t.Fatalf("limit error = %+v", limitErr)
	}
}

func TestCheckIndividualZeroLimitUnlimited(t *testing.T) {
	service, db := setupEligibilityTest(t)
	if err := db.Create(&models.IndividualPhoneRestriction{
		Phone:         "+919876543210",
		CODDailyLimit: 0,
		IsActive:      true,
	}).Error; err != nil {
		t.Fatalf("create restriction failed: %v", err)
	}
	input := eligibilityInput()
	if err := db.Create(&models.IndividualPhoneOrderCount{
		Phone:         "+919876543210",
		PaymentMethod: constants.PaymentMethodCOD,
		OrderDate:     input.Now.Format("2006-01-02"),
		OrderCount:    50,
	}).Error; err != nil {
		t.Fatalf("create counter failed: %v", err)
	}

	if err := service.Check(input); err != nil {
		t.Fatalf("zero limit blocked checkout: %v", err)
	}
}

func TestCheckIndividualOverrideSkipsGlobalLimits(t *testing.T) {
	service, db := setupEligibilityTest(t)
	if err := db.Create(&models.RestrictionConfig{
		CODRestrictionsEnabled: true,
		PhoneOrderLimit:        1,
	}).Error; err != nil {
		t.Fatalf("create config failed: %v", err)
	}
	if err := db.Create(&models.PhoneOrderCount{Phone: "+919876543210", OrderCount: 5}).Error; err != nil {
		t.Fatalf("create counter failed: %v", err)
	}
	// Over the global limit, but the active override takes precedence.
	if err := db.Create(&models.IndividualPhoneRestriction{
		Phone:         "+919876543210",
		CODDailyLimit: 10,
		IsActive:      true,
	}).Error; err != nil {
		t.Fatalf("create restriction failed: %v", err)
	}

	if err := service.Check(eligibilityInput()); err != nil {
		t.Fatalf("override did not replace global limits: %v", err)
	}
}

func TestCheckGlobalDisabledUnlimited(t *testing.T) {
	service, db := setupEligibilityTest(t)
	if err := db.Create(&models.RestrictionConfig{
		CODRestrictionsEnabled: false,
		PhoneOrderLimit:        1,
	}).Error; err != nil {
		t.Fatalf("create config failed: %v", err)
	}
	if err := db.Create(&models.PhoneOrderCount{Phone: "+919876543210", OrderCount: 5}).Error; err != nil {
		t.Fatalf("create counter failed: %v", err)
	}

	if err := service.Check(eligibilityInput()); err != nil {
		t.Fatalf("disabled family still enforced: %v", err)
	}
}

func TestCheckGlobalPhoneLimit(t *testing.T) {
	service, db := setupEligibilityTest(t)
	if err := db.Create(&models.RestrictionConfig{
		CODRestrictionsEnabled: true,
		PhoneOrderLimit:        3,
	}).Error; err != nil {
		t.Fatalf("create config failed: %v", err)
	}
	if err := db.Create(&models.PhoneOrderCount{Phone: "+919876543210", OrderCount: 3}).Error; err != nil {
		t.Fatalf("create counter failed: %v", err)
	}

	err := service.Check(eligibilityInput())
	var limitErr *LimitExceededError
	if !errors.As(err, &limitErr) {
		t.Fatalf("phone limit: got %v, want LimitExceededError", err)
	}
	if limitErr.Tier != "global" || limitErr.Scope != "phone" {
		t.Fatalf("limit error = %+v", limitErr)
	}
}

func TestCheckGlobalIPLimitSkippedWithoutIP(t *testing.T) {
	service, db := setupEligibilityTest(t)
	input := eligibilityInput()
	if err := db.Create(&models.RestrictionConfig{
		CODRestrictionsEnabled: true,
		IPDailyOrderLimit:      1,
	}).Error; err != nil {
		t.Fatalf("create config failed: %v", err)
	}
	if err := db.Create(&models.IPOrderCount{
		IPAddress:  "203.0.113.7",
		OrderDate:  input.Now.Format("2006-01-02"),
		OrderCount: 1,
	}).Error; err != nil {
		t.Fatalf("create counter failed: %v", err)
	}

	var limitErr *LimitExceededError
	if err := service.Check(input); !errors.As(err, &limitErr) {
		t.Fatalf("ip limit with ip: got %v, want LimitExceededError", err)
	}

	input.ClientIP = ""
	if err := service.Check(input); err != nil {
		t.Fatalf("ip limit without ip blocked checkout: %v", err)
	}
}

type erroringRestrictionRepo struct {
	repository.RestrictionRepository
}

func (erroringRestrictionRepo) GetActiveIndividualByPhone(phone string) (*models.IndividualPhoneRestriction, error) {
	return nil, errors.New("connection refused")
}

func TestCheckRateLimitLookupFailureAllows(t *testing.T) {
	_, db := setupEligibilityTest(t)
	service := NewEligibilityService(
		repository.NewBannedUserRepository(db),
		erroringRestrictionRepo{},
	)

	// Rate-limit infrastructure failures fail open.
	if err := service.Check(eligibilityInput()); err != nil {
		t.Fatalf("rate limit lookup failure blocked checkout: %v", err)
	}
}

type erroringCountRepo struct {
	repository.RestrictionRepository
}

func (r erroringCountRepo) GetPhoneLifetimeCount(phone, paymentMethod string) (int, error) {
	return 0, errors.New("connection refused")
}

func TestCheckGlobalCountFailureAllows(t *testing.T) {
	_, db := setupEligibilityTest(t)
	if err := db.Create(&models.RestrictionConfig{
		CODRestrictionsEnabled: true,
		PhoneOrderLimit:        1,
	}).Error; err != nil {
		t.Fatalf("create config failed: %v", err)
	}
	service := NewEligibilityService(
		repository.NewBannedUserRepository(db),
		erroringCountRepo{RestrictionRepository: repository.NewRestrictionRepository(db)},
	)

	input := eligibilityInput()
	input.ClientIP = ""
	if err := service.Check(input); err != nil {
		t.Fatalf("count failure blocked checkout: %v", err)
	}
}
