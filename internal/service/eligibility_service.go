package service

import (
	"strings"
	"time"

	"github.com/royale-store/royale-api/internal/constants"
	"github.com/royale-store/royale-api/internal/logger"
	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"
)

// failureMode states what an eligibility check does when its own
// infrastructure fails. The asymmetry is deliberate: the ban check blocks
// on errors, the rate-limit checks allow and log. Making the mode an
// explicit value keeps that visible and testable instead of buried in a
// blanket recover.
type failureMode int

const (
	failClosed failureMode = iota
	failOpen
)

// EligibilityService runs the pre-submission gates in order: ban list,
// policy agreement, cart, COD compatibility, then the two-tier rate
// limits. Every failure halts immediately with no side effects.
type EligibilityService struct {
	bannedRepo      repository.BannedUserRepository
	restrictionRepo repository.RestrictionRepository
}

// NewEligibilityService creates an eligibility service.
func NewEligibilityService(bannedRepo repository.BannedUserRepository, restrictionRepo repository.RestrictionRepository) *EligibilityService {
	return &EligibilityService{
		bannedRepo:      bannedRepo,
		restrictionRepo: restrictionRepo,
	}
}

// EligibilityInput is everything the guard needs for one submission.
type EligibilityInput struct {
	Phone         string // bare 10-digit form
	Email         string
	PaymentMethod string
	Items         []models.CartItem
	ClientIP      string // empty disables IP checks
	PolicyAgreed  bool
	Now           time.Time
}

// Check runs all gates and returns the first rejection.
func (s *EligibilityService) Check(input EligibilityInput) error {
	if err := s.checkBan(input); err != nil {
		return err
	}
	if !input.PolicyAgreed {
		return ErrPolicyNotAgreed
	}
	if len(input.Items) == 0 {
		return ErrEmptyCart
	}
	if err := checkCODEligibility(input.PaymentMethod, input.Items); err != nil {
		return err
	}
	return s.checkRateLimits(input)
}

// onCheckError applies a gate's failure mode to an infrastructure error:
// failClosed returns blockErr, failOpen logs and lets the submission
// continue.
func onCheckError(gate string, mode failureMode, err error, blockErr error) error {
	if mode == failClosed {
		logger.Errorw("eligibility_check_failed", "gate", gate, "error", err, "mode", "fail_closed")
		return blockErr
	}
	logger.Warnw("eligibility_check_failed", "gate", gate, "error", err, "mode", "fail_open")
	return nil
}

// checkBan matches the customer against active bans by both stored phone
// forms and the case-folded email. Runs failClosed: an infrastructure
// error here blocks the submission.
func (s *EligibilityService) checkBan(input EligibilityInput) error {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	entry, err := s.bannedRepo.FindActiveMatch(phoneLookupForms(input.Phone), email)
	if err != nil {
		return onCheckError("ban", failClosed, err, ErrCustomerBanned)
	}
	if entry != nil {
		return ErrCustomerBanned
	}
	return nil
}

func checkCODEligibility(paymentMethod string, items []models.CartItem) error {
	switch paymentMethod {
	case constants.PaymentMethodOnline:
		return nil
	case constants.PaymentMethodCOD:
		for _, item := range items {
			if !item.CashOnDelivery {
				return ErrCODNotAvailable
			}
		}
		return nil
	default:
		return ErrPaymentMethodInvalid
	}
}

// checkRateLimits applies the two-tier policy: an active individual
// override replaces the global limits entirely. Limit reads run failOpen.
func (s *EligibilityService) checkRateLimits(input EligibilityInput) error {
	phone := FormatIndianPhone(input.Phone)
	today := input.Now.Format("2006-01-02")

	restriction, err := s.restrictionRepo.GetActiveIndividualByPhone(phone)
	if err != nil {
		return onCheckError("rate_limit_individual_lookup", failOpen, err, nil)
	}

	if restriction != nil {
		return s.checkIndividualLimit(restriction, phone, input.PaymentMethod, today)
	}
	return s.checkGlobalLimits(phone, input.PaymentMethod, input.ClientIP, today)
}

func (s *EligibilityService) checkIndividualLimit(restriction *models.IndividualPhoneRestriction, phone, paymentMethod, today string) error {
	limit := restriction.OnlineDailyLimit
	if paymentMethod == constants.PaymentMethodCOD {
		limit = restriction.CODDailyLimit
	}
	if limit <= 0 {
		return nil
	}

	count, err := s.restrictionRepo.GetIndividualDailyCount(phone, paymentMethod, today)
	if err != nil {
		return onCheckError("rate_limit_individual_count", failOpen, err, nil)
	}
	if count >= limit {
		return &LimitExceededError{
			Tier:    "individual",
			Scope:   "phone",
			Method:  paymentMethod,
			Limit:   limit,
			Current: count,
		}
	}
	return nil
}

func (s *EligibilityService) checkGlobalLimits(phone, paymentMethod, clientIP, today string) error {
	config, err := s.restrictionRepo.GetConfig()
	if err != nil {
		return onCheckError("rate_limit_config", failOpen, err, nil)
	}
	if config == nil {
		return nil
	}

	enabled := config.OnlineRestrictionsEnabled
	phoneLimit := config.OnlinePhoneOrderLimit
	ipLimit := config.OnlineIPDailyOrderLimit
	if paymentMethod == constants.PaymentMethodCOD {
		enabled = config.CODRestrictionsEnabled
		phoneLimit = config.PhoneOrderLimit
		ipLimit = config.IPDailyOrderLimit
	}
	if !enabled {
		return nil
	}

	if phoneLimit > 0 {
		count, err := s.restrictionRepo.GetPhoneLifetimeCount(phone, paymentMethod)
		if err != nil {
			_ = onCheckError("rate_limit_phone_count", failOpen, err, nil)
		} else if count >= phoneLimit {
			return &LimitExceededError{
				Tier:    "global",
				Scope:   "phone",
				Method:  paymentMethod,
				Limit:   phoneLimit,
				Current: count,
			}
		}
	}

	if clientIP != "" && ipLimit > 0 {
		count, err := s.restrictionRepo.GetIPDailyCount(clientIP, paymentMethod, today)
		if err != nil {
			_ = onCheckError("rate_limit_ip_count", failOpen, err, nil)
		} else if count >= ipLimit {
			return &LimitExceededError{
				Tier:    "global",
				Scope:   "ip",
				Method:  paymentMethod,
				Limit:   ipLimit,
				Current: count,
			}
		}
	}
	return nil
}
