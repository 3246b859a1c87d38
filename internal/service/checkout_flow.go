package service

import (
	"regexp"
	"strings"
)

// CheckoutStep is a state of the checkout form.
type CheckoutStep int

// Steps in forward order. Submission is only possible from StepPayment.
const (
	StepDelivery CheckoutStep = iota
	StepAddress
	StepPayment
)

// String returns the wire name of a step.
func (s CheckoutStep) String() string {
	switch s {
	case StepDelivery:
		return "delivery"
	case StepAddress:
		return "address"
	case StepPayment:
		return "payment"
	default:
		return "unknown"
	}
}

// ParseCheckoutStep parses a wire step name.
func ParseCheckoutStep(name string) (CheckoutStep, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "delivery":
		return StepDelivery, true
	case "address":
		return StepAddress, true
	case "payment":
		return StepPayment, true
	default:
		return StepDelivery, false
	}
}

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// DeliveryForm holds the customer input collected across the checkout
// steps. Phone is raw input; it normalizes during validation.
type DeliveryForm struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Landmark1 string `json:"landmark1"`
	Landmark2 string `json:"landmark2"`
	Landmark3 string `json:"landmark3"`
}

// CheckoutFlow is the three-step checkout state machine. Forward moves
// pass through each step's gate in order; backward moves are always
// allowed. The zero value starts at the delivery step.
type CheckoutFlow struct {
	current CheckoutStep
}

// NewCheckoutFlow starts a flow at the delivery step.
func NewCheckoutFlow() *CheckoutFlow {
	return &CheckoutFlow{current: StepDelivery}
}

// Current returns the current step.
func (f *CheckoutFlow) Current() CheckoutStep {
	return f.current
}

// ValidateDeliveryStep gates delivery -> address: name, a normalizable
// phone and an address are required. Exactly one error returns per call.
func ValidateDeliveryStep(form DeliveryForm) error {
	if strings.TrimSpace(form.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(form.Phone) == "" {
		return ErrPhoneRequired
	}
	if NormalizeIndianMobile(form.Phone) == "" {
		return ErrPhoneInvalid
	}
	if strings.TrimSpace(form.Address) == "" {
		return ErrAddressRequired
	}
	return nil
}

// ValidateAddressStep gates address -> payment: state plus a 6-digit
// pincode not starting with zero.
func ValidateAddressStep(form DeliveryForm) error {
	if strings.TrimSpace(form.State) == "" {
		return ErrStateRequired
	}
	if !pincodePattern.MatchString(strings.TrimSpace(form.Pincode)) {
		return ErrPincodeInvalid
	}
	return nil
}

// Advance moves the flow to target. Backward moves always succeed.
// Forward moves run the gate of each intermediate step, so a jump from
// delivery straight to payment still has to pass the address gate; a
// failed gate leaves the flow where it is.
func (f *CheckoutFlow) Advance(target CheckoutStep, form DeliveryForm) error {
	if target <= f.current {
		f.current = target
		return nil
	}
	for step := f.current; step < target; step++ {
		if err := gateFor(step)(form); err != nil {
			return err
		}
	}
	f.current = target
	return nil
}

// ValidateThrough re-runs every gate up to and including the current
// step. Submission calls this so a submit attempted from an earlier step
// halts instead of proceeding.
func (f *CheckoutFlow) ValidateThrough(form DeliveryForm) error {
	if f.current < StepPayment {
		return ErrStepLocked
	}
	if err := ValidateDeliveryStep(form); err != nil {
		return err
	}
	return ValidateAddressStep(form)
}

func gateFor(step CheckoutStep) func(DeliveryForm) error {
	switch step {
	case StepDelivery:
		return ValidateDeliveryStep
	case StepAddress:
		return ValidateAddressStep
	default:
		return func(DeliveryForm) error { return nil }
	}
}
