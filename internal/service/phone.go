package service

import (
	"regexp"
	"strings"

	"github.com/royale-store/royale-api/internal/constants"
)

var indianMobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// NormalizeIndianMobile reduces raw input to the bare 10-digit form.
// Accepts optional +91 / 91 / 0 prefixes and ignores separators. Returns
// "" when the input is not a valid Indian mobile number.
func NormalizeIndianMobile(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case len(d) == 12 && strings.HasPrefix(d, "91"):
		d = d[2:]
	case len(d) == 11 && strings.HasPrefix(d, "0"):
		d = d[1:]
	}

	if !indianMobilePattern.MatchString(d) {
		return ""
	}
	return d
}

// FormatIndianPhone renders the canonical +91-prefixed form stored on
// orders and restriction rows.
func FormatIndianPhone(bare string) string {
	if bare == "" {
		return ""
	}
	return constants.PhoneCountryPrefix + bare
}

// phoneLookupForms returns both stored shapes of a phone for ban-list
// matching: the +91-prefixed form and the bare 10 digits.
func phoneLookupForms(bare string) []string {
	if bare == "" {
		return nil
	}
	return []string{FormatIndianPhone(bare), bare}
}
