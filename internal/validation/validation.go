// Package validation checks payment instruments before a payment is
// accepted: UPI virtual payment addresses, and card number / expiry / CVV
// for card payments. Card validation returns only the derived network and
// last four digits; the raw card number is discarded here and never
// persisted.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"gateway-service/internal/model"
)

// InstrumentError is a validation failure carrying the wire error code the
// HTTP layer returns to the merchant.
type InstrumentError struct {
	Code        string
	Description string
}

func (e *InstrumentError) Error() string {
	return e.Code + ": " + e.Description
}

var (
	ErrInvalidVPA        = &InstrumentError{Code: "BADREQUESTERROR", Description: "Invalid VPA"}
	ErrInvalidCard       = &InstrumentError{Code: "INVALIDCARD", Description: "Invalid card number"}
	ErrExpiredCard       = &InstrumentError{Code: "EXPIREDCARD", Description: "Invalid expiry date"}
	ErrInvalidCVV        = &InstrumentError{Code: "BADREQUESTERROR", Description: "Invalid CVV"}
	ErrUnsupportedMethod = &InstrumentError{Code: "BADREQUESTERROR", Description: "Invalid method"}
)

// CardInstrument is what survives card validation: the detected network and
// the last four digits.
type CardInstrument struct {
	Network string
	Last4   string
}

var (
	vpaRegexp      = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+$`)
	cvvRegexp      = regexp.MustCompile(`^[0-9]{3}$`)
	nonDigitRegexp = regexp.MustCompile(`[^0-9]`)
)

// ValidateVPA checks a UPI virtual payment address of the form
// localpart@provider.
func ValidateVPA(vpa string) error {
	if !vpaRegexp.MatchString(vpa) {
		return ErrInvalidVPA
	}
	return nil
}

// LuhnCheck reports whether cardNumber passes the Luhn checksum. Spaces and
// punctuation are stripped first; the digit count must be plausible for a
// card (13 to 19).
func LuhnCheck(cardNumber string) bool {
	digits := nonDigitRegexp.ReplaceAllString(cardNumber, "")
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// DetectNetwork derives the card network from the leading digits. Unknown
// prefixes map to "unknown" rather than failing validation.
func DetectNetwork(cardNumber string) string {
	num := nonDigitRegexp.ReplaceAllString(cardNumber, "")
	switch {
	case strings.HasPrefix(num, "4"):
		return model.NetworkVisa
	case len(num) >= 2 && num[0] == '5' && num[1] >= '1' && num[1] <= '5':
		return model.NetworkMastercard
	case strings.HasPrefix(num, "34") || strings.HasPrefix(num, "37"):
		return model.NetworkAmex
	case strings.HasPrefix(num, "60") || strings.HasPrefix(num, "65"):
		return model.NetworkRupay
	case len(num) >= 2 && num[0] == '8' && num[1] >= '1' && num[1] <= '9':
		return model.NetworkRupay
	default:
		return model.NetworkUnknown
	}
}

// ValidateExpiry checks a two-digit month and two-digit year against now.
// The current month is still valid; anything strictly before it is expired.
func ValidateExpiry(month, year string, now time.Time) error {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return ErrExpiredCard
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 0 || y > 99 {
		return ErrExpiredCard
	}

	currYear := now.Year() % 100
	currMonth := int(now.Month())
	if y < currYear || (y == currYear && m < currMonth) {
		return ErrExpiredCard
	}
	return nil
}

// ValidateCVV requires exactly three digits.
func ValidateCVV(cvv string) error {
	if !cvvRegexp.MatchString(cvv) {
		return ErrInvalidCVV
	}
	return nil
}

// ValidateCard runs the full card checks and returns the derived
// instrument data. The card number itself is not returned.
func ValidateCard(number, expiryMonth, expiryYear, cvv string, now time.Time) (CardInstrument, error) {
	if number == "" || !LuhnCheck(number) {
		return CardInstrument{}, ErrInvalidCard
	}
	if err := ValidateExpiry(expiryMonth, expiryYear, now); err != nil {
		return CardInstrument{}, err
	}
	if err := ValidateCVV(cvv); err != nil {
		return CardInstrument{}, err
	}

	digits := nonDigitRegexp.ReplaceAllString(number, "")
	return CardInstrument{
		Network: DetectNetwork(digits),
		Last4:   digits[len(digits)-4:],
	}, nil
}
