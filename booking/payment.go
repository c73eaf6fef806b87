package booking

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	cardNumberRgx = regexp.MustCompile(`^\d{16}$`)
	expiryRgx     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRgx        = regexp.MustCompile(`^\d{3,4}$`)
)

// clock is swapped in tests that pin the expiry comparison.
var clock = time.Now

// PaymentInput is transient card data. It is never persisted and callers
// clear it once the booking is confirmed or the payment screen is left.
// Fields are declared in validation order; one rule reports per attempt.
type PaymentInput struct {
	CardNumber string `validate:"card"`
	ExpiryDate string `validate:"expiry"`
	CVV        string `validate:"cvv"`
	CardHolder string `validate:"cardholder"`
}

// ValidationError carries the first failing payment rule as a message ready
// for the form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newPaymentValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("card", validateCardNumber)
	_ = v.RegisterValidation("expiry", validateExpiry)
	_ = v.RegisterValidation("cvv", validateCVV)
	_ = v.RegisterValidation("cardholder", validateCardHolder)

	return v
}

var paymentValidator = newPaymentValidator()

// ValidatePayment checks the card fields in order {number, expiry, CVV,
// name} and returns the first violation as a *ValidationError, or nil when
// every rule passes.
func ValidatePayment(input PaymentInput) error {
	err := paymentValidator.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return &ValidationError{Field: first.Field(), Message: paymentMessage(first.Tag())}
	}
	return err
}

func paymentMessage(tag string) string {
	switch tag {
	case "card":
		return "Please enter a valid 16-digit card number"
	case "expiry":
		return "Please enter a valid expiry date (MM/YY)"
	case "cvv":
		return "Please enter a valid 3 or 4-digit CVV"
	case "cardholder":
		return "Please enter card holder name"
	default:
		return "Invalid payment details"
	}
}

func validateCardNumber(fl validator.FieldLevel) bool {
	stripped := strings.ReplaceAll(fl.Field().String(), " ", "")
	return cardNumberRgx.MatchString(stripped)
}

func validateExpiry(fl validator.FieldLevel) bool {
	return expiryValid(fl.Field().String(), clock())
}

// expiryValid enforces strict MM/YY and rejects pairs strictly before the
// current month. Two-digit years compare against the current year mod 100,
// so "12/99" reads as 2099, never 1999.
func expiryValid(value string, now time.Time) bool {
	if !expiryRgx.MatchString(value) {
		return false
	}
	parts := strings.SplitN(value, "/", 2)
	month, _ := strconv.Atoi(parts[0])
	year, _ := strconv.Atoi(parts[1])

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	return year > currentYear || (year == currentYear && month >= currentMonth)
}

func validateCVV(fl validator.FieldLevel) bool {
	return cvvRgx.MatchString(fl.Field().String())
}

func validateCardHolder(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// FormatCardNumber normalizes keystroke input to at most 16 digits grouped
// in runs of four for display. Validation always runs on the stripped form.
func FormatCardNumber(value string) string {
	digits := digitsOnly(value, 16)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry normalizes keystroke input to MMYY digits with the slash
// inserted after the month.
func FormatExpiry(value string) string {
	digits := digitsOnly(value, 4)
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

func digitsOnly(value string, limit int) string {
	var b strings.Builder
	for _, r := range value {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == limit {
			break
		}
	}
	return b.String()
}
