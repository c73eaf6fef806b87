package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := clock
	clock = func() time.Time { return now }
	t.Cleanup(func() { clock = prev })
}

func validInput() PaymentInput {
	return PaymentInput{
		CardNumber: "4111 1111 1111 1111",
		ExpiryDate: "12/30",
		CVV:        "123",
		CardHolder: "Ada Lovelace",
	}
}

func TestValidatePayment_AcceptsValidInput(t *testing.T) {
	pinClock(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))

	assert.NoError(t, ValidatePayment(validInput()))
}

func TestValidatePayment_CardNumberRules(t *testing.T) {
	pinClock(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))

	for _, card := range []string{"", "4111-1111-1111-1111", "4111 1111 1111", "abcd efgh ijkl mnop"} {
		input := validInput()
		input.CardNumber = card

		err := ValidatePayment(input)
		require.Error(t, err, "card %q", card)
		assert.Equal(t, "Please enter a valid 16-digit card number", err.Error())
	}
}

func TestValidatePayment_ExpiryRules(t *testing.T) {
	pinClock(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))

	for _, expiry := range []string{"", "13/30", "00/30", "1/30", "09/2026", "08/26"} {
		input := validInput()
		input.ExpiryDate = expiry

		err := ValidatePayment(input)
		require.Error(t, err, "expiry %q", expiry)
		assert.Equal(t, "Please enter a valid expiry date (MM/YY)", err.Error())
	}

	input := validInput()
	input.ExpiryDate = "09/26"
	assert.NoError(t, ValidatePayment(input), "current month is still valid")
}

func TestValidatePayment_CVVRules(t *testing.T) {
	pinClock(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))

	for _, cvv := range []string{"", "12", "12345", "12a"} {
		input := validInput()
		input.CVV = cvv

		err := ValidatePayment(input)
		require.Error(t, err, "cvv %q", cvv)
		assert.Equal(t, "Please enter a valid 3 or 4-digit CVV", err.Error())
	}

	input := validInput()
	input.CVV = "1234"
	assert.NoError(t, ValidatePayment(input))
}

func TestValidatePayment_CardHolderRequired(t *testing.T) {
	pinClock(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))

	input := validInput()
	input.CardHolder = "   "

	err := ValidatePayment(input)
	require.Error(t, err)
	assert.Equal(t, "Please enter card holder name", err.Error())
}

func TestValidatePayment_ReportsFirstFailureOnly(t *testing.T) {
	pinClock(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))

	err := ValidatePayment(PaymentInput{})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "CardNumber", vErr.Field)
	assert.Equal(t, "Please enter a valid 16-digit card number", vErr.Message)
}

func TestExpiryValid_TwoDigitYearsReadForward(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, expiryValid("12/99", now), "99 means 2099")
	assert.True(t, expiryValid("01/27", now))
	assert.False(t, expiryValid("12/25", now))
	assert.False(t, expiryValid("08/26", now), "last month expired")
	assert.True(t, expiryValid("09/26", now), "current month still valid")
}

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "4111 1111 1111 1111", FormatCardNumber("4111111111111111"))
	assert.Equal(t, "4111 1111 1111 1111", FormatCardNumber("4111-1111-1111-1111-9999"))
	assert.Equal(t, "411", FormatCardNumber("4x1y1"))
	assert.Equal(t, "", FormatCardNumber("no digits"))
}

func TestFormatExpiry(t *testing.T) {
	assert.Equal(t, "12", FormatExpiry("12"))
	assert.Equal(t, "12/3", FormatExpiry("123"))
	assert.Equal(t, "12/34", FormatExpiry("12345"))
	assert.Equal(t, "", FormatExpiry("mm/yy"))
}
