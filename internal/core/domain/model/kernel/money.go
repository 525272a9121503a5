package kernel

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

// DefaultCurrency is the currency used when a declared value omits one.
// All warehouse billing runs in US dollars.
const DefaultCurrency = "USD"

// Money is a value object representing a monetary amount with its currency.
// Amounts may be zero (a package with no declared value) but never negative.
//
// The zero value is invalid; use NewMoney.
type Money struct {
	amount   float64
	currency string
}

// NewMoney creates a Money value. A negative amount is rejected; an empty
// currency defaults to DefaultCurrency.
func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is negative", amount))
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount, currency: currency}, nil
}

// Amount returns the monetary amount.
func (m Money) Amount() float64 {
	return m.amount
}

// Currency returns the ISO currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of two Money values.
// Adding amounts in different currencies is rejected.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("cannot add %s to %s", other.currency, m.currency))
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// IsZero reports whether the money is the (invalid) zero value.
func (m Money) IsZero() bool {
	return m.currency == ""
}

// Validate checks that the money was created via NewMoney.
func (m Money) Validate() error {
	if m.IsZero() {
		return errs.NewValueIsRequiredError("money")
	}
	return nil
}

// String implements fmt.Stringer, e.g. "42.50 USD".
func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.amount, m.currency)
}
