package kernel

import (
	"errors"
	"strings"
	"unicode/utf8"

	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

// MaxTextLength bounds free-text fields such as names, streets and item names.
const MaxTextLength = 255

// ErrAddressIsNotConstructed is returned when validating a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is the delivery destination of an order.
type Address struct {
	street string
	city   string
	guard  guard.ConstructorGuard
}

// NewAddress trims and validates both parts. Empty parts are rejected.
func NewAddress(street, city string) (Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)

	if err := errors.Join(
		ValidateText("street", street),
		ValidateText("city", city),
	); err != nil {
		return Address{}, err
	}

	return Address{street: street, city: city, guard: guard.NewConstructorGuard()}, nil
}

func (a Address) Street() string {
	return a.street
}

func (a Address) City() string {
	return a.city
}

func (a Address) String() string {
	return a.street + ", " + a.city
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// ValidateText checks that a required text field is present and fits MaxTextLength.
func ValidateText(paramName, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	if n := utf8.RuneCountInString(value); n > MaxTextLength {
		return errs.NewValueIsOutOfRangeError(paramName, n, 1, MaxTextLength)
	}
	return nil
}
