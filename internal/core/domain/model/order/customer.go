package order

import (
	"errors"
	"fmt"
	"strings"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

const maxPhoneLength = 20

var ErrCustomerIsNotConstructed = errs.NewValueIsRequiredError("customer must be created via NewCustomer")

// Customer is the recipient of an order.
type Customer struct {
	name  string
	phone string
	guard guard.ConstructorGuard
}

func NewCustomer(name, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	var phoneErr error
	switch {
	case phone == "":
		phoneErr = errs.NewValueIsRequiredError("customer phone")
	case len(phone) > maxPhoneLength:
		phoneErr = errs.NewValueIsOutOfRangeErrorWithCause(
			"customer phone", len(phone), 1, maxPhoneLength, fmt.Errorf("%q is too long", phone))
	}

	if err := errors.Join(kernel.ValidateText("customer name", name), phoneErr); err != nil {
		return Customer{}, err
	}

	return Customer{name: name, phone: phone, guard: guard.NewConstructorGuard()}, nil
}

func (c Customer) Name() string {
	return c.name
}

func (c Customer) Phone() string {
	return c.phone
}

func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}
