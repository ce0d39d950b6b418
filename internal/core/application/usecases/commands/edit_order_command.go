package commands

import (
	"errors"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/guard"
)

var ErrEditOrderCommandIsNotConstructed = errors.New(
	"EditOrderCommand must be created via NewEditOrderCommand constructor",
)

// EditOrderCommand replaces the delivery details of a pending order.
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	actor    user.Actor
	orderID  kernel.UUID
	customer order.Customer
	address  kernel.Address
	location kernel.MapLink
	comment  string

	guard guard.ConstructorGuard
}

func NewEditOrderCommand(
	actor user.Actor,
	orderID kernel.UUID,
	customer order.Customer,
	address kernel.Address,
	location kernel.MapLink,
	comment string,
) (EditOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		customer.Validate(),
		address.Validate(),
	); err != nil {
		return EditOrderCommand{}, err
	}

	return EditOrderCommand{
		actor:    actor,
		orderID:  orderID,
		customer: customer,
		address:  address,
		location: location,
		comment:  comment,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

func (c EditOrderCommand) Actor() user.Actor {
	return c.actor
}

func (c EditOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c EditOrderCommand) Customer() order.Customer {
	return c.customer
}

func (c EditOrderCommand) Address() kernel.Address {
	return c.address
}

func (c EditOrderCommand) Location() kernel.MapLink {
	return c.location
}

func (c EditOrderCommand) Comment() string {
	return c.comment
}
