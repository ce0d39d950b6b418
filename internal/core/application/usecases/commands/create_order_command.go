package commands

import (
	"errors"
	"strings"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order against a seller's stock. Sellers
// order for themselves; admins order on behalf of a named seller.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, kernel.NewUUID(), actor.ID(), customer, address, kernel.MapLink{}, "Widget", 2, "")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor    user.Actor
	orderID  kernel.UUID
	sellerID kernel.UUID
	customer order.Customer
	address  kernel.Address
	location kernel.MapLink
	item     string
	quantity int
	comment  string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	actor user.Actor,
	orderID, sellerID kernel.UUID,
	customer order.Customer,
	address kernel.Address,
	location kernel.MapLink,
	item string,
	quantity int,
	comment string,
) (CreateOrderCommand, error) {
	c := CreateOrderCommand{
		actor:    actor,
		location: location,
		item:     strings.TrimSpace(item),
		comment:  comment,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setOrderID(orderID),
		c.setSeller(actor, sellerID),
		customer.Validate(),
		address.Validate(),
		c.setQuantity(quantity),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	c.customer = customer
	c.address = address

	return c, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() user.Actor {
	return c.actor
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) SellerID() kernel.UUID {
	return c.sellerID
}

func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

func (c CreateOrderCommand) Address() kernel.Address {
	return c.address
}

func (c CreateOrderCommand) Location() kernel.MapLink {
	return c.location
}

func (c CreateOrderCommand) Item() string {
	return c.item
}

func (c CreateOrderCommand) Quantity() int {
	return c.quantity
}

func (c CreateOrderCommand) Comment() string {
	return c.comment
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

// setSeller fills in the owning seller. A seller that names nobody orders
// for itself.
func (c *CreateOrderCommand) setSeller(actor user.Actor, sellerID kernel.UUID) error {
	switch actor.Role() {
	case user.Seller:
		if sellerID.Validate() != nil {
			sellerID = actor.ID()
		}
		if !actor.Is(sellerID) {
			return errs.NewPermissionDeniedError("seller", "create orders for another seller")
		}
	case user.Admin:
		if err := sellerID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("seller", err)
		}
	default:
		return errs.NewPermissionDeniedError(actor.Role().String(), "create orders")
	}
	c.sellerID = sellerID
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	c.quantity = quantity
	return nil
}
