package commands

import (
	"errors"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand requests a lifecycle transition on behalf of actor.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	actor   user.Actor
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	actor user.Actor, orderID kernel.UUID, status order.Status,
) (ChangeOrderStatusCommand, error) {
	c := ChangeOrderStatusCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setOrderID(orderID),
		c.setStatus(status),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return c, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Actor() user.Actor {
	return c.actor
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
