package commands

import (
	"errors"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand hands an order to a driver. Only admins assign.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	actor    user.Actor
	orderID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(actor user.Actor, orderID, driverID kernel.UUID) (AssignDriverCommand, error) {
	if !actor.IsAdmin() {
		return AssignDriverCommand{}, errs.NewPermissionDeniedError(actor.Role().String(), "assign drivers")
	}

	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		actor:    actor,
		orderID:  orderID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) Actor() user.Actor {
	return c.actor
}

func (c AssignDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}
