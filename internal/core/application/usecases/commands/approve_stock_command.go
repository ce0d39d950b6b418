package commands

import (
	"errors"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

var ErrApproveStockCommandIsNotConstructed = errors.New(
	"ApproveStockCommand must be created via NewApproveStockCommand constructor",
)

// ApproveStockCommand makes a seller's entry orderable.
type ApproveStockCommand struct { //nolint:recvcheck //using for validation
	actor   user.Actor
	stockID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveStockCommand(actor user.Actor, stockID kernel.UUID) (ApproveStockCommand, error) {
	if !actor.IsAdmin() {
		return ApproveStockCommand{}, errs.NewPermissionDeniedError(actor.Role().String(), "approve stock")
	}
	if err := stockID.Validate(); err != nil {
		return ApproveStockCommand{}, err
	}

	return ApproveStockCommand{
		actor:   actor,
		stockID: stockID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveStockCommand) Validate() error {
	return c.guard.Validate(ErrApproveStockCommandIsNotConstructed)
}

func (c ApproveStockCommand) Actor() user.Actor {
	return c.actor
}

func (c ApproveStockCommand) StockID() kernel.UUID {
	return c.stockID
}
