package commands

import (
	"errors"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

var ErrDeleteStockCommandIsNotConstructed = errors.New(
	"DeleteStockCommand must be created via NewDeleteStockCommand constructor",
)

// DeleteStockCommand removes an inventory entry. Settlements that referenced
// it are kept; later deliveries of the item settle as item_not_found.
type DeleteStockCommand struct { //nolint:recvcheck //using for validation
	actor   user.Actor
	stockID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteStockCommand(actor user.Actor, stockID kernel.UUID) (DeleteStockCommand, error) {
	if !actor.IsAdmin() && !actor.IsSeller() {
		return DeleteStockCommand{}, errs.NewPermissionDeniedError(actor.Role().String(), "delete stock")
	}
	if err := stockID.Validate(); err != nil {
		return DeleteStockCommand{}, err
	}

	return DeleteStockCommand{
		actor:   actor,
		stockID: stockID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteStockCommand) Validate() error {
	return c.guard.Validate(ErrDeleteStockCommandIsNotConstructed)
}

func (c DeleteStockCommand) Actor() user.Actor {
	return c.actor
}

func (c DeleteStockCommand) StockID() kernel.UUID {
	return c.stockID
}
