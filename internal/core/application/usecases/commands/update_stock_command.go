package commands

import (
	"errors"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/guard"
)

var ErrUpdateStockCommandIsNotConstructed = errors.New(
	"UpdateStockCommand must be created via NewUpdateStockCommand constructor",
)

// UpdateStockCommand renames an entry and sets its quantity.
type UpdateStockCommand struct { //nolint:recvcheck //using for validation
	actor    user.Actor
	stockID  kernel.UUID
	item     string
	quantity int

	guard guard.ConstructorGuard
}

func NewUpdateStockCommand(actor user.Actor, stockID kernel.UUID, item string, quantity int) (UpdateStockCommand, error) {
	if err := stockID.Validate(); err != nil {
		return UpdateStockCommand{}, err
	}

	return UpdateStockCommand{
		actor:    actor,
		stockID:  stockID,
		item:     item,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateStockCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStockCommandIsNotConstructed)
}

func (c UpdateStockCommand) Actor() user.Actor {
	return c.actor
}

func (c UpdateStockCommand) StockID() kernel.UUID {
	return c.stockID
}

func (c UpdateStockCommand) Item() string {
	return c.item
}

func (c UpdateStockCommand) Quantity() int {
	return c.quantity
}
