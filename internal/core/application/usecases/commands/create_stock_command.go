package commands

import (
	"errors"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

var ErrCreateStockCommandIsNotConstructed = errors.New(
	"CreateStockCommand must be created via NewCreateStockCommand constructor",
)

// CreateStockCommand adds an inventory entry for a seller.
type CreateStockCommand struct { //nolint:recvcheck //using for validation
	actor    user.Actor
	stockID  kernel.UUID
	sellerID kernel.UUID
	item     string
	quantity int

	guard guard.ConstructorGuard
}

// NewCreateStockCommand builds the command. A seller that names nobody
// creates stock for itself.
func NewCreateStockCommand(
	actor user.Actor, stockID, sellerID kernel.UUID, item string, quantity int,
) (CreateStockCommand, error) {
	if actor.IsSeller() && sellerID.Validate() != nil {
		sellerID = actor.ID()
	}

	if err := errors.Join(
		stockID.Validate(),
		requireSeller(sellerID),
	); err != nil {
		return CreateStockCommand{}, err
	}

	return CreateStockCommand{
		actor:    actor,
		stockID:  stockID,
		sellerID: sellerID,
		item:     item,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateStockCommand) Validate() error {
	return c.guard.Validate(ErrCreateStockCommandIsNotConstructed)
}

func (c CreateStockCommand) Actor() user.Actor {
	return c.actor
}

func (c CreateStockCommand) StockID() kernel.UUID {
	return c.stockID
}

func (c CreateStockCommand) SellerID() kernel.UUID {
	return c.sellerID
}

func (c CreateStockCommand) Item() string {
	return c.item
}

func (c CreateStockCommand) Quantity() int {
	return c.quantity
}

func requireSeller(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("seller", err)
	}
	return nil
}
