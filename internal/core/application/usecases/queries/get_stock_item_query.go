package queries

import (
	"errors"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/guard"
)

var ErrGetStockItemQueryIsNotConstructed = errors.New(
	"GetStockItemQuery must be created via NewGetStockItemQuery constructor",
)

// GetStockItemQuery fetches one stock entry. Entries the actor may not see,
// which is every entry for a driver, are reported as not found.
type GetStockItemQuery struct {
	actor   user.Actor
	stockID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetStockItemQuery(actor user.Actor, stockID kernel.UUID) (GetStockItemQuery, error) {
	if err := stockID.Validate(); err != nil {
		return GetStockItemQuery{}, err
	}
	return GetStockItemQuery{
		actor:   actor,
		stockID: stockID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetStockItemQuery) Validate() error {
	return q.guard.Validate(ErrGetStockItemQueryIsNotConstructed)
}
