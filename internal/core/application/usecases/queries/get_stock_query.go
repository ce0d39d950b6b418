package queries

import (
	"errors"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

var ErrGetStockQueryIsNotConstructed = errors.New(
	"GetStockQuery must be created via NewGetStockQuery constructor",
)

// GetStockQuery lists stock entries. Sellers always see their own inventory;
// admins see everything or, with sellerID set, one seller. Drivers have no
// access to inventory.
type GetStockQuery struct {
	actor    user.Actor
	sellerID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetStockQuery(actor user.Actor, sellerID *kernel.UUID) (GetStockQuery, error) {
	switch actor.Role() {
	case user.Admin:
	case user.Seller:
		id := actor.ID()
		sellerID = &id
	case user.Driver, user.UnknownRole:
		return GetStockQuery{}, errs.NewPermissionDeniedError(actor.Role().String(), "view stock")
	}

	if sellerID != nil {
		if err := sellerID.Validate(); err != nil {
			return GetStockQuery{}, err
		}
	}

	return GetStockQuery{
		actor:    actor,
		sellerID: sellerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetStockQuery) Validate() error {
	return q.guard.Validate(ErrGetStockQueryIsNotConstructed)
}

type StockView struct {
	ID        kernel.UUID
	SellerID  kernel.UUID
	Item      string
	Quantity  int
	Approved  bool
	Version   int
	UpdatedAt time.Time
}
