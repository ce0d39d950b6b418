package queries

import (
	"errors"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

var ErrGetSettlementsQueryIsNotConstructed = errors.New(
	"GetSettlementsQuery must be created via NewGetSettlementsQuery constructor",
)

// GetSettlementsQuery returns the settlement ledger, newest first. Only admins
// may read it. A non-nil orderID or a non-empty outcome narrows the result.
type GetSettlementsQuery struct {
	orderID *kernel.UUID
	outcome stock.Outcome

	guard guard.ConstructorGuard
}

func NewGetSettlementsQuery(
	actor user.Actor, orderID *kernel.UUID, outcome stock.Outcome,
) (GetSettlementsQuery, error) {
	if !actor.IsAdmin() {
		return GetSettlementsQuery{}, errs.NewPermissionDeniedError(actor.Role().String(), "view settlements")
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return GetSettlementsQuery{}, err
		}
	}
	if outcome != "" {
		if err := outcome.Validate(); err != nil {
			return GetSettlementsQuery{}, err
		}
	}

	return GetSettlementsQuery{
		orderID: orderID,
		outcome: outcome,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetSettlementsQuery) Validate() error {
	return q.guard.Validate(ErrGetSettlementsQueryIsNotConstructed)
}

type SettlementView struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	StockID   *kernel.UUID
	SellerID  kernel.UUID
	Item      string
	Quantity  int
	Outcome   stock.Outcome
	Reason    stock.SkipReason
	CreatedAt time.Time
}
