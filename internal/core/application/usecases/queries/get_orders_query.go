// Package queries contains the read side of the delivery backend. Handlers
// read straight from the database and apply the role visibility rules in SQL.
package queries

import (
	"errors"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists the orders visible to actor, newest first: every order
// for admins, their own for sellers, the assigned ones for drivers.
//
// Example:
//
//	query := NewGetOrdersQuery(actor, nil)
//	orders, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	actor  user.Actor
	status *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery builds the query. A non-nil status narrows the result to
// that status.
func NewGetOrdersQuery(actor user.Actor, status *order.Status) (GetOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}
	return GetOrdersQuery{
		actor:  actor,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// OrderView is the read model of one order.
type OrderView struct {
	ID            kernel.UUID
	SellerID      kernel.UUID
	DriverID      *kernel.UUID
	CustomerName  string
	CustomerPhone string
	Street        string
	City          string
	Location      string
	Item          string
	Quantity      int
	Status        order.Status
	Comment       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
