// Package ports defines the contracts between the application core and its
// adapters: repositories, the unit of work, the per-key locker and the notifier.
package ports

import (
	"context"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add persists a new order. The order must be valid.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Missing orders yield errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the surrounding
	// transaction ends. Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order. Missing orders yield errs.ErrObjectNotFound.
	Delete(ctx context.Context, id kernel.UUID) error
}
