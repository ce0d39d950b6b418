package ports

import (
	"context"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/stock"
)

// SettlementRepository stores the settlement ledger. Order id is unique and
// records outlive the order they settle.
type SettlementRepository interface {
	// Add persists a settlement. A second settlement for the same order yields
	// errs.ErrVersionIsInvalid.
	Add(ctx context.Context, settlement *stock.Settlement) error

	// GetByOrder returns the settlement of an order or errs.ErrObjectNotFound.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*stock.Settlement, error)
}
