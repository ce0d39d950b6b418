package ports

import (
	"context"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/stock"
)

// StockRepository persists seller inventory.
type StockRepository interface {
	// Add persists a new entry. A duplicate (seller, item) yields errs.ErrValueIsInvalid.
	Add(ctx context.Context, aggregate *stock.Stock) error

	// Update persists changes guarded by the entry's version. A concurrent
	// change in between yields errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *stock.Stock) error

	Get(ctx context.Context, id kernel.UUID) (*stock.Stock, error)

	// Delete removes an entry. Missing entries yield errs.ErrObjectNotFound.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*stock.Stock, error)

	// FindBySellerAndItem looks an entry up by its natural key. Missing entries
	// yield stock.ErrItemNotFound.
	FindBySellerAndItem(ctx context.Context, sellerID kernel.UUID, item string) (*stock.Stock, error)

	// DecrementIfAvailable subtracts quantity in a single conditional statement
	// and reports whether a row matched. It never drives quantity below zero.
	DecrementIfAvailable(ctx context.Context, sellerID kernel.UUID, item string, quantity int) (bool, error)
}
