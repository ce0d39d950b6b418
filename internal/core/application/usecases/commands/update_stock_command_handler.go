package commands

import (
	"context"

	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/pkg/errs"
)

// UpdateStockCommandHandler edits an entry under the stock key, so it never
// interleaves with other edits of the same entry.
type UpdateStockCommandHandler struct {
	uowFactory StockUoWFactory
	serializer Serializer
}

func NewUpdateStockCommandHandler(uowFactory StockUoWFactory, serializer Serializer) UpdateStockCommandHandler {
	return UpdateStockCommandHandler{
		uowFactory: uowFactory,
		serializer: serializer,
	}
}

func (h UpdateStockCommandHandler) Handle(ctx context.Context, cmd UpdateStockCommand) (*stock.Stock, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var entry *stock.Stock
	err := h.serializer.Run(ctx, StockLockKey(cmd.StockID().String()), "update stock",
		func(ctx context.Context) error {
			var err error
			entry, err = modifyStock(ctx, h.uowFactory, cmd.StockID(),
				func(s *stock.Stock) error {
					if !s.VisibleTo(cmd.Actor()) {
						return errs.NewObjectNotFoundError("stock", cmd.StockID())
					}
					return s.Update(cmd.Actor(), cmd.Item(), cmd.Quantity())
				})
			return err
		})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
