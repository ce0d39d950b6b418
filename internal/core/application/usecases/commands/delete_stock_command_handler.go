package commands

import (
	"context"

	"deliveryno/internal/pkg/errs"
)

// DeleteStockCommandHandler removes an entry under the stock key, so a delete
// never interleaves with an edit or approval of the same entry.
type DeleteStockCommandHandler struct {
	uowFactory StockUoWFactory
	serializer Serializer
}

func NewDeleteStockCommandHandler(uowFactory StockUoWFactory, serializer Serializer) DeleteStockCommandHandler {
	return DeleteStockCommandHandler{
		uowFactory: uowFactory,
		serializer: serializer,
	}
}

func (h DeleteStockCommandHandler) Handle(ctx context.Context, cmd DeleteStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.serializer.Run(ctx, StockLockKey(cmd.StockID().String()), "delete stock",
		func(ctx context.Context) error {
			uow := h.uowFactory.Create()
			if err := uow.Begin(ctx); err != nil {
				return err
			}

			defer func() {
				_ = uow.Rollback(ctx)
			}()

			entry, err := uow.StockRepository().GetForUpdate(ctx, cmd.StockID())
			if err != nil {
				return err
			}
			if !entry.VisibleTo(cmd.Actor()) {
				return errs.NewObjectNotFoundError("stock", cmd.StockID())
			}
			if err = entry.CheckDeletable(cmd.Actor()); err != nil {
				return err
			}
			if err = uow.StockRepository().Delete(ctx, entry.ID()); err != nil {
				return err
			}

			return uow.Commit(ctx)
		})
}
