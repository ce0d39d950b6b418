package commands

import (
	"context"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/stock"
)

type ApproveStockCommandHandler struct {
	uowFactory StockUoWFactory
	serializer Serializer
}

func NewApproveStockCommandHandler(uowFactory StockUoWFactory, serializer Serializer) ApproveStockCommandHandler {
	return ApproveStockCommandHandler{
		uowFactory: uowFactory,
		serializer: serializer,
	}
}

func (h ApproveStockCommandHandler) Handle(ctx context.Context, cmd ApproveStockCommand) (*stock.Stock, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var entry *stock.Stock
	err := h.serializer.Run(ctx, StockLockKey(cmd.StockID().String()), "approve stock",
		func(ctx context.Context) error {
			var err error
			entry, err = modifyStock(ctx, h.uowFactory, cmd.StockID(),
				func(s *stock.Stock) error {
					return s.Approve(cmd.Actor())
				})
			return err
		})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// modifyStock loads an entry with a row lock, applies change and stores it.
func modifyStock(
	ctx context.Context,
	uowFactory StockUoWFactory,
	id kernel.UUID,
	change func(s *stock.Stock) error,
) (*stock.Stock, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	entry, err := uow.StockRepository().GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = change(entry); err != nil {
		return nil, err
	}

	if err = uow.StockRepository().Update(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}
