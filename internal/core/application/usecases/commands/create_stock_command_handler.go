package commands

import (
	"context"
	"fmt"

	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
)

type CreateStockCommandHandler struct {
	uowFactory StockUoWFactory
}

func NewCreateStockCommandHandler(uowFactory StockUoWFactory) CreateStockCommandHandler {
	return CreateStockCommandHandler{uowFactory: uowFactory}
}

func (h CreateStockCommandHandler) Handle(ctx context.Context, cmd CreateStockCommand) (*stock.Stock, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	entry, err := stock.NewStock(cmd.Actor(), cmd.StockID(), cmd.SellerID(), cmd.Item(), cmd.Quantity())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.Actor().IsAdmin() {
		seller, err := uow.UserRepository().Get(ctx, cmd.SellerID())
		if err != nil {
			return nil, err
		}
		if seller.Role() != user.Seller {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"seller", fmt.Errorf("user %s is a %s", seller.ID(), seller.Role()))
		}
	}

	if err = uow.StockRepository().Add(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}
