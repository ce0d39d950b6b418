package queries

import (
	"context"
	"errors"

	"deliveryno/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var row orderRow
	err := visibleOrders(h.db.WithContext(ctx), query.actor).
		Where("id = ?", query.orderID.Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderView{}, errs.NewObjectNotFoundError("order", query.orderID.String())
		}
		return OrderView{}, err
	}

	return row.toView()
}
