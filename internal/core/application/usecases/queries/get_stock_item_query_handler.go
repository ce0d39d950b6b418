package queries

import (
	"context"
	"errors"

	"deliveryno/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetStockItemQueryHandler struct {
	db *gorm.DB
}

func NewGetStockItemQueryHandler(db *gorm.DB) GetStockItemQueryHandler {
	return GetStockItemQueryHandler{db: db}
}

func (h GetStockItemQueryHandler) Handle(ctx context.Context, query GetStockItemQuery) (StockView, error) {
	if err := query.Validate(); err != nil {
		return StockView{}, err
	}

	var row stockRow
	err := h.db.WithContext(ctx).Table("stocks").
		Where("id = ?", query.stockID.Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StockView{}, errs.NewObjectNotFoundError("stock", query.stockID.String())
		}
		return StockView{}, err
	}

	s, err := row.toDomain()
	if err != nil {
		return StockView{}, err
	}
	if !s.VisibleTo(query.actor) {
		return StockView{}, errs.NewObjectNotFoundError("stock", query.stockID.String())
	}
	return viewOf(s), nil
}
