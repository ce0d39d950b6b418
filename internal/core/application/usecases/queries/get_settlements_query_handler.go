package queries

import (
	"context"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/stock"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetSettlementsQueryHandler struct {
	db *gorm.DB
}

func NewGetSettlementsQueryHandler(db *gorm.DB) GetSettlementsQueryHandler {
	return GetSettlementsQueryHandler{db: db}
}

type settlementRow struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	StockID   *uuid.UUID
	SellerID  uuid.UUID
	ItemName  string
	Quantity  int
	Outcome   string
	Reason    string
	CreatedAt time.Time
}

func (h GetSettlementsQueryHandler) Handle(
	ctx context.Context, query GetSettlementsQuery,
) ([]SettlementView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).Table("settlements")
	if query.orderID != nil {
		q = q.Where("order_id = ?", query.orderID.Bytes())
	}
	if query.outcome != "" {
		q = q.Where("outcome = ?", string(query.outcome))
	}

	var rows []settlementRow
	if err := q.Order("created_at DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]SettlementView, 0, len(rows))
	for _, row := range rows {
		view, err := row.toView()
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	return result, nil
}

func (r settlementRow) toView() (SettlementView, error) {
	id, err := kernel.UUIDFromGoogle(r.ID)
	if err != nil {
		return SettlementView{}, err
	}
	orderID, err := kernel.UUIDFromGoogle(r.OrderID)
	if err != nil {
		return SettlementView{}, err
	}
	sellerID, err := kernel.UUIDFromGoogle(r.SellerID)
	if err != nil {
		return SettlementView{}, err
	}
	var stockID *kernel.UUID
	if r.StockID != nil {
		sID, stockErr := kernel.UUIDFromGoogle(*r.StockID)
		if stockErr != nil {
			return SettlementView{}, stockErr
		}
		stockID = &sID
	}

	return SettlementView{
		ID:        id,
		OrderID:   orderID,
		StockID:   stockID,
		SellerID:  sellerID,
		Item:      r.ItemName,
		Quantity:  r.Quantity,
		Outcome:   stock.Outcome(r.Outcome),
		Reason:    stock.SkipReason(r.Reason),
		CreatedAt: r.CreatedAt,
	}, nil
}
