package queries

import (
	"context"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/stock"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetStockQueryHandler struct {
	db *gorm.DB
}

func NewGetStockQueryHandler(db *gorm.DB) GetStockQueryHandler {
	return GetStockQueryHandler{db: db}
}

type stockRow struct {
	ID        uuid.UUID
	SellerID  uuid.UUID
	ItemName  string
	Quantity  int
	Approved  bool
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r stockRow) toDomain() (*stock.Stock, error) {
	id, err := kernel.UUIDFromGoogle(r.ID)
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromGoogle(r.SellerID)
	if err != nil {
		return nil, err
	}
	return stock.RestoreStock(stock.Snapshot{
		ID:        id,
		SellerID:  sellerID,
		Item:      r.ItemName,
		Quantity:  r.Quantity,
		Approved:  r.Approved,
		Version:   r.Version,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	})
}

func viewOf(s *stock.Stock) StockView {
	return StockView{
		ID:        s.ID(),
		SellerID:  s.SellerID(),
		Item:      s.Item(),
		Quantity:  s.Quantity(),
		Approved:  s.IsApproved(),
		Version:   s.Version(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func (h GetStockQueryHandler) Handle(ctx context.Context, query GetStockQuery) ([]StockView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).Table("stocks")
	if query.sellerID != nil {
		q = q.Where("seller_id = ?", query.sellerID.Bytes())
	}

	var rows []stockRow
	if err := q.Order("item_name").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]StockView, 0, len(rows))
	for _, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, viewOf(s))
	}
	return entries, nil
}
