// Package settlementrepo persists the settlement ledger with GORM.
package settlementrepo

import (
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/stock"

	"github.com/google/uuid"
)

// SettlementDTO is the row layout of the settlements table. The unique index
// on order_id is what makes settlement happen at most once per order.
type SettlementDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	StockID   *uuid.UUID `gorm:"type:uuid;index"`
	SellerID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemName  string     `gorm:"size:255;not null"`
	Quantity  int        `gorm:"not null"`
	Outcome   string     `gorm:"size:16;not null"`
	Reason    string     `gorm:"size:32"`
	CreatedAt time.Time  `gorm:"not null;index"`
}

func (SettlementDTO) TableName() string {
	return "settlements"
}

func fromDomain(s *stock.Settlement) SettlementDTO {
	var stockID *uuid.UUID
	if id := s.StockID(); id != nil {
		raw := id.Bytes()
		stockID = &raw
	}

	return SettlementDTO{
		ID:        s.ID().Bytes(),
		OrderID:   s.OrderID().Bytes(),
		StockID:   stockID,
		SellerID:  s.SellerID().Bytes(),
		ItemName:  s.Item(),
		Quantity:  s.Quantity(),
		Outcome:   string(s.Outcome()),
		Reason:    string(s.Reason()),
		CreatedAt: s.CreatedAt(),
	}
}

func toDomain(dto SettlementDTO) (*stock.Settlement, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromGoogle(dto.SellerID)
	if err != nil {
		return nil, err
	}

	var stockID *kernel.UUID
	if dto.StockID != nil {
		sID, stockErr := kernel.UUIDFromGoogle(*dto.StockID)
		if stockErr != nil {
			return nil, stockErr
		}
		stockID = &sID
	}

	return stock.RestoreSettlement(stock.SettlementSnapshot{
		ID:        id,
		OrderID:   orderID,
		StockID:   stockID,
		SellerID:  sellerID,
		Item:      dto.ItemName,
		Quantity:  dto.Quantity,
		Outcome:   stock.Outcome(dto.Outcome),
		Reason:    stock.SkipReason(dto.Reason),
		CreatedAt: dto.CreatedAt,
	})
}
