// Package stockrepo persists seller inventory with GORM.
package stockrepo

import (
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/stock"

	"github.com/google/uuid"
)

// StockDTO is the row layout of the stocks table. (seller_id, item_name) is
// the natural key used by the ledger.
type StockDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stocks_seller_item"`
	ItemName  string    `gorm:"size:255;not null;uniqueIndex:idx_stocks_seller_item"`
	Quantity  int       `gorm:"not null;check:quantity >= 0"`
	Approved  bool      `gorm:"not null;default:false"`
	Version   int       `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (StockDTO) TableName() string {
	return "stocks"
}

func fromDomain(s *stock.Stock) StockDTO {
	return StockDTO{
		ID:        s.ID().Bytes(),
		SellerID:  s.SellerID().Bytes(),
		ItemName:  s.Item(),
		Quantity:  s.Quantity(),
		Approved:  s.IsApproved(),
		Version:   s.Version(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func toDomain(dto StockDTO) (*stock.Stock, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromGoogle(dto.SellerID)
	if err != nil {
		return nil, err
	}

	return stock.RestoreStock(stock.Snapshot{
		ID:        id,
		SellerID:  sellerID,
		Item:      dto.ItemName,
		Quantity:  dto.Quantity,
		Approved:  dto.Approved,
		Version:   dto.Version,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}
